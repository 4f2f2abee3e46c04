// internal/app/notify/diff.go
package notify

import "go.mongodb.org/mongo-driver/bson/primitive"

// Diff compares two manager sets and returns the ids present only in next
// (added) and only in prev (removed). Duplicates within either input are
// counted once; order follows first appearance.
func Diff(prev, next []primitive.ObjectID) (added, removed []primitive.ObjectID) {
	inPrev := make(map[primitive.ObjectID]struct{}, len(prev))
	for _, id := range prev {
		inPrev[id] = struct{}{}
	}
	inNext := make(map[primitive.ObjectID]struct{}, len(next))
	for _, id := range next {
		inNext[id] = struct{}{}
	}

	seen := make(map[primitive.ObjectID]struct{})
	for _, id := range next {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := inPrev[id]; !ok {
			added = append(added, id)
		}
	}

	seen = make(map[primitive.ObjectID]struct{})
	for _, id := range prev {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := inNext[id]; !ok {
			removed = append(removed, id)
		}
	}
	return added, removed
}
