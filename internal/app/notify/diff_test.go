package notify

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDiff(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()

	added, removed := Diff(
		[]primitive.ObjectID{a, b},
		[]primitive.ObjectID{b, c},
	)

	if len(added) != 1 || added[0] != c {
		t.Errorf("added: got %v, want [%v]", added, c)
	}
	if len(removed) != 1 || removed[0] != a {
		t.Errorf("removed: got %v, want [%v]", removed, a)
	}
}

func TestDiff_NoChange(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	added, removed := Diff(
		[]primitive.ObjectID{a, b},
		[]primitive.ObjectID{b, a},
	)
	if len(added) != 0 || len(removed) != 0 {
		t.Errorf("reordering is not a change: added %v, removed %v", added, removed)
	}
}

func TestDiff_Empty(t *testing.T) {
	a := primitive.NewObjectID()

	added, removed := Diff(nil, []primitive.ObjectID{a})
	if len(added) != 1 || len(removed) != 0 {
		t.Errorf("nil prev: added %v, removed %v", added, removed)
	}

	added, removed = Diff([]primitive.ObjectID{a}, nil)
	if len(added) != 0 || len(removed) != 1 {
		t.Errorf("nil next: added %v, removed %v", added, removed)
	}
}

func TestDiff_Duplicates(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	added, removed := Diff(
		[]primitive.ObjectID{a, a},
		[]primitive.ObjectID{a, b, b},
	)
	if len(added) != 1 || added[0] != b {
		t.Errorf("duplicates counted once: added %v", added)
	}
	if len(removed) != 0 {
		t.Errorf("duplicates counted once: removed %v", removed)
	}
}
