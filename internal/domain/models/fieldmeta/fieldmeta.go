// internal/domain/models/fieldmeta/fieldmeta.go
package fieldmeta

// Class is the write-permission class of a document field.
type Class int

const (
	// ReadOnly fields are never client-writable (derived or system-managed).
	ReadOnly Class = iota
	// AdminOnly fields are writable only when the acting user is an admin.
	AdminOnly
)

// registry is the process-wide field-metadata table, keyed by entity name.
// Populated once at init; lookups after that are read-only, so no locking.
var registry = map[string]map[string]Class{}

func init() {
	Register("list", map[string]Class{
		"id":         ReadOnly,
		"_id":        ReadOnly,
		"name":       ReadOnly, // always derived from label/acronym
		"name_ci":    ReadOnly,
		"deleted":    ReadOnly, // only the cascade engine flips this
		"created_at": ReadOnly,
		"updated_at": ReadOnly,
		"metadata":   AdminOnly,
		"owner":      AdminOnly, // non-admins always own what they create
	})
}

// Register installs the field classes for an entity. Meant to be called from
// init by the packages that own each schema; calling it again for the same
// entity replaces the table.
func Register(entity string, classes map[string]Class) {
	registry[entity] = classes
}

// Sanitize returns payload with forbidden keys removed: readonly fields
// always, admin-only fields unless isAdmin. The input map is not modified.
// Unknown keys pass through untouched. Disallowed keys are silently dropped
// rather than rejecting the request.
func Sanitize(entity string, payload map[string]any, isAdmin bool) map[string]any {
	classes := registry[entity]
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		class, known := classes[k]
		if !known {
			out[k] = v
			continue
		}
		if class == ReadOnly {
			continue
		}
		if class == AdminOnly && !isAdmin {
			continue
		}
		out[k] = v
	}
	return out
}
