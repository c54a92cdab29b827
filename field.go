package treekv

import "fmt"

// Field identifies one of the fixed ordinal attributes of a node
type Field string

const (
	// FieldPath is the node's fully qualified path. It is the one field
	// readable and writable without materializing a skeleton
	FieldPath Field = "path"

	// FieldName is the last path segment. Derived from FieldPath,
	// read-only, never stored
	FieldName Field = "name"

	FieldOwner        Field = "owner"
	FieldVisibility   Field = "visibility"
	FieldLastModified Field = "lastModified"
)

// ParseField maps a textual field name to its Field, failing with
// [ErrUnknownField] for anything outside the closed set
func ParseField(s string) (Field, error) {
	switch Field(s) {
	case FieldPath, FieldName, FieldOwner, FieldVisibility, FieldLastModified:
		return Field(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
}

func (f Field) String() string {
	return string(f)
}
