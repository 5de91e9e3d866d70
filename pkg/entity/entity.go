package entity

// Kind classifies a field for form rendering and decoding.
type Kind int

const (
	KindString Kind = iota
	KindText
	KindInt
	KindBool
	KindDateTime
	KindPassword
	KindReference
)

// String returns the lowercase kind name used in templates.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindDateTime:
		return "datetime"
	case KindPassword:
		return "password"
	case KindReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Field describes a single editable field of an entity.
type Field struct {
	Name string
	Kind Kind

	// Ref names the target entity for KindReference fields.
	Ref string
}

// Entity is implemented by models that expose themselves to generic
// machinery. Implementations are expected to be pointer receivers over
// GORM model structs.
type Entity interface {
	// EntityName returns the stable lowercase name of the model.
	EntityName() string

	// EntityID returns the primary key, zero for unsaved records.
	EntityID() uint

	// EntityFields lists the editable fields in display order.
	// The primary key is not listed.
	EntityFields() []Field

	// Field returns the named field's current value.
	// The second result is false for unknown names.
	Field(name string) (any, bool)

	// SetField assigns the named field. For KindReference fields the
	// value is the referenced Entity. Returns false for unknown names
	// or incompatible values.
	SetField(name string, value any) bool
}

// Labeler is optionally implemented by entities to control how a record
// is titled in listings and reference selectors. Entities without it are
// shown by name and ID.
type Labeler interface {
	EntityLabel() string
}

// Label returns the display title for a record.
func Label(e Entity) string {
	if l, ok := e.(Labeler); ok {
		return l.EntityLabel()
	}
	return e.EntityName()
}
