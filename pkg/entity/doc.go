// Package entity describes application models to generic machinery such
// as the admin interface.
//
// Models opt in by implementing the Entity interface, which exposes a
// stable name, a typed field list, and by-name field access. This keeps
// generic code free of runtime reflection; each model states exactly what
// it exposes.
//
//	type Author struct {
//		ID   uint
//		Name string
//	}
//
//	func (a *Author) EntityName() string { return "author" }
//	func (a *Author) EntityID() uint     { return a.ID }
//	func (a *Author) EntityFields() []entity.Field {
//		return []entity.Field{{Name: "name", Kind: entity.KindString}}
//	}
//	// Field and SetField switch on the field name.
//
// A Registry holds descriptors in registration order, and Store performs
// CRUD for any registered entity against a GORM database.
package entity
