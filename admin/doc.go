// Package admin serves a generic CRUD interface over every entity
// registered in an entity.Registry: listing, creation, editing and
// deletion, with forms derived from the entity's declared fields.
//
// The engine implements internal.Handler and mounts under a base URL
// (default "/admin/"). Login and logout live under the same prefix;
// every other admin route is guarded by auth.RequireSession and
// auth.RequireAdmin.
//
//	registry := entity.NewRegistry()
//	registry.MustRegister(func() entity.Entity { return &Author{} })
//	registry.MustRegister(func() entity.Entity { return &Book{} })
//
//	engine := admin.New(registry, entity.NewStore(conn), users, sessions, hasher)
//
//	app := anvil.New(
//	    anvil.WithViews(view.New(
//	        view.WithFS(appTemplates),
//	        view.WithFS(admin.Templates),
//	    )),
//	    anvil.WithSession(sessions),
//	    anvil.WithHandlers(engine),
//	)
//
// # Form decoding
//
// Submitted forms are decoded against the entity's field list. The id
// field is never editable. Booleans are truthy iff the submitted value
// parses to a nonzero integer; with multiple submitted values the last
// one wins, so a hidden "0" input paired with a checkbox "1" input
// decodes correctly. Reference fields parse an integer id and load the
// target record; a failed parse or lookup is a 400 and nothing is
// persisted. Password fields are hashed before assignment: always on
// create, and on edit only when the submission is non-empty.
//
// # Templates
//
// The package embeds a plain default template set (admin/index,
// admin/list, admin/form, admin/delete, admin/error, admin/login).
// Applications override any of them by shadowing the name in an earlier
// view layer.
package admin
