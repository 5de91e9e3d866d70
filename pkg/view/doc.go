// Package view provides HTML template rendering over layered filesystems.
//
// An Engine resolves template names to files across one or more fs.FS
// layers. Layers are searched in registration order and the first layer
// containing the file wins, so application templates can shadow built-in
// ones by registering their filesystem first.
//
// Parsed templates are cached after first use. Templates are resolved by
// name, with the configured extension appended:
//
//	engine := view.New(
//		view.WithFS(appTemplates),
//		view.WithFS(defaultTemplates),
//		view.WithShared("partials/*.html"),
//	)
//	err := engine.Render(w, "users/list", data)
//
// Shared patterns are parsed into every template set, making partials
// available to all pages via {{template "name" .}}.
package view
