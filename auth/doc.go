// Package auth provides session-backed authentication for Anvil
// applications: a subject abstraction over the application's user model,
// guard middleware for protected routes, and login/logout handlers.
//
// # Subjects
//
// The framework never defines a user table. Applications implement
// Subject on their own model and expose lookups through SubjectStore:
//
//	type User struct {
//	    ID           uint
//	    Username     string
//	    PasswordHash string
//	    IsAdmin      bool
//	}
//
//	func (u *User) SubjectID() uint             { return u.ID }
//	func (u *User) SubjectPasswordHash() string { return u.PasswordHash }
//	func (u *User) SubjectIsAdmin() bool        { return u.IsAdmin }
//
// # Guards
//
// RequireSession resolves the session cookie, loads the subject and
// attaches it to the request context. Requests without a valid session
// are redirected to the login page; the wrapped handler never runs.
// RequireAdmin additionally redirects authenticated non-admin subjects
// to the logout page.
//
//	guard := auth.NewGuard(users, sessions)
//	r.GET("/admin/", handler, guard.RequireSession, guard.RequireAdmin)
//
// Handlers behind the guard read the subject with auth.CurrentSubject:
//
//	subject := auth.CurrentSubject(c)
package auth
