// Package auth provides the admin token check for the web application.
//
// Admin routes receive the shared secret in the "token" form field of the
// request itself; there are no sessions or users. RequireAdminToken rejects
// a request before its handler runs when the token does not match, so an
// unauthorized caller never learns which other fields are missing.
//
// Usage:
//
//	app.Post("/admin/add-store", auth.RequireAdminToken(stores), handler)
package auth
