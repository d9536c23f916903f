// Package server wires the HTTP surface of diner-menu.
//
// # Routes
//
// Public, no authentication:
//
//	GET  /health           liveness check
//	GET  /api/menu         aggregated menu (categories, items, settings)
//	POST /api/login        password login, sets the session cookie
//	POST /api/logout       clears the session
//	GET  /api/auth/status  session check for the admin UI
//
// Admin, session cookie required (401 otherwise):
//
//	POST   /api/categories        create category
//	PUT    /api/categories/{id}   update category
//	DELETE /api/categories/{id}   delete category (items cascade)
//	POST   /api/items             create item
//	PUT    /api/items/{id}        update item
//	DELETE /api/items/{id}        delete item
//	POST   /api/settings          atomic settings upsert
//	POST   /api/upload-hero       multipart hero image upload
//
// Everything else is served from the configured static directory, with
// /uploads/ mapped to the uploads directory.
//
// # Error Shape
//
// API errors are JSON objects with an "error" field. Validation failures are
// 400; missing or expired sessions are 401; public menu read failures are
// 500 with "Database error".
//
// # Lifecycle
//
// Run blocks until the context is canceled, then shuts the HTTP server down
// with a bounded timeout. A background ticker sweeps expired sessions while
// the server runs.
package server
