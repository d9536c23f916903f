// Package auth provides password authentication and session management for
// the admin API.
//
// # Authentication Model
//
// There is a single admin identity protected by one configured password. The
// password may be given as plaintext or as a bcrypt hash; hashes are detected
// by their "$2a$"/"$2b$"/"$2y$" prefix. Plaintext comparison uses
// crypto/subtle to avoid timing leaks.
//
// # Sessions
//
// A successful login creates a session row in the database and sets an
// HttpOnly cookie holding the session ID. Sessions expire after the
// configured TTL; expired rows are ignored on lookup and swept periodically
// by the server.
//
// # Middleware
//
// RequireSession gates admin endpoints:
//
//	mux.Handle("POST /api/admin/categories", auth.RequireSession(a)(handler))
//
// Requests without a valid session receive a 401 with a JSON error body
// before the handler runs. Validated sessions are attached to the request
// context and can be read with SessionFromContext.
package auth
