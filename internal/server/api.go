// ABOUTME: HTTP API handlers for the public menu and the admin CRUD surface
// ABOUTME: Decodes JSON requests, maps service errors to status codes, and encodes responses

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/2389/diner-menu/internal/auth"
	"github.com/2389/diner-menu/internal/menu"
)

// LoginRequest is the JSON request body for POST /api/login.
type LoginRequest struct {
	Password string `json:"password"`
}

// CategoryRequest is the JSON request body for category create and update.
type CategoryRequest struct {
	Name      string `json:"name"`
	SortOrder *int   `json:"sort_order"`
}

// ItemRequest is the JSON request body for item create and update.
type ItemRequest struct {
	CategoryID  *int64     `json:"category_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       priceField `json:"price"`
	SortOrder   *int       `json:"sort_order"`
}

// priceField accepts a price as either a JSON number or a numeric string.
type priceField float64

func (p *priceField) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*p = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.New("price must be a number")
	}
	*p = priceField(v)
	return nil
}

// sendJSONError writes a JSON error response.
func (s *Server) sendJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// sendJSON writes a JSON response with status 200.
func (s *Server) sendJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// sendSuccess writes the {"success":true} body used by mutation endpoints.
func (s *Server) sendSuccess(w http.ResponseWriter) {
	s.sendJSON(w, map[string]bool{"success": true})
}

// mutationError maps a create/update/delete failure to an HTTP response.
// Validation and constraint failures surface as 400 with the error message.
func (s *Server) mutationError(w http.ResponseWriter, err error) {
	s.sendJSONError(w, http.StatusBadRequest, err.Error())
}

// pathID parses the {id} path segment. Returns false after writing a 400
// when the segment is not an integer.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// handleMenu handles GET /api/menu. It returns the fully aggregated menu for
// the public site.
func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	m, err := s.menu.PublicMenu(r.Context())
	if err != nil {
		s.logger.Error("failed to build menu", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "Database error")
		return
	}
	s.sendJSON(w, m)
}

// handleLogin handles POST /api/login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	session, err := s.auth.Login(r.Context(), req.Password)
	if errors.Is(err, auth.ErrInvalidPassword) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "Invalid password"})
		return
	}
	if err != nil {
		s.logger.Error("login failed", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.auth.SetSessionCookie(w, r, session)
	s.sendSuccess(w)
}

// handleLogout handles POST /api/logout. Always succeeds, even without a
// valid session.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.SessionCookieName); err == nil {
		if err := s.auth.Logout(r.Context(), cookie.Value); err != nil {
			s.logger.Warn("logout failed", "error", err)
		}
	}
	s.auth.ClearSessionCookie(w, r)
	s.sendSuccess(w)
}

// handleAuthStatus handles GET /api/auth/status.
func (s *Server) handleAuthStatus(w http.ResponseWriter, r *http.Request) {
	authenticated := false
	if cookie, err := r.Cookie(auth.SessionCookieName); err == nil {
		if _, err := s.auth.Validate(r.Context(), cookie.Value); err == nil {
			authenticated = true
		}
	}
	s.sendJSON(w, map[string]bool{"isAuthenticated": authenticated})
}

// handleCreateCategory handles POST /api/categories.
func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	category, err := s.menu.CreateCategory(r.Context(), req.Name, intOrZero(req.SortOrder))
	if err != nil {
		s.mutationError(w, err)
		return
	}

	s.sendJSON(w, menu.MenuCategory{
		ID:        category.ID,
		Name:      category.Name,
		SortOrder: category.SortOrder,
		Items:     []menu.MenuItem{},
	})
}

// handleUpdateCategory handles PUT /api/categories/{id}.
func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.menu.UpdateCategory(r.Context(), id, req.Name, intOrZero(req.SortOrder)); err != nil {
		s.mutationError(w, err)
		return
	}
	s.sendSuccess(w)
}

// handleDeleteCategory handles DELETE /api/categories/{id}.
func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	if err := s.menu.DeleteCategory(r.Context(), id); err != nil {
		s.mutationError(w, err)
		return
	}
	s.sendSuccess(w)
}

// handleCreateItem handles POST /api/items.
func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	params, ok := s.decodeItemParams(w, r)
	if !ok {
		return
	}

	item, err := s.menu.CreateItem(r.Context(), params)
	if err != nil {
		s.mutationError(w, err)
		return
	}

	s.sendJSON(w, menu.MenuItem{
		ID:          item.ID,
		CategoryID:  item.CategoryID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		SortOrder:   item.SortOrder,
	})
}

// handleUpdateItem handles PUT /api/items/{id}.
func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	params, ok := s.decodeItemParams(w, r)
	if !ok {
		return
	}

	if err := s.menu.UpdateItem(r.Context(), id, params); err != nil {
		s.mutationError(w, err)
		return
	}
	s.sendSuccess(w)
}

// handleDeleteItem handles DELETE /api/items/{id}.
func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	if err := s.menu.DeleteItem(r.Context(), id); err != nil {
		s.mutationError(w, err)
		return
	}
	s.sendSuccess(w)
}

// handleUpdateSettings handles POST /api/settings. The body is a flat object
// of setting key/value pairs, applied atomically.
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.menu.UpdateSettings(r.Context(), values); err != nil {
		s.mutationError(w, err)
		return
	}
	s.sendSuccess(w)
}

// decodeItemParams decodes and converts an ItemRequest. Returns false after
// writing a 400 on malformed JSON.
func (s *Server) decodeItemParams(w http.ResponseWriter, r *http.Request) (menu.ItemParams, bool) {
	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return menu.ItemParams{}, false
	}

	return menu.ItemParams{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       float64(req.Price),
		SortOrder:   intOrZero(req.SortOrder),
	}, true
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
