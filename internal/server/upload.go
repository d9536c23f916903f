// ABOUTME: Hero image upload handler for the admin API
// ABOUTME: Validates image content, stores the file in the uploads dir, and persists its URL

package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxUploadSize caps hero image uploads at 10 MB.
const maxUploadSize = 10 << 20

// handleUploadHero handles POST /api/upload-hero. It accepts a multipart
// form with a "heroImage" file field, stores the file under the uploads
// directory, and saves the resulting URL as the hero_image setting.
func (s *Server) handleUploadHero(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	file, header, err := r.FormFile("heroImage")
	if err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "heroImage file is required")
		return
	}
	defer file.Close()

	// Sniff the content type from the first bytes rather than trusting the
	// client-supplied header
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		s.sendJSONError(w, http.StatusBadRequest, "failed to read upload")
		return
	}
	if !strings.HasPrefix(http.DetectContentType(head[:n]), "image/") {
		s.sendJSONError(w, http.StatusBadRequest, "only image uploads are allowed")
		return
	}

	name := uploadFileName(header.Filename)
	if err := os.MkdirAll(s.config.Server.UploadsDir, 0755); err != nil {
		s.logger.Error("failed to create uploads dir", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	dst, err := os.Create(filepath.Join(s.config.Server.UploadsDir, name))
	if err != nil {
		s.logger.Error("failed to create upload file", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	defer dst.Close()

	if _, err := dst.Write(head[:n]); err != nil {
		s.logger.Error("failed to write upload", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		s.logger.Error("failed to write upload", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	imageURL := "/uploads/" + name
	if err := s.menu.SetHeroImage(r.Context(), imageURL); err != nil {
		s.logger.Error("failed to save hero image setting", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "failed to save hero image")
		return
	}

	s.logger.Info("hero image uploaded", "file", name)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "imageUrl": imageURL})
}

// uploadFileName builds a collision-resistant file name preserving the
// original extension.
func uploadFileName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("hero-bg-%d-%s%s", time.Now().UnixMilli(), suffix, ext)
}
