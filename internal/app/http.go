package app

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"storeforge/api/internal/draft"
	"storeforge/api/internal/editor"
	"storeforge/api/internal/publish"
	"storeforge/api/internal/search"
)

type HTTPServer struct {
	service    *Service
	corsOrigin string
}

func NewHTTPServer(service *Service, corsOrigin string) *HTTPServer {
	return &HTTPServer{service: service, corsOrigin: corsOrigin}
}

func (s *HTTPServer) Handler() http.Handler {
	return s.withMiddleware(http.HandlerFunc(s.handle))
}

func (s *HTTPServer) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	parts := splitPath(r.URL.Path)

	if r.Method == http.MethodGet && r.URL.Path == "/api/health" {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/ready" {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		checks := map[string]string{"database": "ok", "drafts": "ok"}
		status := http.StatusOK
		if err := s.service.Ping(ctx); err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := s.service.PingDrafts(ctx); err != nil {
			checks["drafts"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, map[string]any{"checks": checks})
		return
	}

	// Shops

	if r.Method == http.MethodPost && r.URL.Path == "/api/shops" {
		var body struct {
			Name string `json:"name"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		shop, err := s.service.CreateShop(r.Context(), body.Name)
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusCreated, shop)
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/shops" {
		shops, err := s.service.ListShops(r.Context())
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"shops": shops})
		return
	}

	if r.Method == http.MethodGet && len(parts) == 3 && parts[0] == "api" && parts[1] == "shops" {
		shop, err := s.service.GetShop(r.Context(), parts[2])
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusOK, shop)
		return
	}

	if r.Method == http.MethodPost && len(parts) == 4 && parts[0] == "api" && parts[1] == "shops" && parts[3] == "editor" {
		state, err := s.service.OpenEditor(r.Context(), parts[2])
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusCreated, state)
		return
	}

	// Editor sessions

	if len(parts) >= 3 && parts[0] == "api" && parts[1] == "editor" {
		sessionID := parts[2]

		if r.Method == http.MethodDelete && len(parts) == 3 {
			if err := s.service.CloseEditor(sessionID); err != nil {
				status, code, message, details := mapError(err)
				writeError(w, status, code, message, details)
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"status": "closed"})
			return
		}

		if r.Method == http.MethodPost && len(parts) == 4 && parts[3] == "mutations" {
			var input MutationInput
			if err := decodeBody(r, &input); err != nil {
				writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
				return
			}
			state, err := s.service.ApplyMutation(r.Context(), sessionID, input)
			if err != nil {
				status, code, message, details := mapError(err)
				writeError(w, status, code, message, details)
				return
			}
			writeJSON(w, http.StatusOK, state)
			return
		}

		if r.Method == http.MethodPost && len(parts) == 4 && parts[3] == "undo" {
			state, err := s.service.Undo(r.Context(), sessionID)
			if err != nil {
				status, code, message, details := mapError(err)
				writeError(w, status, code, message, details)
				return
			}
			writeJSON(w, http.StatusOK, state)
			return
		}

		if r.Method == http.MethodPost && len(parts) == 4 && parts[3] == "redo" {
			state, err := s.service.Redo(r.Context(), sessionID)
			if err != nil {
				status, code, message, details := mapError(err)
				writeError(w, status, code, message, details)
				return
			}
			writeJSON(w, http.StatusOK, state)
			return
		}

		if r.Method == http.MethodPost && len(parts) == 4 && parts[3] == "boundary" {
			state, err := s.service.CommitBoundary(sessionID)
			if err != nil {
				status, code, message, details := mapError(err)
				writeError(w, status, code, message, details)
				return
			}
			writeJSON(w, http.StatusOK, state)
			return
		}

		if r.Method == http.MethodPost && len(parts) == 4 && parts[3] == "save" {
			result, err := s.service.SaveSession(r.Context(), sessionID)
			if err != nil {
				status, code, message, details := mapError(err)
				writeError(w, status, code, message, details)
				return
			}
			writeJSON(w, http.StatusOK, result)
			return
		}

		if r.Method == http.MethodPost && len(parts) == 5 && parts[3] == "template" {
			state, err := s.service.ApplyTemplateByID(r.Context(), sessionID, parts[4])
			if err != nil {
				status, code, message, details := mapError(err)
				writeError(w, status, code, message, details)
				return
			}
			writeJSON(w, http.StatusOK, state)
			return
		}

		if r.Method == http.MethodGet && len(parts) == 4 && parts[3] == "preview" {
			payload, err := s.service.Preview(sessionID)
			if err != nil {
				status, code, message, details := mapError(err)
				writeError(w, status, code, message, details)
				return
			}
			writeJSON(w, http.StatusOK, payload)
			return
		}

		if r.Method == http.MethodGet && len(parts) == 4 && parts[3] == "sections" {
			sections, err := s.service.Sections(sessionID)
			if err != nil {
				status, code, message, details := mapError(err)
				writeError(w, status, code, message, details)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"sections": sections})
			return
		}
	}

	// Templates and section catalog

	if r.Method == http.MethodGet && r.URL.Path == "/api/templates" {
		writeJSON(w, http.StatusOK, s.service.Templates())
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/templates/search" {
		query := r.URL.Query()
		limit, _ := strconv.Atoi(query.Get("limit"))
		offset, _ := strconv.Atoi(query.Get("offset"))
		response := s.service.SearchTemplates(search.Query{
			Text:     query.Get("q"),
			Category: query.Get("category"),
			FreeOnly: query.Get("free") == "true",
			Limit:    limit,
			Offset:   offset,
		})
		writeJSON(w, http.StatusOK, response)
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/sections" {
		writeJSON(w, http.StatusOK, map[string]any{"sections": s.service.SectionCatalog()})
		return
	}

	// Publishing

	if len(parts) >= 4 && parts[0] == "api" && parts[1] == "shops" {
		shopID := parts[2]

		if r.Method == http.MethodPost && len(parts) == 4 && parts[3] == "publish" {
			var input PublishInput
			if err := decodeBody(r, &input); err != nil {
				writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
				return
			}
			info, err := s.service.PublishShop(r.Context(), shopID, input)
			if err != nil {
				status, code, message, details := mapError(err)
				writeError(w, status, code, message, details)
				return
			}
			writeJSON(w, http.StatusCreated, info)
			return
		}

		if r.Method == http.MethodGet && len(parts) == 4 && parts[3] == "publishes" {
			limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
			history, err := s.service.Publishes(r.Context(), shopID, limit)
			if err != nil {
				status, code, message, details := mapError(err)
				writeError(w, status, code, message, details)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"publishes": history})
			return
		}

		if r.Method == http.MethodGet && len(parts) == 5 && parts[3] == "publishes" {
			doc, info, err := s.service.PublishedVersion(r.Context(), shopID, parts[4])
			if err != nil {
				status, code, message, details := mapError(err)
				writeError(w, status, code, message, details)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"document": doc, "publish": info})
			return
		}

		if r.Method == http.MethodGet && len(parts) == 4 && parts[3] == "live" {
			doc, info, err := s.service.LiveVersion(r.Context(), shopID)
			if err != nil {
				status, code, message, details := mapError(err)
				writeError(w, status, code, message, details)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"document": doc, "publish": info})
			return
		}

		// Media library

		if r.Method == http.MethodPost && len(parts) == 4 && parts[3] == "assets" {
			s.handleAssetUpload(w, r, shopID)
			return
		}

		if r.Method == http.MethodGet && len(parts) == 4 && parts[3] == "assets" {
			payloads, err := s.service.ListAssets(r.Context(), shopID)
			if err != nil {
				status, code, message, details := mapError(err)
				writeError(w, status, code, message, details)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"assets": payloads})
			return
		}
	}

	writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
}

const maxUploadBytes = 32 << 20

func (s *HTTPServer) handleAssetUpload(w http.ResponseWriter, r *http.Request, shopID string) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_UPLOAD", "Expected multipart form with a file field", nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_UPLOAD", "Missing file field", nil)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	payload, err := s.service.UploadAsset(r.Context(), shopID, header.Filename, contentType, file, header.Size)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}
	writeJSON(w, http.StatusCreated, payload)
}

func (s *HTTPServer) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = randomRequestID()
		}
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		started := time.Now()
		writer := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		setCORSHeaders(writer.Header(), s.corsOrigin)
		writer.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(writer, r)

		log.Printf(`{"request_id":"%s","method":"%s","path":"%s","status":%d,"duration_ms":%d}`,
			requestID,
			r.Method,
			r.URL.Path,
			writer.status,
			time.Since(started).Milliseconds(),
		)
	})
}

type requestIDKey struct{}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func randomRequestID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func setCORSHeaders(header http.Header, corsOrigin string) {
	header.Set("Access-Control-Allow-Origin", corsOrigin)
	header.Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
	header.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
	header.Set("Cache-Control", "no-store")
	header.Set("Content-Type", "application/json")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string, details any) {
	response := map[string]any{
		"code":  code,
		"error": message,
	}
	if details != nil {
		response["details"] = details
	}
	writeJSON(w, status, response)
}

func decodeBody(r *http.Request, target any) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, http.ErrBodyReadAfterClose) {
			return nil
		}
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func mapError(err error) (status int, code, message string, details any) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Status, domainErr.Code, domainErr.Message, domainErr.Details
	}
	var docErr *editor.DocumentError
	if errors.As(err, &docErr) {
		return http.StatusUnprocessableEntity, docErr.Code, docErr.Message, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return http.StatusNotFound, "NOT_FOUND", "Not found", nil
	}
	if errors.Is(err, publish.ErrNotPublished) {
		return http.StatusNotFound, "NOT_PUBLISHED", "Shop has no published version", nil
	}
	if errors.Is(err, draft.ErrNotFound) {
		return http.StatusNotFound, "DRAFT_NOT_FOUND", "Draft not found", nil
	}
	return http.StatusInternalServerError, "SERVER_ERROR", "Server error", nil
}
