package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dkeita/invenpos/internal/httpx"
	"github.com/dkeita/invenpos/internal/middleware"
	"github.com/dkeita/invenpos/internal/services"
	"github.com/dkeita/invenpos/internal/view"
)

// Explicit constant for 303 See Other (Post/Redirect/Get)
const statusSeeOther = 303

const maxUploadBytes = 8 << 20

func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Flash"]; !ok {
		if level, msg := middleware.PopFlash(w, r); msg != "" {
			data["Flash"] = msg
			data["FlashLevel"] = level
		}
	}
	if err := view.Render(w, r, name+".html", data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("template render failed")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("template error"))
	}
}

// pathID extracts the trailing numeric id of paths like /products/edit/{id}.
func pathID(r *http.Request) (uint, bool) {
	raw := r.PathValue("id")
	if raw == "" {
		// Fallback for handlers registered without a pattern wildcard.
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		raw = parts[len(parts)-1]
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// redirectWithError converts a workflow error into a flash message plus a
// 303 back to the listing page; nothing propagates as an uncaught fault.
func redirectWithError(w http.ResponseWriter, r *http.Request, target string, err error) {
	if httpx.WantsJSON(r) {
		switch {
		case services.IsValidation(err):
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", err.Error())
		case errors.Is(err, services.ErrNotFound):
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		case errors.Is(err, services.ErrConflict):
			httpx.JSONError(w, http.StatusConflict, "conflict", nil)
		default:
			log.Error().Err(err).Str("path", r.URL.Path).Msg("workflow error")
			httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		}
		return
	}
	switch {
	case services.IsValidation(err):
		middleware.Flash(w, "error", "Please check the submitted fields.")
	case errors.Is(err, services.ErrNotFound):
		middleware.Flash(w, "error", "The requested record no longer exists.")
	case errors.Is(err, services.ErrConflict):
		middleware.Flash(w, "error", "A record with that name already exists.")
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("workflow error")
		middleware.Flash(w, "error", "Something went wrong, please try again.")
	}
	http.Redirect(w, r, target, statusSeeOther)
}

func redirectWithSuccess(w http.ResponseWriter, r *http.Request, target, msg string) {
	middleware.Flash(w, "success", msg)
	http.Redirect(w, r, target, statusSeeOther)
}

// saveUpload stores an uploaded image under dir with a uuid filename and
// returns the public path. An empty return means nothing was uploaded.
func saveUpload(dir string, file multipart.File, header *multipart.FileHeader) (string, error) {
	if file == nil || header == nil {
		return "", nil
	}
	defer file.Close()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, io.LimitReader(file, maxUploadBytes)); err != nil {
		return "", err
	}
	return fmt.Sprintf("/media/%s", name), nil
}
