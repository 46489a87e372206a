package handlers

import (
	"net/http"

	"github.com/dkeita/invenpos/internal/httpx"
	"github.com/dkeita/invenpos/internal/services"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

func NewCategoryHandler(catalog *services.CatalogService) *CategoryHandler {
	return &CategoryHandler{Catalog: catalog}
}

// Add: POST /add-category – strict create, duplicate names are rejected.
func (h *CategoryHandler) Add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	cat, err := h.Catalog.CreateCategory(r.FormValue("name"))
	if err != nil {
		redirectWithError(w, r, "/products", err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, cat)
		return
	}
	redirectWithSuccess(w, r, "/products", "Category \""+cat.Name+"\" added successfully!")
}

// Edit: POST /edit-category/{id} – rename, propagating the label.
func (h *CategoryHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	newName := r.FormValue("name")
	if err := h.Catalog.RenameCategory(id, newName); err != nil {
		redirectWithError(w, r, "/products", err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "renamed"})
		return
	}
	redirectWithSuccess(w, r, "/products", "Category renamed to \""+newName+"\" successfully!")
}

// Delete: POST /delete-category/{id} – removes the category and every
// product carrying its label.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := h.Catalog.DeleteCategory(id); err != nil {
		redirectWithError(w, r, "/products", err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
		return
	}
	redirectWithSuccess(w, r, "/products", "Category and all its products have been deleted!")
}
