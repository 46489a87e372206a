package handlers

import (
	"net/http"

	"github.com/dkeita/invenpos/internal/httpx"
	"github.com/dkeita/invenpos/internal/services"
)

type SupplierHandler struct {
	Suppliers *services.SupplierService
}

func NewSupplierHandler(suppliers *services.SupplierService) *SupplierHandler {
	return &SupplierHandler{Suppliers: suppliers}
}

// List: GET /suppliers – HTML or JSON, with total and active counts.
func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	suppliers, total, active, err := h.Suppliers.List()
	if err != nil {
		redirectWithError(w, r, "/", err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{
			"items":  suppliers,
			"total":  total,
			"active": active,
		})
		return
	}
	renderTemplate(w, r, "suppliers", map[string]any{
		"Suppliers":       suppliers,
		"TotalSuppliers":  total,
		"ActiveSuppliers": active,
	})
}

// Add: POST /add_supplier
func (h *SupplierHandler) Add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	sup, err := h.Suppliers.Create(supplierInput(r))
	if err != nil {
		redirectWithError(w, r, "/suppliers", err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, sup)
		return
	}
	redirectWithSuccess(w, r, "/suppliers", "Supplier \""+sup.Name+"\" added successfully!")
}

// Edit: POST /edit_supplier/{id}
func (h *SupplierHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	sup, err := h.Suppliers.Update(id, supplierInput(r))
	if err != nil {
		redirectWithError(w, r, "/suppliers", err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, sup)
		return
	}
	redirectWithSuccess(w, r, "/suppliers", "Supplier updated successfully!")
}

// Delete: POST /delete_supplier/{id} – ledger rows keep their history,
// only the supplier reference is cleared.
func (h *SupplierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := h.Suppliers.Delete(id); err != nil {
		redirectWithError(w, r, "/suppliers", err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
		return
	}
	redirectWithSuccess(w, r, "/suppliers", "Supplier deleted.")
}

func supplierInput(r *http.Request) services.SupplierInput {
	active := r.FormValue("is_active")
	return services.SupplierInput{
		Name:    r.FormValue("name"),
		Contact: r.FormValue("contact"),
		Email:   r.FormValue("email"),
		Address: r.FormValue("address"),
		Company: r.FormValue("company"),
		Active:  active == "on" || active == "1" || active == "true",
	}
}
