package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dkeita/invenpos/internal/httpx"
	"github.com/dkeita/invenpos/internal/middleware"
	"github.com/dkeita/invenpos/internal/services"
)

type RestockHandler struct {
	Catalog   *services.CatalogService
	Suppliers *services.SupplierService
	Restocks  *services.RestockService
}

func NewRestockHandler(catalog *services.CatalogService, suppliers *services.SupplierService, restocks *services.RestockService) *RestockHandler {
	return &RestockHandler{Catalog: catalog, Suppliers: suppliers, Restocks: restocks}
}

// Form: GET /products/restock/{id} – the restock page with the product,
// the supplier picker and the product's ledger history.
func (h *RestockHandler) Form(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	product, err := h.Catalog.GetProduct(id)
	if err != nil {
		redirectWithError(w, r, "/products", err)
		return
	}
	suppliers, _, _, err := h.Suppliers.List()
	if err != nil {
		redirectWithError(w, r, "/products", err)
		return
	}
	history, err := h.Restocks.History(id)
	if err != nil {
		redirectWithError(w, r, "/products", err)
		return
	}
	renderTemplate(w, r, "restock_product", map[string]any{
		"Product":   product,
		"Suppliers": suppliers,
		"History":   history,
	})
}

// Submit: POST /products/restock/{id} – fields restock_qty and supplier.
// Non-numeric or non-positive quantities are rejected with no state change;
// an unknown supplier id proceeds without a supplier.
func (h *RestockHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	qty, err := strconv.Atoi(strings.TrimSpace(r.FormValue("restock_qty")))
	if err != nil {
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"restock_qty": "invalid"})
			return
		}
		middleware.Flash(w, "error", "Invalid quantity entered.")
		http.Redirect(w, r, "/products", statusSeeOther)
		return
	}
	var supplierID *uint
	if v := strings.TrimSpace(r.FormValue("supplier")); v != "" {
		if n, perr := strconv.ParseUint(v, 10, 64); perr == nil {
			sid := uint(n)
			supplierID = &sid
		}
	}
	entry, err := h.Restocks.Restock(id, qty, supplierID)
	if err != nil {
		if services.IsValidation(err) && !httpx.WantsJSON(r) {
			middleware.Flash(w, "error", "Please enter a valid quantity.")
			http.Redirect(w, r, "/products", statusSeeOther)
			return
		}
		redirectWithError(w, r, "/products", err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, entry)
		return
	}
	product, _ := h.Catalog.GetProduct(id)
	name := ""
	if product != nil {
		name = product.Name
	}
	redirectWithSuccess(w, r, "/products", fmt.Sprintf("%s restocked by %d units.", name, entry.QuantityAdded))
}
