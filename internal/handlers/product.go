package handlers

import (
	"net/http"
	"strconv"

	"github.com/dkeita/invenpos/internal/httpx"
	"github.com/dkeita/invenpos/internal/services"
)

type ProductHandler struct {
	Catalog   *services.CatalogService
	Suppliers *services.SupplierService
	UploadDir string
}

func NewProductHandler(catalog *services.CatalogService, suppliers *services.SupplierService, uploadDir string) *ProductHandler {
	return &ProductHandler{Catalog: catalog, Suppliers: suppliers, UploadDir: uploadDir}
}

// List: GET /products – search/filter/paginate, HTML or JSON.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page = n
		}
	}
	result, err := h.Catalog.ListProducts(services.ProductFilter{
		Query:      r.URL.Query().Get("q"),
		CategoryID: r.URL.Query().Get("category"),
		Page:       page,
	})
	if err != nil {
		redirectWithError(w, r, "/products", err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{
			"items":       result.Items,
			"total":       result.Total,
			"page":        result.Page,
			"total_pages": result.TotalPages,
		})
		return
	}
	categories, err := h.Catalog.Categories()
	if err != nil {
		redirectWithError(w, r, "/", err)
		return
	}
	suppliers, _, _, err := h.Suppliers.List()
	if err != nil {
		redirectWithError(w, r, "/", err)
		return
	}
	renderTemplate(w, r, "products", map[string]any{
		"Products":   result.Items,
		"Total":      result.Total,
		"Page":       result.Page,
		"TotalPages": result.TotalPages,
		"PageRange":  result.PageRange,
		"Selected":   result.Selected,
		"Categories": categories,
		"Suppliers":  suppliers,
		"Query":      r.URL.Query().Get("q"),
	})
}

// AddInlineCategory: POST /products with an add_category field – the
// get-or-create box on the listing page.
func (h *ProductHandler) AddInlineCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	name := r.FormValue("category_name")
	if name == "" {
		http.Redirect(w, r, "/products", statusSeeOther)
		return
	}
	cat, created, err := h.Catalog.GetOrCreateCategory(name)
	if err != nil {
		redirectWithError(w, r, "/products", err)
		return
	}
	if created {
		redirectWithSuccess(w, r, "/products", "Category \""+cat.Name+"\" added successfully!")
		return
	}
	http.Redirect(w, r, "/products", statusSeeOther)
}

// Add: POST /products/add – multipart form with an optional image.
func (h *ProductHandler) Add(w http.ResponseWriter, r *http.Request) {
	in, err := h.productInput(r)
	if err != nil {
		redirectWithError(w, r, "/products", err)
		return
	}
	p, err := h.Catalog.CreateProduct(in)
	if err != nil {
		redirectWithError(w, r, "/products", err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, p)
		return
	}
	redirectWithSuccess(w, r, "/products", "Product \""+p.Name+"\" added successfully!")
}

// EditForm: GET /products/edit/{id}
func (h *ProductHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		redirectWithError(w, r, "/products", err)
		return
	}
	categories, err := h.Catalog.Categories()
	if err != nil {
		redirectWithError(w, r, "/products", err)
		return
	}
	renderTemplate(w, r, "edit_product", map[string]any{"Product": p, "Categories": categories})
}

// Edit: POST /products/edit/{id}
func (h *ProductHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	in, err := h.productInput(r)
	if err != nil {
		redirectWithError(w, r, "/products", err)
		return
	}
	p, err := h.Catalog.UpdateProduct(id, in)
	if err != nil {
		redirectWithError(w, r, "/products", err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, p)
		return
	}
	redirectWithSuccess(w, r, "/products", "Product \""+p.Name+"\" updated successfully!")
}

// Delete: POST /products/delete/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := h.Catalog.DeleteProduct(id); err != nil {
		redirectWithError(w, r, "/products", err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
		return
	}
	redirectWithSuccess(w, r, "/products", "Product deleted.")
}

// productInput reads the product form. The image is optional; everything
// else is passed through raw so the service owns validation.
func (h *ProductHandler) productInput(r *http.Request) (services.ProductInput, error) {
	var imagePath string
	if err := r.ParseMultipartForm(maxUploadBytes); err == nil {
		if file, header, ferr := r.FormFile("image"); ferr == nil {
			var serr error
			imagePath, serr = saveUpload(h.UploadDir, file, header)
			if serr != nil {
				return services.ProductInput{}, serr
			}
		}
	} else if err := r.ParseForm(); err != nil {
		return services.ProductInput{}, err
	}
	return services.ProductInput{
		Name:       r.FormValue("name"),
		Price:      r.FormValue("price"),
		Quantity:   r.FormValue("quantity"),
		CategoryID: r.FormValue("category"),
		ImagePath:  imagePath,
	}, nil
}
