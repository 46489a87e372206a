package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dkeita/invenpos/internal/models"
	"github.com/dkeita/invenpos/internal/services"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}, &models.Supplier{}, &models.Restock{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newProductHandler(t *testing.T, db *gorm.DB) *ProductHandler {
	t.Helper()
	return NewProductHandler(services.NewCatalogService(db), services.NewSupplierService(db), t.TempDir())
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestProductAddJSON(t *testing.T) {
	db := setupTestDB(t)
	h := newProductHandler(t, db)

	req := formRequest(http.MethodPost, "/products/add", url.Values{
		"name":     {"Soda"},
		"price":    {"1.50"},
		"quantity": {"3"},
	})
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	h.Add(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var p models.Product
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Name != "Soda" || p.Quantity != 3 {
		t.Fatalf("unexpected product: %+v", p)
	}
}

func TestProductAddValidationJSON(t *testing.T) {
	db := setupTestDB(t)
	h := newProductHandler(t, db)

	req := formRequest(http.MethodPost, "/products/add", url.Values{
		"name":     {"Soda"},
		"price":    {"abc"},
		"quantity": {"3"},
	})
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	h.Add(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no product created, got %d", count)
	}
}

func TestProductAddValidationRedirects(t *testing.T) {
	db := setupTestDB(t)
	h := newProductHandler(t, db)

	req := formRequest(http.MethodPost, "/products/add", url.Values{
		"name":     {""},
		"price":    {"1.50"},
		"quantity": {"3"},
	})
	w := httptest.NewRecorder()
	h.Add(w, req)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/products" {
		t.Fatalf("expected redirect to /products got %s", loc)
	}
}

func TestProductListJSONSearch(t *testing.T) {
	db := setupTestDB(t)
	h := newProductHandler(t, db)
	catalog := services.NewCatalogService(db)
	for _, name := range []string{"Cola", "Lemonade", "Cold Brew"} {
		if _, err := catalog.CreateProduct(services.ProductInput{Name: name, Price: "2.00", Quantity: "1"}); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/products?q=col", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	h.List(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var payload struct {
		Items []models.Product `json:"items"`
		Total int64            `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Total != 2 {
		t.Fatalf("expected 2 matches got %d", payload.Total)
	}
}

func TestProductListHTML(t *testing.T) {
	db := setupTestDB(t)
	h := newProductHandler(t, db)
	catalog := services.NewCatalogService(db)
	if _, err := catalog.CreateProduct(services.ProductInput{Name: "Espresso Beans", Price: "9.90", Quantity: "4"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	h.List(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Espresso Beans") {
		t.Fatalf("expected product name in body")
	}
}

func TestProductInlineCategory(t *testing.T) {
	db := setupTestDB(t)
	h := newProductHandler(t, db)

	req := formRequest(http.MethodPost, "/products", url.Values{"category_name": {"Drinks"}})
	w := httptest.NewRecorder()
	h.AddInlineCategory(w, req)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w.Code)
	}

	// Submitting the same name again is a no-op, not an error.
	req2 := formRequest(http.MethodPost, "/products", url.Values{"category_name": {"Drinks"}})
	w2 := httptest.NewRecorder()
	h.AddInlineCategory(w2, req2)
	if w2.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w2.Code)
	}
	var count int64
	db.Model(&models.Category{}).Where("name = ?", "Drinks").Count(&count)
	if count != 1 {
		t.Fatalf("expected a single category got %d", count)
	}
}

func TestProductDeleteJSON(t *testing.T) {
	db := setupTestDB(t)
	h := newProductHandler(t, db)
	catalog := services.NewCatalogService(db)
	if _, err := catalog.CreateProduct(services.ProductInput{Name: "Cola", Price: "2.00", Quantity: "1"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/products/delete/1", nil)
	req.SetPathValue("id", "1")
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	h.Delete(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}

	// Deleting again reports not found.
	req2 := httptest.NewRequest(http.MethodPost, "/products/delete/1", nil)
	req2.SetPathValue("id", "1")
	req2.Header.Set("Accept", "application/json")
	w2 := httptest.NewRecorder()
	h.Delete(w2, req2)
	if w2.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w2.Code)
	}
}
