package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/dkeita/invenpos/internal/models"
	"github.com/dkeita/invenpos/internal/services"
)

func TestRestockSubmitJSON(t *testing.T) {
	db := setupTestDB(t)
	catalog := services.NewCatalogService(db)
	h := NewRestockHandler(catalog, services.NewSupplierService(db), services.NewRestockService(db))

	p, err := catalog.CreateProduct(services.ProductInput{Name: "Cola", Price: "2.00", Quantity: "10"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	id := strconv.FormatUint(uint64(p.ID), 10)
	req := formRequest(http.MethodPost, "/products/restock/"+id, url.Values{"restock_qty": {"5"}})
	req.SetPathValue("id", id)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	h.Submit(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var entry models.Restock
	if err := json.Unmarshal(w.Body.Bytes(), &entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if entry.QuantityAdded != 5 {
		t.Fatalf("expected quantity 5 got %d", entry.QuantityAdded)
	}

	updated, err := catalog.GetProduct(p.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if updated.Quantity != 15 {
		t.Fatalf("expected quantity 15 got %d", updated.Quantity)
	}
}

func TestRestockSubmitNonNumericQuantity(t *testing.T) {
	db := setupTestDB(t)
	catalog := services.NewCatalogService(db)
	h := NewRestockHandler(catalog, services.NewSupplierService(db), services.NewRestockService(db))

	p, err := catalog.CreateProduct(services.ProductInput{Name: "Cola", Price: "2.00", Quantity: "10"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	id := strconv.FormatUint(uint64(p.ID), 10)
	req := formRequest(http.MethodPost, "/products/restock/"+id, url.Values{"restock_qty": {"abc"}})
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()
	h.Submit(w, req)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w.Code)
	}

	updated, err := catalog.GetProduct(p.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if updated.Quantity != 10 {
		t.Fatalf("quantity must be unchanged, got %d", updated.Quantity)
	}
	var ledger int64
	db.Model(&models.Restock{}).Count(&ledger)
	if ledger != 0 {
		t.Fatalf("expected empty ledger got %d rows", ledger)
	}
}

func TestRestockSubmitNonPositiveQuantityJSON(t *testing.T) {
	db := setupTestDB(t)
	catalog := services.NewCatalogService(db)
	h := NewRestockHandler(catalog, services.NewSupplierService(db), services.NewRestockService(db))

	p, err := catalog.CreateProduct(services.ProductInput{Name: "Cola", Price: "2.00", Quantity: "10"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	id := strconv.FormatUint(uint64(p.ID), 10)
	req := formRequest(http.MethodPost, "/products/restock/"+id, url.Values{"restock_qty": {"0"}})
	req.SetPathValue("id", id)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	h.Submit(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestRestockFormHTML(t *testing.T) {
	db := setupTestDB(t)
	catalog := services.NewCatalogService(db)
	restocks := services.NewRestockService(db)
	h := NewRestockHandler(catalog, services.NewSupplierService(db), restocks)

	p, err := catalog.CreateProduct(services.ProductInput{Name: "Cola", Price: "2.00", Quantity: "10"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := restocks.Restock(p.ID, 4, nil); err != nil {
		t.Fatalf("restock: %v", err)
	}

	id := strconv.FormatUint(uint64(p.ID), 10)
	req := httptest.NewRequest(http.MethodGet, "/products/restock/"+id, nil)
	req.SetPathValue("id", id)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	h.Form(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
}
