package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/dkeita/invenpos/internal/models"
	"github.com/dkeita/invenpos/internal/validation"
)

// RestockService appends stock-addition events to the ledger and keeps the
// product counter consistent with it.
type RestockService struct{ DB *gorm.DB }

func NewRestockService(db *gorm.DB) *RestockService { return &RestockService{DB: db} }

// Restock adds qty units to the product and appends one ledger row, both in
// a single transaction. The quantity increment is issued as an atomic
// "quantity = quantity + ?" update, never a read-then-write pair, so
// overlapping restocks of the same product cannot lose an update. An
// unknown supplier id degrades silently to a supplier-less entry.
func (s *RestockService) Restock(productID uint, qty int, supplierID *uint) (*models.Restock, error) {
	v := validation.Violations{}
	validation.PositiveInt("restock_qty", qty, v)
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	var product models.Product
	if err := s.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var resolvedSupplier *uint
	if supplierID != nil {
		var sup models.Supplier
		if err := s.DB.First(&sup, *supplierID).Error; err == nil {
			resolvedSupplier = &sup.ID
		}
	}
	entry := models.Restock{
		ProductID:     product.ID,
		SupplierID:    resolvedSupplier,
		QuantityAdded: qty,
		RestockedAt:   time.Now(),
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).Where("id = ?", product.ID).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", qty))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// History lists the ledger rows of one product, newest first.
func (s *RestockService) History(productID uint) ([]models.Restock, error) {
	var entries []models.Restock
	err := s.DB.Where("product_id = ?", productID).
		Order("restocked_at desc, id desc").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Recent returns the latest ledger rows across all products with their
// product and supplier preloaded (admin dashboard widget).
func (s *RestockService) Recent(limit int) ([]models.Restock, error) {
	if limit <= 0 {
		limit = 5
	}
	var entries []models.Restock
	err := s.DB.Preload("Product").Preload("Supplier").
		Order("restocked_at desc, id desc").Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
