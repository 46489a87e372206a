package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/dkeita/invenpos/internal/models"
	"github.com/dkeita/invenpos/internal/validation"
)

// SupplierService owns the supplier registry. Restock rows hold only a
// weak reference to suppliers: deleting one clears the reference but never
// touches the ledger.
type SupplierService struct{ DB *gorm.DB }

func NewSupplierService(db *gorm.DB) *SupplierService { return &SupplierService{DB: db} }

type SupplierInput struct {
	Name    string
	Contact string
	Email   string
	Address string
	Company string
	Active  bool
}

func (s *SupplierService) Create(in SupplierInput) (*models.Supplier, error) {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	sup := models.Supplier{
		Name:     strings.TrimSpace(in.Name),
		Contact:  in.Contact,
		Email:    in.Email,
		Address:  in.Address,
		Company:  in.Company,
		IsActive: true,
	}
	if err := s.DB.Create(&sup).Error; err != nil {
		return nil, err
	}
	return &sup, nil
}

func (s *SupplierService) Update(id uint, in SupplierInput) (*models.Supplier, error) {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	var sup models.Supplier
	if err := s.DB.First(&sup, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// Map form avoids the zero-value trap when deactivating a supplier.
	updates := map[string]any{
		"name":      strings.TrimSpace(in.Name),
		"contact":   in.Contact,
		"email":     in.Email,
		"address":   in.Address,
		"company":   in.Company,
		"is_active": in.Active,
	}
	if err := s.DB.Model(&sup).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &sup, nil
}

func (s *SupplierService) Get(id uint) (*models.Supplier, error) {
	var sup models.Supplier
	if err := s.DB.First(&sup, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sup, nil
}

// Delete clears the supplier reference on ledger rows, then removes the
// supplier, atomically. The ledger rows themselves survive.
func (s *SupplierService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var sup models.Supplier
		if err := tx.First(&sup, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Model(&models.Restock{}).Where("supplier_id = ?", sup.ID).
			Update("supplier_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&sup).Error
	})
}

// List returns all suppliers plus the total and active counts the
// suppliers page displays.
func (s *SupplierService) List() ([]models.Supplier, int64, int64, error) {
	var sups []models.Supplier
	if err := s.DB.Order("id").Find(&sups).Error; err != nil {
		return nil, 0, 0, err
	}
	total := int64(len(sups))
	var active int64
	for _, sup := range sups {
		if sup.IsActive {
			active++
		}
	}
	return sups, total, active, nil
}
