package services

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dkeita/invenpos/internal/models"
	"github.com/dkeita/invenpos/internal/validation"
)

// PageSize is the fixed products-per-page count of the listing view.
const PageSize = 10

// CatalogService owns products and categories, including the
// label-matching category-delete cascade.
type CatalogService struct{ DB *gorm.DB }

func NewCatalogService(db *gorm.DB) *CatalogService { return &CatalogService{DB: db} }

// ProductInput carries raw form values; parsing failures become
// ValidationError rather than transport-level faults.
type ProductInput struct {
	Name       string
	Price      string
	Quantity   string
	CategoryID string // optional; unresolved ids degrade silently
	ImagePath  string // optional; empty means keep/none
}

// ProductFilter selects and pages the product listing.
type ProductFilter struct {
	Query      string
	CategoryID string
	Page       int
}

// ProductPage is one page of the listing plus the pagination window.
type ProductPage struct {
	Items      []models.Product
	Total      int64
	Page       int
	TotalPages int
	PageRange  []int
	Selected   *models.Category // resolved category filter, nil when unfiltered
}

func parseProductInput(in ProductInput, requirePrice bool) (decimal.Decimal, int, *ValidationError) {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	var price decimal.Decimal
	if strings.TrimSpace(in.Price) == "" {
		if requirePrice {
			v["price"] = "required"
		}
	} else {
		p, err := decimal.NewFromString(strings.TrimSpace(in.Price))
		if err != nil || p.IsNegative() {
			v["price"] = "invalid"
		} else {
			price = p
		}
	}
	qty := 0
	if strings.TrimSpace(in.Quantity) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(in.Quantity))
		if err != nil {
			v["quantity"] = "invalid"
		} else {
			validation.NonNegativeInt("quantity", n, v)
			qty = n
		}
	}
	if !v.Empty() {
		return decimal.Decimal{}, 0, &ValidationError{Violations: v}
	}
	return price, qty, nil
}

// resolveCategoryName maps a raw category id to its name. Absent or
// unknown ids return ok=false; callers decide the fallback.
func (s *CatalogService) resolveCategoryName(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return "", false
	}
	var cat models.Category
	if err := s.DB.First(&cat, uint(id)).Error; err != nil {
		return "", false
	}
	return cat.Name, true
}

// CreateProduct validates input, resolves the optional category reference
// (falling back to an empty label) and persists the product.
func (s *CatalogService) CreateProduct(in ProductInput) (*models.Product, error) {
	price, qty, verr := parseProductInput(in, true)
	if verr != nil {
		return nil, verr
	}
	label, _ := s.resolveCategoryName(in.CategoryID)
	p := models.Product{
		Name:      strings.TrimSpace(in.Name),
		Price:     price,
		Quantity:  qty,
		Category:  label,
		ImagePath: in.ImagePath,
	}
	if err := s.DB.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProduct applies supplied fields. A supplied category id is
// re-resolved; when resolution fails the existing label is kept.
func (s *CatalogService) UpdateProduct(id uint, in ProductInput) (*models.Product, error) {
	var p models.Product
	if err := s.DB.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	price, qty, verr := parseProductInput(in, true)
	if verr != nil {
		return nil, verr
	}
	p.Name = strings.TrimSpace(in.Name)
	p.Price = price
	p.Quantity = qty
	if label, ok := s.resolveCategoryName(in.CategoryID); ok {
		p.Category = label
	}
	if in.ImagePath != "" {
		p.ImagePath = in.ImagePath
	}
	if err := s.DB.Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProduct fetches one product.
func (s *CatalogService) GetProduct(id uint) (*models.Product, error) {
	var p models.Product
	if err := s.DB.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// DeleteProduct removes the product and its restock ledger rows in one
// transaction. Repeat deletes report ErrNotFound.
func (s *CatalogService) DeleteProduct(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var p models.Product
		if err := tx.First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("product_id = ?", p.ID).Delete(&models.Restock{}).Error; err != nil {
			return err
		}
		return tx.Delete(&p).Error
	})
}

// ListProducts searches, filters and paginates the catalog. The search is a
// case-insensitive substring match on name; an unknown category filter id
// silently yields the unfiltered list. The page window is the current page
// plus/minus two, clipped to [1, totalPages].
func (s *CatalogService) ListProducts(f ProductFilter) (*ProductPage, error) {
	dbq := s.DB.Model(&models.Product{})
	if q := strings.TrimSpace(f.Query); q != "" {
		dbq = dbq.Where("lower(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	var selected *models.Category
	if raw := strings.TrimSpace(f.CategoryID); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			var cat models.Category
			if err := s.DB.First(&cat, uint(id)).Error; err == nil {
				selected = &cat
				dbq = dbq.Where("category = ?", cat.Name)
			}
		}
	}
	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return nil, err
	}
	totalPages := int((total + PageSize - 1) / PageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	var items []models.Product
	if err := dbq.Order("id").Limit(PageSize).Offset((page - 1) * PageSize).Find(&items).Error; err != nil {
		return nil, err
	}
	start := page - 2
	if start < 1 {
		start = 1
	}
	end := page + 2
	if end > totalPages {
		end = totalPages
	}
	pageRange := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pageRange = append(pageRange, i)
	}
	return &ProductPage{
		Items:      items,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
		PageRange:  pageRange,
		Selected:   selected,
	}, nil
}

// Categories returns all categories ordered by name.
func (s *CatalogService) Categories() ([]models.Category, error) {
	var cats []models.Category
	if err := s.DB.Order("name").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

// GetOrCreateCategory is the idempotent inline-add path of the products
// page: an existing name is returned unchanged.
func (s *CatalogService) GetOrCreateCategory(name string) (*models.Category, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, &ValidationError{Violations: validation.Violations{"name": "required"}}
	}
	var cat models.Category
	err := s.DB.Where("name = ?", name).First(&cat).Error
	if err == nil {
		return &cat, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	cat = models.Category{Name: name}
	if err := s.DB.Create(&cat).Error; err != nil {
		return nil, false, err
	}
	return &cat, true, nil
}

// CreateCategory is the strict path: a duplicate name is a conflict.
func (s *CatalogService) CreateCategory(name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Violations: validation.Violations{"name": "required"}}
	}
	var count int64
	if err := s.DB.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrConflict
	}
	cat := models.Category{Name: name}
	if err := s.DB.Create(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// RenameCategory renames a category and propagates the new label to
// products still carrying the old one, so listing filters and the delete
// cascade keep working after a rename. Duplicate target names are rejected.
func (s *CatalogService) RenameCategory(id uint, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return &ValidationError{Violations: validation.Violations{"name": "required"}}
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var cat models.Category
		if err := tx.First(&cat, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		var count int64
		if err := tx.Model(&models.Category{}).Where("name = ? AND id <> ?", newName, id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrConflict
		}
		oldName := cat.Name
		cat.Name = newName
		if err := tx.Save(&cat).Error; err != nil {
			return err
		}
		if oldName == newName {
			return nil
		}
		return tx.Model(&models.Product{}).Where("category = ?", oldName).
			Update("category", newName).Error
	})
}

// DeleteCategory removes every product whose label matches the category's
// name (and their ledger rows), then the category itself, in a single
// transaction.
func (s *CatalogService) DeleteCategory(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var cat models.Category
		if err := tx.First(&cat, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		var productIDs []uint
		if err := tx.Model(&models.Product{}).Where("category = ?", cat.Name).
			Pluck("id", &productIDs).Error; err != nil {
			return err
		}
		if len(productIDs) > 0 {
			if err := tx.Where("product_id IN ?", productIDs).Delete(&models.Restock{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", productIDs).Delete(&models.Product{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&cat).Error
	})
}
