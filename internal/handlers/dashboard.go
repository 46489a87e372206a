package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/dkeita/invenpos/internal/auth"
	"github.com/dkeita/invenpos/internal/models"
	"github.com/dkeita/invenpos/internal/services"
)

type DashboardHandler struct {
	DB       *gorm.DB
	Restocks *services.RestockService
}

func NewDashboardHandler(db *gorm.DB, restocks *services.RestockService) *DashboardHandler {
	return &DashboardHandler{DB: db, Restocks: restocks}
}

// Home: GET / – the single role-based redirect.
func (h *DashboardHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, auth.DestinationFor(auth.CurrentPrincipal(r)), http.StatusSeeOther)
}

// Admin: GET /admin-dashboard – stats plus the latest ledger entries.
// Gated by RequireSuperuser at the router.
func (h *DashboardHandler) Admin(w http.ResponseWriter, r *http.Request) {
	var productCount, categoryCount, supplierCount, restockCount int64
	h.DB.Model(&models.Product{}).Count(&productCount)
	h.DB.Model(&models.Category{}).Count(&categoryCount)
	h.DB.Model(&models.Supplier{}).Count(&supplierCount)
	h.DB.Model(&models.Restock{}).Count(&restockCount)
	recent, err := h.Restocks.Recent(5)
	if err != nil {
		redirectWithError(w, r, auth.CashierDashboardPath, err)
		return
	}
	renderTemplate(w, r, "admin_dashboard", map[string]any{
		"Stats": map[string]any{
			"ProductCount":  productCount,
			"CategoryCount": categoryCount,
			"SupplierCount": supplierCount,
			"RestockCount":  restockCount,
		},
		"RecentRestocks": recent,
	})
}

// Cashier: GET /cashier-dashboard – plain landing page for non-admin staff.
func (h *DashboardHandler) Cashier(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "cashier_dashboard", nil)
}
