package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/dkeita/invenpos/internal/auth"
	"github.com/dkeita/invenpos/internal/handlers"
	"github.com/dkeita/invenpos/internal/httpx"
	"github.com/dkeita/invenpos/internal/middleware"
	"github.com/dkeita/invenpos/internal/models"
	"github.com/dkeita/invenpos/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, uploadDir string) http.Handler {
	mux := http.NewServeMux()

	// RequireAuth verifies the session still refers to an existing user.
	auth.SetUserVerifier(func(_ context.Context, uid uint) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})
	// The gate resolves the session principal once; every role check and
	// role-based redirect goes through it.
	auth.SetPrincipalResolver(func(r *http.Request) auth.Principal {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			if parsed, ok2 := auth.ParseSession(r); ok2 {
				uid = parsed
			}
		}
		if uid == 0 {
			return auth.Principal{}
		}
		var user models.User
		if err := db.First(&user, uid).Error; err != nil {
			return auth.Principal{}
		}
		return auth.Principal{Authenticated: true, IsSuperuser: user.IsSuperuser, IsStaff: user.IsStaff}
	})

	catalog := services.NewCatalogService(db)
	suppliers := services.NewSupplierService(db)
	restocks := services.NewRestockService(db)

	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	// healthz also checks the database connection.
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("/metrics", promhttp.Handler())

	// Auth endpoints
	authHandler := handlers.NewAuthHandler(db)
	authHandler.Register(mux)

	gated := func(h http.HandlerFunc) http.Handler { return auth.RequireAuth(h) }

	// Products
	ph := handlers.NewProductHandler(catalog, suppliers, uploadDir)
	mux.Handle("GET /products", gated(ph.List))
	mux.Handle("POST /products", gated(ph.AddInlineCategory))
	mux.Handle("POST /products/add", gated(ph.Add))
	mux.Handle("GET /products/edit/{id}", gated(ph.EditForm))
	mux.Handle("POST /products/edit/{id}", gated(ph.Edit))
	mux.Handle("POST /products/delete/{id}", gated(ph.Delete))

	// Restock workflow
	rh := handlers.NewRestockHandler(catalog, suppliers, restocks)
	mux.Handle("GET /products/restock/{id}", gated(rh.Form))
	mux.Handle("POST /products/restock/{id}", gated(rh.Submit))

	// Categories
	ch := handlers.NewCategoryHandler(catalog)
	mux.Handle("POST /add-category", gated(ch.Add))
	mux.Handle("POST /edit-category/{id}", gated(ch.Edit))
	mux.Handle("POST /delete-category/{id}", gated(ch.Delete))

	// Suppliers
	sh := handlers.NewSupplierHandler(suppliers)
	mux.Handle("GET /suppliers", gated(sh.List))
	mux.Handle("POST /add_supplier", gated(sh.Add))
	mux.Handle("POST /edit_supplier/{id}", gated(sh.Edit))
	mux.Handle("POST /delete_supplier/{id}", gated(sh.Delete))

	// Dashboards
	dh := handlers.NewDashboardHandler(db, restocks)
	mux.Handle("GET /admin-dashboard", auth.RequireSuperuser(http.HandlerFunc(dh.Admin)))
	mux.Handle("GET /cashier-dashboard", gated(dh.Cashier))
	mux.HandleFunc("/", dh.Home)

	// Uploaded product images
	mux.Handle("GET /media/", http.StripPrefix("/media/", http.FileServer(http.Dir(uploadDir))))

	return middleware.Metrics(middleware.Recover(middleware.Logging(auth.Middleware(mux))))
}
