package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/dkeita/invenpos/internal/models"
)

func TestSignupCreatesAccount(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(db)

	req := formRequest(http.MethodPost, "/signup", url.Values{
		"email":    {"new@example.com"},
		"password": {"secret"},
	})
	w := httptest.NewRecorder()
	h.signup(w, req)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login got %s", loc)
	}

	var user models.User
	if err := db.Where("email = ?", "new@example.com").First(&user).Error; err != nil {
		t.Fatalf("user not created: %v", err)
	}
	if user.Password == "secret" {
		t.Fatal("password stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret")) != nil {
		t.Fatal("stored hash does not match password")
	}
	if user.IsSuperuser || user.IsStaff {
		t.Fatal("signup must create a plain account")
	}
}

func TestLoginRedirectsByRole(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(db)

	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.DefaultCost)
	admin := models.User{Email: "admin@example.com", Password: string(hash), IsSuperuser: true, IsStaff: true}
	cashier := models.User{Email: "cashier@example.com", Password: string(hash)}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	if err := db.Create(&cashier).Error; err != nil {
		t.Fatalf("seed cashier: %v", err)
	}

	cases := []struct {
		email string
		want  string
	}{
		{"admin@example.com", "/admin-dashboard"},
		{"cashier@example.com", "/cashier-dashboard"},
	}
	for _, tc := range cases {
		req := formRequest(http.MethodPost, "/login", url.Values{
			"email":    {tc.email},
			"password": {"pw"},
		})
		w := httptest.NewRecorder()
		h.login(w, req)
		if w.Code != http.StatusSeeOther {
			t.Fatalf("%s: expected 303 got %d", tc.email, w.Code)
		}
		if loc := w.Header().Get("Location"); loc != tc.want {
			t.Fatalf("%s: expected redirect to %s got %s", tc.email, tc.want, loc)
		}
		hasSession := false
		for _, c := range w.Result().Cookies() {
			if c.Name == "session" && c.Value != "" {
				hasSession = true
			}
		}
		if !hasSession {
			t.Fatalf("%s: expected a session cookie", tc.email)
		}
	}
}

func TestLoginBadCredentials(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(db)

	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.DefaultCost)
	if err := db.Create(&models.User{Email: "u@example.com", Password: string(hash)}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	req := formRequest(http.MethodPost, "/login", url.Values{
		"email":    {"u@example.com"},
		"password": {"wrong"},
	})
	w := httptest.NewRecorder()
	h.login(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected login page re-render got %d", w.Code)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" && c.Value != "" {
			t.Fatal("no session must be issued on bad credentials")
		}
	}
}

func TestLogoutClearsSession(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(db)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	w := httptest.NewRecorder()
	h.logout(w, req)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login got %s", loc)
	}
}
