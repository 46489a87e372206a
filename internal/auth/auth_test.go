package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func sessionRequest(t *testing.T, userID uint) *http.Request {
	t.Helper()
	w := httptest.NewRecorder()
	CreateSession(w, userID)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestSessionRoundTrip(t *testing.T) {
	req := sessionRequest(t, 42)
	uid, ok := ParseSession(req)
	if !ok {
		t.Fatal("expected valid session")
	}
	if uid != 42 {
		t.Fatalf("expected uid 42 got %d", uid)
	}
}

func TestSessionTamperedSignatureRejected(t *testing.T) {
	req := sessionRequest(t, 42)
	c, err := req.Cookie("session")
	if err != nil {
		t.Fatalf("cookie: %v", err)
	}
	parts := strings.SplitN(c.Value, ".", 2)
	forged := httptest.NewRequest(http.MethodGet, "/", nil)
	forged.AddCookie(&http.Cookie{Name: "session", Value: "9999." + parts[1]})
	if _, ok := ParseSession(forged); ok {
		t.Fatal("expected forged session to be rejected")
	}
}

func TestMiddlewareInjectsUserID(t *testing.T) {
	var got uint
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = UserIDFromContext(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), sessionRequest(t, 7))
	if got != 7 {
		t.Fatalf("expected uid 7 in context got %d", got)
	}
}

func TestRequireAuthDenies(t *testing.T) {
	old := verifier
	defer SetUserVerifier(old)
	SetUserVerifier(nil)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Browser request: redirect to login.
	w := httptest.NewRecorder()
	RequireAuth(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != LoginPath {
		t.Fatalf("expected redirect to %s got %s", LoginPath, loc)
	}

	// API request: 401 JSON.
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Accept", "application/json")
	w2 := httptest.NewRecorder()
	RequireAuth(next).ServeHTTP(w2, req)
	if w2.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w2.Code)
	}
}

func TestRequireAuthRejectsDeletedUser(t *testing.T) {
	old := verifier
	defer SetUserVerifier(old)
	SetUserVerifier(func(_ context.Context, _ uint) bool { return false })

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	w := httptest.NewRecorder()
	h := Middleware(RequireAuth(next))
	h.ServeHTTP(w, sessionRequest(t, 42))
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w.Code)
	}
	// The stale cookie must be cleared alongside the redirect.
	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" && c.Value == "" {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expected session cookie to be cleared")
	}
}
