package auth

import "net/http"

// Principal is the session subject the gate decides on.
type Principal struct {
	Authenticated bool
	IsSuperuser   bool
	IsStaff       bool
}

// Landing page routes.
const (
	LoginPath            = "/login"
	AdminDashboardPath   = "/admin-dashboard"
	CashierDashboardPath = "/cashier-dashboard"
)

// DestinationFor is the single capability check deciding where a session
// lands: unauthenticated to login, superusers to the admin dashboard,
// everyone else (staff included) to the cashier dashboard. Every gated
// handler goes through this instead of re-implementing the rule.
func DestinationFor(p Principal) string {
	switch {
	case !p.Authenticated:
		return LoginPath
	case p.IsSuperuser:
		return AdminDashboardPath
	default:
		return CashierDashboardPath
	}
}

// PrincipalResolver loads the principal for an authenticated request.
// Wired at bootstrap with a DB lookup.
type PrincipalResolver func(r *http.Request) Principal

var resolvePrincipal PrincipalResolver = func(*http.Request) Principal { return Principal{} }

// SetPrincipalResolver configures the resolver used by the gate middlewares.
func SetPrincipalResolver(f PrincipalResolver) {
	if f != nil {
		resolvePrincipal = f
	}
}

// CurrentPrincipal resolves the request's principal.
func CurrentPrincipal(r *http.Request) Principal { return resolvePrincipal(r) }

// RequireSuperuser re-checks the superuser flag on admin-only pages and
// redirects everyone else to the cashier dashboard rather than denying.
func RequireSuperuser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := resolvePrincipal(r)
		if !p.Authenticated {
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		if !p.IsSuperuser {
			http.Redirect(w, r, CashierDashboardPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
