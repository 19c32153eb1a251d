package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"chamaweb/internal/adapters/http/middleware"
	"chamaweb/internal/domain/user"
)

// registerRoutes lays out the public pages, the auth flow, and the two
// role-gated dashboard shells. Within a shell, navigation is a closed set
// of tabs: the index and every unknown sub-path land on the canonical
// first tab, so internal navigation never 404s.
func registerRoutes(r chi.Router) {
	// Public pages
	r.Get("/", handleLanding)
	r.Post("/contact", handleContact)

	// Auth flow
	r.Get("/auth", handleAuthPage)
	r.Post("/auth/login", handleLoginSubmit)
	r.Post("/auth/register", handleRegisterSubmit)
	r.Get("/verify-email/{token}", handleVerifyEmail)
	r.Get("/reset-password", handleResetRequestPage)
	r.Post("/reset-password", handleResetRequestSubmit)
	r.Get("/reset-password/{token}", handleResetPasswordPage)
	r.Post("/reset-password/{token}", handleResetPasswordSubmit)
	r.Post("/logout", handleLogout)

	// Member shell: shares | payments | loans, default shares
	r.Route("/member", func(r chi.Router) {
		r.Use(middleware.RequireSession)
		r.Get("/", redirectTo("/member/shares"))
		r.Get("/shares", handleMemberShares)
		r.Get("/payments", handleMemberPayments)
		r.Post("/payments", handleMemberPaymentSubmit)
		r.Get("/loans", handleMemberLoans)
		r.Post("/loans", handleMemberLoanSubmit)
		r.NotFound(redirectTo("/member/shares"))
	})

	// Admin shell: users | payments | loans | shares, default users
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireSession)
		r.Use(middleware.RequireRole(user.RoleAdmin))
		r.Get("/", redirectTo("/admin/users"))
		r.Get("/users", handleAdminUsers)
		r.Post("/users/{memberID}/role", handleAdminAssignRole)
		r.Post("/users/{memberID}/delete", handleAdminDeleteUser)
		r.Get("/payments", handleAdminPayments)
		r.Post("/payments/{paymentID}/delete", handleAdminDeletePayment)
		r.Get("/loans", handleAdminLoans)
		r.Post("/loans/{memberID}", handleAdminUpdateLoan)
		r.Post("/loans/{memberID}/delete", handleAdminDeleteLoan)
		r.Get("/shares", handleAdminShares)
		r.Post("/shares", handleAdminUpsertShare)
		r.Post("/shares/{memberID}/delete", handleAdminDeleteShare)
		r.NotFound(redirectTo("/admin/users"))
	})
}

// redirectTo returns a handler issuing a single 303 to the given path.
func redirectTo(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, path, http.StatusSeeOther)
	}
}
