package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"chamaweb/internal/adapters/api"
	"chamaweb/internal/adapters/http/middleware"
	"chamaweb/internal/application/orchestrators"
	"chamaweb/internal/domain/user"
)

// handleAuthPage renders the combined login/register page. The active
// mode comes from the query string; login is the default.
func handleAuthPage(w http.ResponseWriter, r *http.Request) {
	// An established session skips the auth page entirely.
	if sess, ok := middleware.SessionFromContext(r.Context()); ok {
		http.Redirect(w, r, sess.User.LandingPath(), http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, "auth.html", map[string]any{
		"Registering": r.URL.Query().Get("mode") == "register",
		"Firstname":   "",
		"Lastname":    "",
		"Email":       "",
		"PhoneNo":     "",
	})
}

// handleLoginSubmit drives the two-step login commit and decides the
// landing route from the fetched profile's role.
func handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.LoginInput{
		Email:    r.FormValue("Email"),
		Password: r.FormValue("Password"),
	}
	loginDeps := orchestrators.LoginDeps{API: deps.API, Sessions: deps.Sessions}

	result, err := orchestrators.ExecuteLogin(r.Context(), input, loginDeps)
	if err != nil {
		// Defensive: a 401/403 mid-flow invalidates whatever session
		// state might be lying around, but the user stays on the form.
		if errors.Is(err, api.ErrUnauthorized) {
			if id := middleware.SessionCookieID(r); id != "" {
				if derr := deps.Sessions.Delete(r.Context(), id); derr != nil {
					slog.Error("session_delete_failed", "error", derr.Error())
				}
			}
			middleware.ClearSessionCookie(w)
		}
		renderTemplate(w, r, "auth.html", map[string]any{
			"Error": err.Error(),
			"Email": input.Email,
		})
		return
	}

	middleware.SetSessionCookie(w, result.Session.ID)
	http.Redirect(w, r, result.State.LandingPath(), http.StatusSeeOther)
}

// handleRegisterSubmit submits the signup form. On success the page
// switches straight to the login view carrying the server's message.
func handleRegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.RegisterInput{
		Registration: user.Registration{
			Firstname: r.FormValue("Firstname"),
			Lastname:  r.FormValue("Lastname"),
			Email:     r.FormValue("Email"),
			PhoneNo:   r.FormValue("PhoneNo"),
			Password:  r.FormValue("Password"),
		},
	}

	result, err := orchestrators.ExecuteRegister(r.Context(), input, orchestrators.RegisterDeps{API: deps.API})
	if err != nil {
		renderTemplate(w, r, "auth.html", map[string]any{
			"Registering": true,
			"Error":       err.Error(),
			"Firstname":   input.Registration.Firstname,
			"Lastname":    input.Registration.Lastname,
			"Email":       input.Registration.Email,
			"PhoneNo":     input.Registration.PhoneNo,
		})
		return
	}

	renderTemplate(w, r, "auth.html", map[string]any{
		"Info":  result.Message,
		"Email": input.Registration.Email,
	})
}

// handleVerifyEmail consumes an emailed verification link. The UI is one
// of {success, failure}; success auto-redirects to the auth page.
func handleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	input := orchestrators.VerifyEmailInput{RawToken: chi.URLParam(r, "token")}

	result, err := orchestrators.ExecuteVerifyEmail(r.Context(), input, orchestrators.VerifyEmailDeps{API: deps.API})
	if err != nil {
		renderTemplate(w, r, "verify_email.html", map[string]any{
			"Status": err.Error(),
		})
		return
	}

	renderTemplate(w, r, "verify_email.html", map[string]any{
		"Status":  result.Message,
		"Success": true,
	})
}

// handleResetRequestPage renders the "forgot password" form.
func handleResetRequestPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "reset_request.html", map[string]any{})
}

// handleResetRequestSubmit asks the API for a reset link. The rendered
// acknowledgement is identical whether or not the email is registered.
func handleResetRequestSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	msg, err := orchestrators.ExecuteRequestReset(r.Context(), r.FormValue("Email"), orchestrators.ResetDeps{API: deps.API})
	if err != nil {
		renderTemplate(w, r, "reset_request.html", map[string]any{
			"Error": err.Error(),
		})
		return
	}
	renderTemplate(w, r, "reset_request.html", map[string]any{
		"Info": msg,
	})
}

// handleResetPasswordPage renders the new-password form for an emailed
// reset link.
func handleResetPasswordPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "reset_password.html", map[string]any{
		"Token": chi.URLParam(r, "token"),
	})
}

// handleResetPasswordSubmit sets the new password. On success the page
// redirects back to login after a short delay.
func handleResetPasswordSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.ResetPasswordInput{
		RawToken:    chi.URLParam(r, "token"),
		NewPassword: r.FormValue("Password"),
	}

	msg, err := orchestrators.ExecuteResetPassword(r.Context(), input, orchestrators.ResetDeps{API: deps.API})
	if err != nil {
		renderTemplate(w, r, "reset_password.html", map[string]any{
			"Token": input.RawToken,
			"Error": err.Error(),
		})
		return
	}

	renderTemplate(w, r, "reset_password.html", map[string]any{
		"Info":    msg,
		"Success": true,
	})
}

// handleLogout ends the session and returns to the auth page.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if id := middleware.SessionCookieID(r); id != "" {
		if err := deps.Sessions.Delete(r.Context(), id); err != nil {
			slog.Error("session_delete_failed", "error", err.Error())
		}
	}
	middleware.ClearSessionCookie(w)
	slog.Info("auth_event", "event", "logout")
	http.Redirect(w, r, "/auth", http.StatusSeeOther)
}
