package web

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"chamaweb/internal/application/orchestrators"
	"chamaweb/internal/domain/loan"
	"chamaweb/internal/domain/share"
	"chamaweb/internal/domain/user"
)

// adminRedirect sends the admin back to a tab with an inline info or
// error message in the query string (post/redirect/get).
func adminRedirect(w http.ResponseWriter, r *http.Request, tab, info, errMsg string) {
	q := url.Values{}
	if info != "" {
		q.Set("info", info)
	}
	if errMsg != "" {
		q.Set("error", errMsg)
	}
	target := "/admin/" + tab
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// handleAdminUsers lists registered users with an optional role filter.
func handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	filter := r.URL.Query().Get("role")

	users, err := deps.API.ListUsers(r.Context(), sess.Token, filter)
	if err != nil {
		msg, handled := apiErrorMessage(w, r, err)
		if handled {
			return
		}
		renderTemplate(w, r, "admin_users.html", map[string]any{"Error": msg, "Filter": filter})
		return
	}

	renderTemplate(w, r, "admin_users.html", map[string]any{
		"Users":  users,
		"Filter": filter,
		"Info":   r.URL.Query().Get("info"),
		"Err":    r.URL.Query().Get("error"),
	})
}

// handleAdminAssignRole promotes or demotes a user.
func handleAdminAssignRole(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	sess := currentSession(r)
	memberID := formIntParam(r, "memberID")
	role := user.NormalizeRole(r.FormValue("Role"))

	if memberID <= 0 || (role != user.RoleAdmin && role != user.RoleMember) {
		adminRedirect(w, r, "users", "", "invalid role assignment")
		return
	}

	if err := deps.API.AssignRole(r.Context(), sess.Token, memberID, role); err != nil {
		msg, handled := apiErrorMessage(w, r, err)
		if handled {
			return
		}
		adminRedirect(w, r, "users", "", msg)
		return
	}
	adminRedirect(w, r, "users", "User role updated to "+role, "")
}

// handleAdminDeleteUser removes a user account.
func handleAdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	memberID := formIntParam(r, "memberID")

	if err := deps.API.DeleteUser(r.Context(), sess.Token, memberID); err != nil {
		msg, handled := apiErrorMessage(w, r, err)
		if handled {
			return
		}
		adminRedirect(w, r, "users", "", msg)
		return
	}
	adminRedirect(w, r, "users", "User deleted", "")
}

// handleAdminPayments lists every member's payments.
func handleAdminPayments(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	payments, err := deps.API.AllPayments(r.Context(), sess.Token)
	if err != nil {
		msg, handled := apiErrorMessage(w, r, err)
		if handled {
			return
		}
		renderTemplate(w, r, "admin_payments.html", map[string]any{"Error": msg})
		return
	}

	renderTemplate(w, r, "admin_payments.html", map[string]any{
		"Payments": payments,
		"Info":     r.URL.Query().Get("info"),
		"Err":      r.URL.Query().Get("error"),
	})
}

// handleAdminDeletePayment removes a payment record.
func handleAdminDeletePayment(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	paymentID := formIntParam(r, "paymentID")

	if err := deps.API.DeletePayment(r.Context(), sess.Token, paymentID); err != nil {
		msg, handled := apiErrorMessage(w, r, err)
		if handled {
			return
		}
		adminRedirect(w, r, "payments", "", msg)
		return
	}
	adminRedirect(w, r, "payments", "Payment deleted", "")
}

// handleAdminLoans lists every member's loan application.
func handleAdminLoans(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	loans, err := deps.API.AllLoans(r.Context(), sess.Token)
	if err != nil {
		msg, handled := apiErrorMessage(w, r, err)
		if handled {
			return
		}
		renderTemplate(w, r, "admin_loans.html", map[string]any{"Error": msg})
		return
	}

	renderTemplate(w, r, "admin_loans.html", map[string]any{
		"Loans": loans,
		"Info":  r.URL.Query().Get("info"),
		"Err":   r.URL.Query().Get("error"),
	})
}

// handleAdminUpdateLoan replaces a member's loan application with edited
// values. The same numeric bounds apply as on the member form.
func handleAdminUpdateLoan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	sess := currentSession(r)
	memberID := formIntParam(r, "memberID")

	app := loan.Application{
		Amount:     formFloat(r, "Amount"),
		Interest:   formFloat(r, "Interest"),
		Year:       formInt(r, "Year"),
		MonthRepay: formFloat(r, "MonthRepay"),
	}
	if err := app.Validate(); err != nil {
		adminRedirect(w, r, "loans", "", err.Error())
		return
	}

	if err := deps.API.UpdateLoan(r.Context(), sess.Token, memberID, app); err != nil {
		msg, handled := apiErrorMessage(w, r, err)
		if handled {
			return
		}
		adminRedirect(w, r, "loans", "", msg)
		return
	}
	adminRedirect(w, r, "loans", "Loan updated", "")
}

// handleAdminDeleteLoan removes a member's loan application.
func handleAdminDeleteLoan(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	memberID := formIntParam(r, "memberID")

	if err := deps.API.DeleteLoan(r.Context(), sess.Token, memberID); err != nil {
		msg, handled := apiErrorMessage(w, r, err)
		if handled {
			return
		}
		adminRedirect(w, r, "loans", "", msg)
		return
	}
	adminRedirect(w, r, "loans", "Loan deleted", "")
}

// handleAdminShares lists share records alongside the assignment form,
// whose member dropdown is fed from the member-role user list.
func handleAdminShares(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	records, err := deps.API.AdminShares(r.Context(), sess.Token)
	if err != nil {
		msg, handled := apiErrorMessage(w, r, err)
		if handled {
			return
		}
		renderTemplate(w, r, "admin_shares.html", map[string]any{"Error": msg})
		return
	}

	members, err := deps.API.AdminMembers(r.Context(), sess.Token)
	if err != nil {
		msg, handled := apiErrorMessage(w, r, err)
		if handled {
			return
		}
		renderTemplate(w, r, "admin_shares.html", map[string]any{"Error": msg, "Records": records})
		return
	}

	renderTemplate(w, r, "admin_shares.html", map[string]any{
		"Records": records,
		"Members": members,
		"Info":    r.URL.Query().Get("info"),
		"Err":     r.URL.Query().Get("error"),
	})
}

// handleAdminUpsertShare creates or replaces a member's share record.
func handleAdminUpsertShare(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	sess := currentSession(r)

	input := orchestrators.UpsertShareInput{
		Token: sess.Token,
		Record: share.Record{
			MemberID:  formInt(r, "MemberID"),
			Shares:    formFloat(r, "Shares"),
			Dividends: formFloat(r, "Dividends"),
			Penalties: formFloat(r, "Penalties"),
		},
	}

	msg, err := orchestrators.ExecuteUpsertShare(r.Context(), input, orchestrators.UpsertShareDeps{API: deps.API})
	if err != nil {
		emsg, handled := apiErrorMessage(w, r, err)
		if handled {
			return
		}
		adminRedirect(w, r, "shares", "", emsg)
		return
	}
	adminRedirect(w, r, "shares", msg, "")
}

// handleAdminDeleteShare removes a member's share record.
func handleAdminDeleteShare(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	memberID := formIntParam(r, "memberID")

	if err := deps.API.DeleteShare(r.Context(), sess.Token, memberID); err != nil {
		msg, handled := apiErrorMessage(w, r, err)
		if handled {
			return
		}
		adminRedirect(w, r, "shares", "", msg)
		return
	}
	adminRedirect(w, r, "shares", "Share record deleted", "")
}

// formIntParam parses a chi URL parameter as an int, 0 on failure.
func formIntParam(r *http.Request, name string) int {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0
	}
	return v
}
