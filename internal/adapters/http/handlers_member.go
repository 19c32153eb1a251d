package web

import (
	"net/http"
	"net/url"
	"strconv"

	"chamaweb/internal/adapters/http/middleware"
	"chamaweb/internal/application/orchestrators"
	"chamaweb/internal/domain/loan"
	"chamaweb/internal/domain/payment"
	domain "chamaweb/internal/domain/session"
)

// currentSession returns the guarded request's session. Routes under the
// shells always carry one; the zero value only appears if a handler is
// wired outside RequireSession by mistake.
func currentSession(r *http.Request) domain.Session {
	sess, _ := middleware.SessionFromContext(r.Context())
	return sess
}

// formFloat parses a form value as a float. Anything unparseable comes
// back as 0, which the domain validators reject as non-positive.
func formFloat(r *http.Request, name string) float64 {
	v, err := strconv.ParseFloat(r.FormValue(name), 64)
	if err != nil {
		return 0
	}
	return v
}

// formInt parses a form value as an int, 0 on failure.
func formInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.FormValue(name))
	if err != nil {
		return 0
	}
	return v
}

// handleMemberShares renders the member's share record.
func handleMemberShares(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	rec, err := deps.API.MyShares(r.Context(), sess.Token)
	if err != nil {
		msg, handled := apiErrorMessage(w, r, err)
		if handled {
			return
		}
		renderTemplate(w, r, "member_shares.html", map[string]any{"Error": msg})
		return
	}

	renderTemplate(w, r, "member_shares.html", map[string]any{
		"Shares": rec,
	})
}

// handleMemberPayments renders the member's payment history and the
// contribution form.
func handleMemberPayments(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	payments, err := deps.API.MyPayments(r.Context(), sess.Token)
	if err != nil {
		msg, handled := apiErrorMessage(w, r, err)
		if handled {
			return
		}
		renderTemplate(w, r, "member_payments.html", map[string]any{"Error": msg, "PayName": "", "Receipt": ""})
		return
	}

	renderTemplate(w, r, "member_payments.html", map[string]any{
		"Payments": payments,
		"Info":     r.URL.Query().Get("info"),
		"PayName":  "",
		"Receipt":  "",
	})
}

// handleMemberPaymentSubmit records a contribution. Validation failures
// render inline without touching the API.
func handleMemberPaymentSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	sess := currentSession(r)

	input := orchestrators.SubmitPaymentInput{
		Token: sess.Token,
		Payment: payment.Payment{
			PayName: r.FormValue("PayName"),
			Amount:  formFloat(r, "Amount"),
			Method:  r.FormValue("Method"),
			Receipt: r.FormValue("Receipt"),
		},
	}

	msg, err := orchestrators.ExecuteSubmitPayment(r.Context(), input, orchestrators.SubmitPaymentDeps{API: deps.API})
	if err != nil {
		emsg, handled := apiErrorMessage(w, r, err)
		if handled {
			return
		}
		renderTemplate(w, r, "member_payments.html", map[string]any{
			"Error":   emsg,
			"PayName": input.Payment.PayName,
			"Method":  input.Payment.Method,
			"Receipt": input.Payment.Receipt,
		})
		return
	}

	http.Redirect(w, r, "/member/payments?info="+url.QueryEscape(msg), http.StatusSeeOther)
}

// handleMemberLoans renders the member's loan applications and the
// application form.
func handleMemberLoans(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	loans, err := deps.API.MyLoans(r.Context(), sess.Token)
	if err != nil {
		msg, handled := apiErrorMessage(w, r, err)
		if handled {
			return
		}
		renderTemplate(w, r, "member_loans.html", map[string]any{
			"Error":           msg,
			"DefaultInterest": loan.DefaultInterest,
		})
		return
	}

	renderTemplate(w, r, "member_loans.html", map[string]any{
		"Loans":           loans,
		"Info":            r.URL.Query().Get("info"),
		"DefaultInterest": loan.DefaultInterest,
	})
}

// handleMemberLoanSubmit submits a loan application. Non-positive amounts
// or years are rejected locally; no request reaches the API.
func handleMemberLoanSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	sess := currentSession(r)

	interest := loan.DefaultInterest
	if r.FormValue("Interest") != "" {
		interest = formFloat(r, "Interest")
		if interest == 0 && r.FormValue("Interest") != "0" {
			interest = -1 // unparseable, rejected as out of range
		}
	}

	input := orchestrators.ApplyLoanInput{
		Token: sess.Token,
		Application: loan.Application{
			Amount:     formFloat(r, "Amount"),
			Interest:   interest,
			Year:       formInt(r, "Year"),
			MonthRepay: formFloat(r, "MonthRepay"),
		},
	}

	msg, err := orchestrators.ExecuteApplyLoan(r.Context(), input, orchestrators.ApplyLoanDeps{API: deps.API})
	if err != nil {
		emsg, handled := apiErrorMessage(w, r, err)
		if handled {
			return
		}
		renderTemplate(w, r, "member_loans.html", map[string]any{
			"Error":           emsg,
			"DefaultInterest": loan.DefaultInterest,
		})
		return
	}

	http.Redirect(w, r, "/member/loans?info="+url.QueryEscape(msg), http.StatusSeeOther)
}
