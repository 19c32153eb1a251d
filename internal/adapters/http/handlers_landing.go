package web

import (
	"net/http"
	"os"
	"path/filepath"

	"chamaweb/internal/application/orchestrators"
)

// handleLanding renders the public landing page from markdown content.
func handleLanding(w http.ResponseWriter, r *http.Request) {
	md, err := os.ReadFile(filepath.Join(contentDir, "landing.md"))
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "landing.html", map[string]any{
		"Content": string(md),
		"Info":    r.URL.Query().Get("info"),
		"Name":    "",
		"Email":   "",
		"Message": "",
	})
}

// handleContact forwards the landing-page enquiry form to the operators.
func handleContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.EnquiryInput{
		Name:    r.FormValue("Name"),
		Email:   r.FormValue("Email"),
		Message: r.FormValue("Message"),
	}
	deps := orchestrators.EnquiryDeps{
		Sender: emailSender,
		To:     enquiryToAddress,
		From:   emailFromAddress,
	}

	if err := orchestrators.ExecuteEnquiry(r.Context(), input, deps); err != nil {
		md, readErr := os.ReadFile(filepath.Join(contentDir, "landing.md"))
		if readErr != nil {
			internalError(w, readErr)
			return
		}
		renderTemplate(w, r, "landing.html", map[string]any{
			"Content": string(md),
			"Error":   err.Error(),
			"Name":    input.Name,
			"Email":   input.Email,
			"Message": input.Message,
		})
		return
	}

	http.Redirect(w, r, "/?info=Thanks%2C+we+will+get+back+to+you", http.StatusSeeOther)
}
