package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"chamaweb/internal/adapters/email"
)

// EnquiryInput carries the landing-page contact form.
type EnquiryInput struct {
	Name    string
	Email   string
	Message string
}

// EnquiryDeps holds dependencies for Enquiry.
type EnquiryDeps struct {
	Sender email.Sender
	To     string
	From   string
}

var (
	ErrEnquiryIncomplete = errors.New("please fill in your name, email and message")
	ErrEnquiryBadEmail   = errors.New("email must contain '@'")
)

// ExecuteEnquiry forwards a visitor enquiry to the chama operators. The
// visitor's address goes into Reply-To so operators can answer directly.
func ExecuteEnquiry(ctx context.Context, input EnquiryInput, deps EnquiryDeps) error {
	if strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Email) == "" ||
		strings.TrimSpace(input.Message) == "" {
		return ErrEnquiryIncomplete
	}
	if !strings.Contains(input.Email, "@") {
		return ErrEnquiryBadEmail
	}

	body := fmt.Sprintf("<p><strong>%s</strong> (%s) wrote:</p><p>%s</p>",
		html.EscapeString(input.Name),
		html.EscapeString(input.Email),
		html.EscapeString(input.Message))

	_, err := deps.Sender.Send(ctx, email.SendRequest{
		To:      []string{deps.To},
		From:    deps.From,
		Subject: "New enquiry from " + strings.TrimSpace(input.Name),
		HTML:    body,
		ReplyTo: strings.TrimSpace(input.Email),
	})
	if err != nil {
		return fmt.Errorf("send enquiry: %w", err)
	}

	slog.Info("enquiry_event", "event", "sent", "name", input.Name)
	return nil
}
