package services

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"
	"github.com/sjperalta/fintera-ledger/internal/config"
	"github.com/sjperalta/fintera-ledger/internal/models"
	"github.com/sjperalta/fintera-ledger/pkg/logger"
)

//go:embed templates/email/*.html
var emailTemplates embed.FS

const appURL = "https://fintera.securexapp.com"

type EmailService struct {
	config       *config.Config
	resendClient *resend.Client
}

func NewEmailService(cfg *config.Config) *EmailService {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &EmailService{
		config:       cfg,
		resendClient: client,
	}
}

// checkEmailPreconditions reports whether an email should be sent at all. A
// disabled feature is not an error; a misconfiguration or bad address is.
func (s *EmailService) checkEmailPreconditions(customer *models.Customer, operation string) (bool, error) {
	if !s.config.EnableEmailNotifications {
		logger.Debug("email notifications disabled, skipping", "operation", operation)
		return false, nil
	}
	if s.config.ResendAPIKey == "" {
		return false, fmt.Errorf("cannot send %s: RESEND_API_KEY is not set", operation)
	}
	if s.config.FromEmail == "" {
		return false, fmt.Errorf("cannot send %s: FROM_EMAIL is not set", operation)
	}
	if customer == nil || customer.Email == "" {
		return false, errors.New("email address is empty")
	}
	return true, nil
}

// SendLoanOverdue tells a borrower that their loan has overdue installments
func (s *EmailService) SendLoanOverdue(ctx context.Context, customer *models.Customer, data map[string]interface{}) error {
	ok, err := s.checkEmailPreconditions(customer, "loan overdue email")
	if !ok {
		return err
	}

	loanRef := fmt.Sprintf("#%v", data["loan_id"])
	if guid, ok := data["loan_guid"].(string); ok && guid != "" {
		loanRef = guid
	}
	outstanding := 0.0
	if v, ok := data["outstanding"].(float64); ok {
		outstanding = v
	}

	body, err := s.renderTemplate("loan_overdue.html", struct {
		Name         string
		LoanRef      string
		Status       string
		OverdueCount interface{}
		Outstanding  string
		AppURL       string
	}{
		Name:         customer.FullName,
		LoanRef:      loanRef,
		Status:       fmt.Sprint(data["status"]),
		OverdueCount: data["overdue_count"],
		Outstanding:  fmt.Sprintf("L%.2f", outstanding),
		AppURL:       appURL,
	})
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{customer.Email},
		Subject: "Préstamo en mora",
		Html:    body,
	}
	_, err = s.resendClient.Emails.Send(params)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to send email to %s: %v", customer.Email, err))
		return err
	}

	logger.Info(fmt.Sprintf("📧 [Email Sent] To: %s | Subject: Préstamo en mora | Loan: %s", customer.Email, loanRef))
	return nil
}

func (s *EmailService) renderTemplate(name string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(emailTemplates, "templates/email/"+name)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}
