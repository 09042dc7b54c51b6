package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sjperalta/fintera-ledger/internal/config"
	"github.com/sjperalta/fintera-ledger/internal/models"
	"github.com/sjperalta/fintera-ledger/internal/services"
	"github.com/sjperalta/fintera-ledger/pkg/logger"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Setup("development")

	if cfg.ResendAPIKey == "" {
		log.Fatal("RESEND_API_KEY is not set")
	}
	// The check only needs the key; force the feature flag on for this run
	cfg.EnableEmailNotifications = true

	emailService := services.NewEmailService(cfg)

	toEmail := os.Getenv("TEST_EMAIL_TO")
	if toEmail == "" {
		toEmail = "test@example.com"
		log.Println("TEST_EMAIL_TO not set, using test@example.com. Emails might mock or fail if domain not verified.")
	}

	customer := &models.Customer{
		FullName: "Test Customer",
		Email:    toEmail,
	}

	log.Printf("Sending Loan Overdue email to %s...", toEmail)
	err = emailService.SendLoanOverdue(context.Background(), customer, map[string]interface{}{
		"loan_id":       1,
		"loan_guid":     "00000000-0000-0000-0000-000000000001",
		"status":        models.LoanStatusActive,
		"overdue_count": 2,
		"outstanding":   5295.68,
	})
	if err != nil {
		log.Fatalf("Failed to send Loan Overdue email: %v", err)
	}
	log.Println("Loan Overdue email sent successfully!")
}
