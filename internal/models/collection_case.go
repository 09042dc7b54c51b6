package models

import (
	"database/sql/driver"
	"time"

	"github.com/goccy/go-json"
)

// CollectionCase tracks remediation of a delinquent loan
type CollectionCase struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	TenantID      uint       `gorm:"not null;index" json:"tenant_id"`
	LoanID        uint       `gorm:"not null;index" json:"loan_id"`
	CustomerID    uint       `gorm:"not null;index" json:"customer_id"`
	OverdueAmount float64    `gorm:"type:decimal(15,2);not null" json:"overdue_amount"`
	DaysOverdue   int        `gorm:"not null" json:"days_overdue"`
	AgeingBucket  string     `gorm:"size:20" json:"ageing_bucket"`
	Priority      string     `gorm:"size:10;not null;index" json:"priority"`
	Status        string     `gorm:"size:20;default:new;not null;index" json:"status"`
	Notes         CaseNotes  `gorm:"type:text" json:"notes"`
	AssigneeID    *uint      `gorm:"index" json:"assignee_id"`
	ResolvedAt    *time.Time `json:"resolved_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName specifies the table name for CollectionCase
func (CollectionCase) TableName() string {
	return "collection_cases"
}

// Collection case status constants
const (
	CollectionStatusNew       = "new"
	CollectionStatusContacted = "contacted"
	CollectionStatusPromised  = "promised"
	CollectionStatusEscalated = "escalated"
	CollectionStatusResolved  = "resolved"
)

// Collection priority constants
const (
	CollectionPriorityLow    = "low"
	CollectionPriorityMedium = "medium"
	CollectionPriorityHigh   = "high"
	CollectionPriorityUrgent = "urgent"
)

// IsOpen returns true until a collector resolves the case
func (c *CollectionCase) IsOpen() bool {
	return c.Status != CollectionStatusResolved
}

// AddNote appends a free-text note keeping insertion order
func (c *CollectionCase) AddNote(author, text string, at time.Time) {
	c.Notes = append(c.Notes, CaseNote{Author: author, Text: text, CreatedAt: at})
}

// CaseNote is one entry of a collection case's note log
type CaseNote struct {
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// CaseNotes is stored as a JSON array
type CaseNotes []CaseNote

// Value implements driver.Valuer
func (n CaseNotes) Value() (driver.Value, error) {
	if n == nil {
		return "[]", nil
	}
	b, err := json.Marshal(n)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (n *CaseNotes) Scan(value interface{}) error {
	raw, err := columnBytes(value)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		*n = CaseNotes{}
		return nil
	}
	return json.Unmarshal(raw, n)
}
