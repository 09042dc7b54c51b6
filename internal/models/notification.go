package models

import (
	"time"
)

// Notification represents an in-app message to a customer
type Notification struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	TenantID   uint       `gorm:"not null;index" json:"tenant_id"`
	CustomerID uint       `gorm:"not null;index" json:"customer_id"`
	Template   string     `gorm:"size:50;not null;index" json:"template"`
	Title      string     `gorm:"not null" json:"title"`
	Message    string     `gorm:"not null" json:"message"`
	Data       JSONMap    `gorm:"type:text" json:"data"`
	ReadAt     *time.Time `gorm:"index" json:"read_at"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}

// Notification template constants
const (
	NotificationTemplateLoanOverdue = "loan_overdue"
)

// IsRead returns true if notification has been read
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
