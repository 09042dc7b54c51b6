package lending

import (
	"time"

	"github.com/sjperalta/fintera-ledger/internal/models"
)

// Ageing buckets, keyed by days overdue of the oldest unpaid installment
const (
	BucketCurrent = "current"
	Bucket31To60  = "31-60"
	Bucket61To90  = "61-90"
	Bucket90Plus  = "90+"
)

// Buckets lists the ageing buckets in report order
var Buckets = []string{BucketCurrent, Bucket31To60, Bucket61To90, Bucket90Plus}

// Bucket classifies days overdue into an ageing bucket
func Bucket(days int) string {
	switch {
	case days <= 30:
		return BucketCurrent
	case days <= 60:
		return Bucket31To60
	case days <= 90:
		return Bucket61To90
	default:
		return Bucket90Plus
	}
}

// Priority maps days overdue to a collection priority
func Priority(days int) string {
	switch {
	case days <= 30:
		return models.CollectionPriorityLow
	case days <= 60:
		return models.CollectionPriorityMedium
	case days <= 90:
		return models.CollectionPriorityHigh
	default:
		return models.CollectionPriorityUrgent
	}
}

// OverdueSummary aggregates the overdue installments of one loan
type OverdueSummary struct {
	OverdueCount  int
	DaysOverdue   int
	OverdueAmount float64
	OldestDueDate time.Time
}

// HasOverdue reports whether any installment was overdue
func (s OverdueSummary) HasOverdue() bool {
	return s.OverdueCount > 0
}

// SummarizeOverdue walks the installments that are marked overdue. Days come
// from the oldest overdue due date measured at now; the amount includes the
// late fee already assessed.
func SummarizeOverdue(installments []models.Installment, now time.Time) OverdueSummary {
	var s OverdueSummary
	for i := range installments {
		inst := &installments[i]
		if inst.Status != models.InstallmentStatusOverdue {
			continue
		}
		s.OverdueCount++
		s.OverdueAmount += inst.Outstanding() + inst.LateFee
		if s.OldestDueDate.IsZero() || inst.DueDate.Before(s.OldestDueDate) {
			s.OldestDueDate = inst.DueDate
		}
	}
	if s.OverdueCount > 0 {
		s.DaysOverdue = DaysOverdue(s.OldestDueDate, now)
		s.OverdueAmount = Round2(s.OverdueAmount)
	}
	return s
}
