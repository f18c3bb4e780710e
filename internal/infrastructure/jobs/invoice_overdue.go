package jobs

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"borderlesspay.backend/internal/domain/entities"
)

type invoiceOverdueRepo interface {
	GetOverdueCandidates(ctx context.Context, asOf time.Time, limit int) ([]*entities.Invoice, error)
	MarkOverdue(ctx context.Context, ids []uuid.UUID) error
}

// InvoiceOverdueJob flips sent invoices past their due date to overdue
type InvoiceOverdueJob struct {
	repo     invoiceOverdueRepo
	interval time.Duration
	stop     chan struct{}
}

func NewInvoiceOverdueJob(repo invoiceOverdueRepo) *InvoiceOverdueJob {
	return &InvoiceOverdueJob{
		repo:     repo,
		interval: 5 * time.Minute,
		stop:     make(chan struct{}),
	}
}

func (j *InvoiceOverdueJob) Start(ctx context.Context) {
	log.Println("🕐 Starting invoice overdue job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Invoice overdue job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Invoice overdue job stopped")
			return
		case <-ticker.C:
			j.processOverdueInvoices(ctx)
		}
	}
}

func (j *InvoiceOverdueJob) Stop() {
	close(j.stop)
}

func (j *InvoiceOverdueJob) processOverdueInvoices(ctx context.Context) {
	lapsed, err := j.repo.GetOverdueCandidates(ctx, time.Now(), 100)
	if err != nil {
		log.Printf("❌ Error fetching overdue invoice candidates: %v", err)
		return
	}

	if len(lapsed) == 0 {
		return
	}

	var ids []uuid.UUID
	for _, inv := range lapsed {
		ids = append(ids, inv.ID)
	}

	if err := j.repo.MarkOverdue(ctx, ids); err != nil {
		log.Printf("❌ Error marking invoices overdue: %v", err)
		return
	}

	log.Printf("✅ Marked %d invoices overdue", len(ids))
}
