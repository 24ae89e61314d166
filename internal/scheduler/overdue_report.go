// Package scheduler runs periodic maintenance jobs. The only job so
// far is the overdue report: a cron-driven summary of loans past
// their due date, written to the log for the librarian on duty.
package scheduler

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/library-manager/internal/dates"
	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/pagination"
)

// OverdueLister is the slice of the loan repository the report needs.
type OverdueLister interface {
	ListOverdue(today dates.Date, page pagination.Page) ([]entities.Loan, int64, error)
	OverdueCount(today dates.Date) (int64, error)
}

// OverdueReportScheduler logs an overdue-loan summary on a cron
// schedule.
type OverdueReportScheduler struct {
	loans    OverdueLister
	schedule string

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool
}

// NewOverdueReportScheduler creates a new scheduler instance.
func NewOverdueReportScheduler(loans OverdueLister, schedule string) *OverdueReportScheduler {
	return &OverdueReportScheduler{
		loans:    loans,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start schedules the report job and begins the cron loop.
func (s *OverdueReportScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runReport(dates.Today())
	})
	if err != nil {
		return fmt.Errorf("failed to schedule overdue report: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true
	log.Printf("Overdue report scheduled: %s", s.schedule)
	return nil
}

// Stop halts the cron loop. Safe to call when never started.
func (s *OverdueReportScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	s.cron.Stop()
	s.isRunning = false
	log.Printf("Overdue report scheduler stopped")
}

// runReport logs the overdue summary for the given day. The first
// page of loans is listed by name; beyond that only the count.
func (s *OverdueReportScheduler) runReport(today dates.Date) {
	count, err := s.loans.OverdueCount(today)
	if err != nil {
		log.Printf("Overdue report failed: %v", err)
		return
	}
	if count == 0 {
		log.Printf("Overdue report for %s: no overdue loans", today)
		return
	}

	log.Printf("Overdue report for %s: %d loan(s) past due", today, count)

	loans, _, err := s.loans.ListOverdue(today, pagination.NewPage(1))
	if err != nil {
		log.Printf("Overdue report failed listing loans: %v", err)
		return
	}
	for _, loan := range loans {
		log.Printf("  overdue: %q loaned to %s, due %s",
			loan.Book.Title, loan.Patron.FullName(), dates.Format(loan.ReturnBy))
	}
}
