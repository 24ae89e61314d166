package scheduler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library-manager/internal/dates"
	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/pagination"
)

type fakeOverdueLister struct {
	loans     []entities.Loan
	listErr   error
	listCalls int
}

func (f *fakeOverdueLister) ListOverdue(today dates.Date, page pagination.Page) ([]entities.Loan, int64, error) {
	f.listCalls++
	return f.loans, int64(len(f.loans)), f.listErr
}

func (f *fakeOverdueLister) OverdueCount(today dates.Date) (int64, error) {
	return int64(len(f.loans)), f.listErr
}

func TestScheduler_StartRejectsBadSchedule(t *testing.T) {
	s := NewOverdueReportScheduler(&fakeOverdueLister{}, "not a schedule")
	err := s.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to schedule")
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewOverdueReportScheduler(&fakeOverdueLister{}, "0 0 * * *")
	require.NoError(t, s.Start())
	require.NoError(t, s.Start(), "second start is a no-op")
	s.Stop()
	s.Stop() // idempotent
}

func TestScheduler_RunReport(t *testing.T) {
	today := dates.MustParse("2024-01-15")

	t.Run("no overdue loans skips listing", func(t *testing.T) {
		lister := &fakeOverdueLister{}
		s := NewOverdueReportScheduler(lister, "0 0 * * *")
		s.runReport(today)
		assert.Zero(t, lister.listCalls)
	})

	t.Run("overdue loans are listed", func(t *testing.T) {
		due := dates.MustParse("2024-01-08")
		lister := &fakeOverdueLister{loans: []entities.Loan{{
			Book:     entities.Book{Title: "Dune"},
			Patron:   entities.Patron{FirstName: "Ada", LastName: "Lovelace"},
			ReturnBy: &due,
		}}}
		s := NewOverdueReportScheduler(lister, "0 0 * * *")
		s.runReport(today)
		assert.Equal(t, 1, lister.listCalls)
	})

	t.Run("storage failure does not panic", func(t *testing.T) {
		lister := &fakeOverdueLister{listErr: errors.New("disk gone")}
		s := NewOverdueReportScheduler(lister, "0 0 * * *")
		s.runReport(today)
	})
}
