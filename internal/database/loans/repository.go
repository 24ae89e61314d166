// Package loans implements the loan lifecycle: creating checkouts,
// classifying loans as checked out or overdue, and the one-way
// transition to returned.
//
// # Interface Implementation
//
//	var _ http.LoanStore = (*Repository)(nil)
package loans

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/library-manager/internal/dates"
	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/pagination"
)

// Repository handles all loan database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new loans repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create validates the submitted date strings, persists a new
// outstanding loan and then links it to its book and patron. On
// validation failure nothing is written and the returned error is
// entities.ValidationErrors.
//
// returnBy may be empty, meaning the loan has no due date.
func (r *Repository) Create(bookID, patronID uint, loanedOn, returnBy string) (*entities.Loan, error) {
	if errs := entities.ValidateLoanDates(loanedOn, returnBy); errs != nil {
		return nil, errs
	}

	// Dates are rebuilt from their explicit year/month/day components;
	// nothing here passes through time.Time, so no zone can shift them.
	loanDate, err := dates.Parse(loanedOn)
	if err != nil {
		return nil, err
	}
	var dueDate *dates.Date
	if returnBy != "" {
		d, err := dates.Parse(returnBy)
		if err != nil {
			return nil, err
		}
		dueDate = &d
	}

	loan := &entities.Loan{
		LoanedOn:   loanDate,
		ReturnBy:   dueDate,
		ReturnedOn: nil,
	}
	if err := r.db.Create(loan).Error; err != nil {
		return nil, err
	}

	// The book/patron association is bound after the row exists. The
	// link must not run until the insert has completed and assigned
	// the loan its id.
	if err := r.LinkBookAndPatron(loan.ID, bookID, patronID); err != nil {
		return nil, err
	}
	loan.BookID = bookID
	loan.PatronID = patronID
	return loan, nil
}

// LinkBookAndPatron establishes the foreign-key association for an
// existing loan row without revalidating the record.
func (r *Repository) LinkBookAndPatron(loanID, bookID, patronID uint) error {
	result := r.db.Model(&entities.Loan{}).
		Where("id = ?", loanID).
		Updates(map[string]any{"book_id": bookID, "patron_id": patronID})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetByID retrieves a loan with its book and patron resolved.
func (r *Repository) GetByID(id uint) (*entities.Loan, error) {
	var loan entities.Loan
	err := r.db.Preload("Book").Preload("Patron").First(&loan, id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// Return marks the book from the given loan as returned. The date
// string is validated first; on failure the loan is untouched and the
// error is entities.ValidationErrors.
//
// The update targets the first outstanding loan for the loan's book.
// At most one outstanding loan per book is assumed but not enforced,
// so with duplicates only the earliest row is closed.
func (r *Repository) Return(loanID uint, returnedOn string) (*entities.Loan, error) {
	if errs := entities.ValidateReturnDate(returnedOn); errs != nil {
		return nil, errs
	}
	returnDate, err := dates.Parse(returnedOn)
	if err != nil {
		return nil, err
	}

	loan, err := r.GetByID(loanID)
	if err != nil {
		return nil, err
	}

	var outstanding entities.Loan
	err = r.db.
		Where("book_id = ? AND returned_on IS NULL", loan.BookID).
		Order("id").
		First(&outstanding).Error
	if err != nil {
		return nil, err
	}

	outstanding.ReturnedOn = &returnDate
	if err := r.db.Save(&outstanding).Error; err != nil {
		return nil, err
	}
	return &outstanding, nil
}

// List returns one page of loans with books and patrons resolved,
// plus the total count.
func (r *Repository) List(page pagination.Page) ([]entities.Loan, int64, error) {
	return r.listWhere(r.db.Model(&entities.Loan{}), page)
}

// ListOverdue returns outstanding loans whose due date is strictly
// before today.
func (r *Repository) ListOverdue(today dates.Date, page pagination.Page) ([]entities.Loan, int64, error) {
	q := r.db.Model(&entities.Loan{}).
		Where("returned_on IS NULL AND return_by IS NOT NULL AND return_by < ?", today)
	return r.listWhere(q, page)
}

// ListCheckedOut returns outstanding loans, i.e. loans not yet
// returned.
func (r *Repository) ListCheckedOut(page pagination.Page) ([]entities.Loan, int64, error) {
	q := r.db.Model(&entities.Loan{}).
		Where("returned_on IS NULL AND loaned_on IS NOT NULL")
	return r.listWhere(q, page)
}

// OverdueCount returns the number of overdue loans as of today.
func (r *Repository) OverdueCount(today dates.Date) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Loan{}).
		Where("returned_on IS NULL AND return_by IS NOT NULL AND return_by < ?", today).
		Count(&count).Error
	return count, err
}

// Count returns the total number of loans.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Loan{}).Count(&count).Error
	return count, err
}

func (r *Repository) listWhere(q *gorm.DB, page pagination.Page) ([]entities.Loan, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var loans []entities.Loan
	err := q.Preload("Book").Preload("Patron").
		Order("id").Offset(page.Offset()).Limit(page.Limit()).
		Find(&loans).Error
	if err != nil {
		return nil, 0, err
	}
	if err := checkAssociations(loans); err != nil {
		return nil, 0, err
	}
	return loans, total, nil
}

// checkAssociations rejects loans whose book or patron row is gone.
// A dangling association is a data-integrity fault and must surface,
// not be silently skipped in the rendered table.
func checkAssociations(loans []entities.Loan) error {
	for _, loan := range loans {
		if loan.BookID == 0 || loan.Book.ID == 0 {
			return fmt.Errorf("loan %d has no associated book", loan.ID)
		}
		if loan.PatronID == 0 || loan.Patron.ID == 0 {
			return fmt.Errorf("loan %d has no associated patron", loan.ID)
		}
	}
	return nil
}
