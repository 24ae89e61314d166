// Package books provides database operations for the book catalog,
// including the availability views derived from outstanding loans.
//
// # Interface Implementation
//
//	var _ http.BookStore = (*Repository)(nil)
package books

import (
	"gorm.io/gorm"

	"github.com/mrlokans/library-manager/internal/dates"
	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/pagination"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create validates the book and inserts it. On validation failure no
// write occurs and the returned error is entities.ValidationErrors.
func (r *Repository) Create(book *entities.Book) error {
	if errs := book.Validate(); errs != nil {
		return errs
	}
	return r.db.Create(book).Error
}

// GetByID retrieves a book. Returns gorm.ErrRecordNotFound for
// unknown ids.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// GetByIDWithLoans retrieves a book together with its loan history,
// each loan carrying its patron for display.
func (r *Repository) GetByIDWithLoans(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Loans.Patron").First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Update applies the submitted fields to an existing book after
// revalidating them. The loaded record is returned on success.
func (r *Repository) Update(id uint, fields entities.Book) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		return nil, err
	}

	book.Title = fields.Title
	book.Author = fields.Author
	book.Genre = fields.Genre
	book.FirstPublished = fields.FirstPublished

	if errs := book.Validate(); errs != nil {
		return nil, errs
	}
	if err := r.db.Save(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// List returns one page of books plus the total count ignoring
// pagination. searchTerm, when non-empty, is matched case-insensitively
// as a substring of title, author or genre.
func (r *Repository) List(page pagination.Page, searchTerm string) ([]entities.Book, int64, error) {
	return r.listWhere(r.db.Model(&entities.Book{}), page, searchTerm)
}

// ListOverdue returns books referenced by an outstanding loan whose
// due date has passed as of today.
func (r *Repository) ListOverdue(today dates.Date, page pagination.Page, searchTerm string) ([]entities.Book, int64, error) {
	overdue := r.db.Model(&entities.Loan{}).
		Select("book_id").
		Where("returned_on IS NULL AND return_by IS NOT NULL AND return_by < ?", today)

	q := r.db.Model(&entities.Book{}).Where("id IN (?)", overdue)
	return r.listWhere(q, page, searchTerm)
}

// ListCheckedOut returns books referenced by at least one outstanding
// loan.
func (r *Repository) ListCheckedOut(page pagination.Page, searchTerm string) ([]entities.Book, int64, error) {
	q := r.db.Model(&entities.Book{}).Where("id IN (?)", r.outstandingBookIDs())
	return r.listWhere(q, page, searchTerm)
}

// ListAvailable returns books with no outstanding loan, i.e. the set
// difference between all books and checked-out books.
func (r *Repository) ListAvailable(page pagination.Page, searchTerm string) ([]entities.Book, int64, error) {
	q := r.db.Model(&entities.Book{}).Where("id NOT IN (?)", r.outstandingBookIDs())
	return r.listWhere(q, page, searchTerm)
}

// AllAvailable returns every available book, unpaginated. The new-loan
// form needs the full list for its selector.
func (r *Repository) AllAvailable() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.
		Where("id NOT IN (?)", r.outstandingBookIDs()).
		Order("title").
		Find(&books).Error
	return books, err
}

// Count returns the total number of books.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Count(&count).Error
	return count, err
}

func (r *Repository) outstandingBookIDs() *gorm.DB {
	return r.db.Model(&entities.Loan{}).
		Select("book_id").
		Where("returned_on IS NULL")
}

func (r *Repository) listWhere(q *gorm.DB, page pagination.Page, searchTerm string) ([]entities.Book, int64, error) {
	if searchTerm != "" {
		pattern := "%" + searchTerm + "%"
		q = q.Where(
			"LOWER(title) LIKE LOWER(?) OR LOWER(author) LIKE LOWER(?) OR LOWER(genre) LIKE LOWER(?)",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var books []entities.Book
	err := q.Order("id").Offset(page.Offset()).Limit(page.Limit()).Find(&books).Error
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}
