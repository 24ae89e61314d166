// Package patrons provides database operations for library members.
//
// # Interface Implementation
//
//	var _ http.PatronStore = (*Repository)(nil)
package patrons

import (
	"gorm.io/gorm"

	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/pagination"
)

// Repository handles all patron database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new patrons repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create validates the patron and inserts it. Library card numbers
// must be unique; a duplicate is reported as a field error on
// library_id rather than surfacing the index violation.
func (r *Repository) Create(patron *entities.Patron) error {
	errs := patron.Validate()
	if msg := r.libraryIDTaken(patron.LibraryID, 0); msg != "" && !errs.Has("library_id") {
		errs = append(errs, entities.FieldError{Field: "library_id", Message: msg})
	}
	if errs != nil {
		return errs
	}
	return r.db.Create(patron).Error
}

// GetByID retrieves a patron. Returns gorm.ErrRecordNotFound for
// unknown ids.
func (r *Repository) GetByID(id uint) (*entities.Patron, error) {
	var patron entities.Patron
	if err := r.db.First(&patron, id).Error; err != nil {
		return nil, err
	}
	return &patron, nil
}

// GetByIDWithLoans retrieves a patron together with their loan
// history, each loan carrying its book for display.
func (r *Repository) GetByIDWithLoans(id uint) (*entities.Patron, error) {
	var patron entities.Patron
	err := r.db.Preload("Loans.Book").First(&patron, id).Error
	if err != nil {
		return nil, err
	}
	return &patron, nil
}

// Update applies the submitted fields to an existing patron after
// revalidating them.
func (r *Repository) Update(id uint, fields entities.Patron) (*entities.Patron, error) {
	var patron entities.Patron
	if err := r.db.First(&patron, id).Error; err != nil {
		return nil, err
	}

	patron.FirstName = fields.FirstName
	patron.LastName = fields.LastName
	patron.Address = fields.Address
	patron.Email = fields.Email
	patron.LibraryID = fields.LibraryID
	patron.ZipCode = fields.ZipCode

	errs := patron.Validate()
	if msg := r.libraryIDTaken(patron.LibraryID, id); msg != "" && !errs.Has("library_id") {
		errs = append(errs, entities.FieldError{Field: "library_id", Message: msg})
	}
	if errs != nil {
		return nil, errs
	}

	if err := r.db.Save(&patron).Error; err != nil {
		return nil, err
	}
	return &patron, nil
}

// List returns one page of patrons plus the total count. searchTerm
// matches case-insensitively against first name, last name, email,
// library id, address and zip code.
func (r *Repository) List(page pagination.Page, searchTerm string) ([]entities.Patron, int64, error) {
	q := r.db.Model(&entities.Patron{})

	if searchTerm != "" {
		pattern := "%" + searchTerm + "%"
		q = q.Where(
			`LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?)
				OR LOWER(email) LIKE LOWER(?) OR LOWER(library_id) LIKE LOWER(?)
				OR LOWER(address) LIKE LOWER(?) OR zip_code LIKE ?`,
			pattern, pattern, pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var patrons []entities.Patron
	err := q.Order("id").Offset(page.Offset()).Limit(page.Limit()).Find(&patrons).Error
	if err != nil {
		return nil, 0, err
	}
	return patrons, total, nil
}

// All returns every patron, unpaginated, for the new-loan selector.
func (r *Repository) All() ([]entities.Patron, error) {
	var patrons []entities.Patron
	err := r.db.Order("last_name, first_name").Find(&patrons).Error
	return patrons, err
}

// Count returns the total number of patrons.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Patron{}).Count(&count).Error
	return count, err
}

// libraryIDTaken returns a field message when another patron already
// holds the given library id. excludeID skips the patron being
// updated.
func (r *Repository) libraryIDTaken(libraryID string, excludeID uint) string {
	if libraryID == "" {
		return ""
	}
	var count int64
	err := r.db.Model(&entities.Patron{}).
		Where("library_id = ? AND id <> ?", libraryID, excludeID).
		Count(&count).Error
	if err == nil && count > 0 {
		return "Library ID is already in use"
	}
	return ""
}
