// Package entities defines the persistent records shared by all
// repositories: books, patrons and the loans linking them.
//
// Columns are snake_case and none of the tables carry gorm's
// automatic timestamp columns; the schema matches the legacy
// library database this application manages.
package entities

import (
	"github.com/mrlokans/library-manager/internal/dates"
)

// Book is a catalog entry. FirstPublished is optional; nil means the
// publication year is unknown.
type Book struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Title          string `gorm:"index;size:512" json:"title"`
	Author         string `gorm:"index;size:256" json:"author"`
	Genre          string `gorm:"size:128" json:"genre"`
	FirstPublished *int   `json:"first_published,omitempty"`

	Loans []Loan `gorm:"foreignKey:BookID" json:"loans,omitempty"`
}

// Patron is a registered library member. LibraryID is the card number
// printed on the patron's library card and must be unique.
type Patron struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"index;size:128" json:"first_name"`
	LastName  string `gorm:"index;size:128" json:"last_name"`
	Address   string `gorm:"size:512" json:"address"`
	Email     string `gorm:"size:255" json:"email"`
	LibraryID string `gorm:"uniqueIndex;size:64" json:"library_id"`
	ZipCode   string `gorm:"size:5" json:"zip_code"`

	Loans []Loan `gorm:"foreignKey:PatronID" json:"loans,omitempty"`
}

// FullName returns "First Last" for display in loan tables.
func (p Patron) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Loan records a single checkout. ReturnedOn stays nil while the book
// is out; setting it is the one and only state transition a loan goes
// through. ReturnBy nil means no due date was agreed.
type Loan struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	BookID     uint        `gorm:"index" json:"book_id"`
	PatronID   uint        `gorm:"index" json:"patron_id"`
	LoanedOn   dates.Date  `gorm:"type:text" json:"loaned_on"`
	ReturnBy   *dates.Date `gorm:"type:text" json:"return_by,omitempty"`
	ReturnedOn *dates.Date `gorm:"type:text" json:"returned_on,omitempty"`

	Book   Book   `gorm:"foreignKey:BookID" json:"book,omitempty"`
	Patron Patron `gorm:"foreignKey:PatronID" json:"patron,omitempty"`
}

// Outstanding reports whether the book is still out.
func (l Loan) Outstanding() bool {
	return l.ReturnedOn == nil
}

// Overdue reports whether the loan is outstanding and past its due
// date as of today. Loans without a due date are never overdue.
func (l Loan) Overdue(today dates.Date) bool {
	return l.ReturnedOn == nil && l.ReturnBy != nil && l.ReturnBy.Before(today)
}
