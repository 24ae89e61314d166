package entities

import (
	"regexp"
	"strings"

	"github.com/mrlokans/library-manager/internal/dates"
)

// Publication year bounds for books.
const (
	MinPublicationYear = 1500
	MaxPublicationYear = 2099
)

var (
	// Loose local@domain.tld shape; full RFC validation is not the goal.
	emailPattern = regexp.MustCompile(`.+@.+\..+`)
	zipPattern   = regexp.MustCompile(`^\d{5}$`)
)

// FieldError names a single invalid field and the message shown next
// to it on the redisplayed form.
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors is the structured failure result of entity
// validation. It implements error so repositories can return it
// through their normal error path; callers type-assert to get the
// per-field list back.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Has reports whether the named field failed validation.
func (v ValidationErrors) Has(field string) bool {
	for _, fe := range v {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Message returns the message for the named field, or "".
func (v ValidationErrors) Message(field string) string {
	for _, fe := range v {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// AsValidationErrors unwraps err into ValidationErrors if that is
// what it is.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	verr, ok := err.(ValidationErrors)
	return verr, ok
}

// Validate checks the book's field constraints. Returns nil when the
// book is valid.
func (b Book) Validate() ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(b.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "Title required"})
	}
	if strings.TrimSpace(b.Author) == "" {
		errs = append(errs, FieldError{Field: "author", Message: "Author required"})
	}
	if strings.TrimSpace(b.Genre) == "" {
		errs = append(errs, FieldError{Field: "genre", Message: "Genre required"})
	}
	if b.FirstPublished != nil {
		year := *b.FirstPublished
		if year < MinPublicationYear || year > MaxPublicationYear {
			errs = append(errs, FieldError{
				Field:   "first_published",
				Message: "First published should either be empty or contain a date between 1500-2099",
			})
		}
	}
	return errs
}

// Validate checks the patron's field constraints. Uniqueness of
// LibraryID needs a database lookup and lives in the patron
// repository, not here.
func (p Patron) Validate() ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(p.FirstName) == "" {
		errs = append(errs, FieldError{Field: "first_name", Message: "First name required"})
	}
	if strings.TrimSpace(p.LastName) == "" {
		errs = append(errs, FieldError{Field: "last_name", Message: "Last name required"})
	}
	if strings.TrimSpace(p.Address) == "" {
		errs = append(errs, FieldError{Field: "address", Message: "Address required"})
	}
	if !emailPattern.MatchString(p.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "Please enter a valid email address"})
	}
	if strings.TrimSpace(p.LibraryID) == "" {
		errs = append(errs, FieldError{Field: "library_id", Message: "Library ID required"})
	}
	if !zipPattern.MatchString(p.ZipCode) {
		errs = append(errs, FieldError{Field: "zip_code", Message: "Please enter a zip code consisting of 5 digits"})
	}
	return errs
}

// ValidateLoanDates checks the raw date strings a loan form submits.
// loanedOn is required; returnBy may be empty, meaning no due date.
func ValidateLoanDates(loanedOn, returnBy string) ValidationErrors {
	var errs ValidationErrors

	if !dates.IsValid(loanedOn) {
		errs = append(errs, FieldError{Field: "loaned_on", Message: "Loaned on must be a valid date (yyyy-mm-dd)"})
	}
	if returnBy != "" && !dates.IsValid(returnBy) {
		errs = append(errs, FieldError{Field: "return_by", Message: "Return by must be a valid date (yyyy-mm-dd)"})
	}
	return errs
}

// ValidateReturnDate checks the returned-on string from a return form.
func ValidateReturnDate(returnedOn string) ValidationErrors {
	if !dates.IsValid(returnedOn) {
		return ValidationErrors{{Field: "returned_on", Message: "Returned on must be a valid date (yyyy-mm-dd)"}}
	}
	return nil
}
