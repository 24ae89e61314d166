package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library-manager/internal/dates"
)

func intPtr(v int) *int { return &v }

func mustDate(t *testing.T, s string) dates.Date {
	t.Helper()
	d, err := dates.Parse(s)
	require.NoError(t, err)
	return d
}

func TestBookValidate(t *testing.T) {
	t.Run("valid book passes", func(t *testing.T) {
		book := Book{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", FirstPublished: intPtr(1965)}
		assert.Nil(t, book.Validate())
	})

	t.Run("empty title names the title field", func(t *testing.T) {
		book := Book{Author: "Frank Herbert", Genre: "Science Fiction"}
		errs := book.Validate()
		require.True(t, errs.Has("title"))
		assert.Equal(t, "Title required", errs.Message("title"))
	})

	t.Run("whitespace-only fields rejected", func(t *testing.T) {
		book := Book{Title: "   ", Author: "\t", Genre: "Fantasy"}
		errs := book.Validate()
		assert.True(t, errs.Has("title"))
		assert.True(t, errs.Has("author"))
		assert.False(t, errs.Has("genre"))
	})

	t.Run("publication year bounds", func(t *testing.T) {
		for _, year := range []int{1499, 2100, -5} {
			book := Book{Title: "T", Author: "A", Genre: "G", FirstPublished: intPtr(year)}
			assert.True(t, book.Validate().Has("first_published"), "year %d should be rejected", year)
		}
		for _, year := range []int{1500, 1965, 2099} {
			book := Book{Title: "T", Author: "A", Genre: "G", FirstPublished: intPtr(year)}
			assert.Nil(t, book.Validate(), "year %d should be accepted", year)
		}
	})

	t.Run("nil publication year allowed", func(t *testing.T) {
		book := Book{Title: "T", Author: "A", Genre: "G"}
		assert.Nil(t, book.Validate())
	})
}

func TestPatronValidate(t *testing.T) {
	valid := Patron{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Address:   "12 Analytical Lane",
		Email:     "ada@example.org",
		LibraryID: "MCL-1001",
		ZipCode:   "60601",
	}

	t.Run("valid patron passes", func(t *testing.T) {
		assert.Nil(t, valid.Validate())
	})

	t.Run("four digit zip rejected", func(t *testing.T) {
		p := valid
		p.ZipCode = "1234"
		errs := p.Validate()
		require.True(t, errs.Has("zip_code"))
		assert.Equal(t, "Please enter a zip code consisting of 5 digits", errs.Message("zip_code"))
	})

	t.Run("six digit zip rejected", func(t *testing.T) {
		p := valid
		p.ZipCode = "123456"
		assert.True(t, p.Validate().Has("zip_code"))
	})

	t.Run("malformed email rejected", func(t *testing.T) {
		for _, email := range []string{"", "ada", "ada@example", "@example.org"} {
			p := valid
			p.Email = email
			assert.True(t, p.Validate().Has("email"), "email %q should be rejected", email)
		}
	})

	t.Run("loose email shape accepted", func(t *testing.T) {
		p := valid
		p.Email = "a@b.c"
		assert.Nil(t, p.Validate())
	})

	t.Run("all fields empty reports each field", func(t *testing.T) {
		errs := Patron{}.Validate()
		for _, field := range []string{"first_name", "last_name", "address", "email", "library_id", "zip_code"} {
			assert.True(t, errs.Has(field), "expected error for %s", field)
		}
	})
}

func TestValidateLoanDates(t *testing.T) {
	assert.Nil(t, ValidateLoanDates("2024-01-01", "2024-01-08"))
	assert.Nil(t, ValidateLoanDates("2024-01-01", ""), "empty return_by means no due date")

	errs := ValidateLoanDates("not-a-date", "")
	require.True(t, errs.Has("loaned_on"))

	errs = ValidateLoanDates("2024-01-01", "2024-02-30")
	require.True(t, errs.Has("return_by"))
	assert.False(t, errs.Has("loaned_on"))
}

func TestValidateReturnDate(t *testing.T) {
	assert.Nil(t, ValidateReturnDate("2024-01-10"))
	assert.True(t, ValidateReturnDate("2024-13-01").Has("returned_on"))
	assert.True(t, ValidateReturnDate("").Has("returned_on"))
}

func TestValidationErrorsError(t *testing.T) {
	errs := ValidationErrors{
		{Field: "title", Message: "Title required"},
		{Field: "genre", Message: "Genre required"},
	}
	assert.Equal(t, "validation failed: title: Title required; genre: Genre required", errs.Error())
}

func TestLoanStateHelpers(t *testing.T) {
	today := mustDate(t, "2024-01-10")

	t.Run("outstanding without due date is never overdue", func(t *testing.T) {
		loan := Loan{}
		assert.True(t, loan.Outstanding())
		assert.False(t, loan.Overdue(today))
	})

	t.Run("past due date makes loan overdue", func(t *testing.T) {
		due := mustDate(t, "2024-01-08")
		loan := Loan{ReturnBy: &due}
		assert.True(t, loan.Overdue(today))
		assert.False(t, loan.Overdue(mustDate(t, "2024-01-08")), "due date itself is not overdue")
		assert.False(t, loan.Overdue(mustDate(t, "2024-01-07")))
	})

	t.Run("returned loan is neither outstanding nor overdue", func(t *testing.T) {
		due := mustDate(t, "2024-01-08")
		returned := mustDate(t, "2024-01-09")
		loan := Loan{ReturnBy: &due, ReturnedOn: &returned}
		assert.False(t, loan.Outstanding())
		assert.False(t, loan.Overdue(today))
	})
}
