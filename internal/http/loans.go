package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/library-manager/internal/dates"
	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/pagination"
)

// Default loan period offered on the new-loan form.
const defaultLoanDays = 7

// LoanStore defines the loan lifecycle operations the loan pages need.
type LoanStore interface {
	Create(bookID, patronID uint, loanedOn, returnBy string) (*entities.Loan, error)
	GetByID(id uint) (*entities.Loan, error)
	Return(loanID uint, returnedOn string) (*entities.Loan, error)
	List(page pagination.Page) ([]entities.Loan, int64, error)
	ListOverdue(today dates.Date, page pagination.Page) ([]entities.Loan, int64, error)
	ListCheckedOut(page pagination.Page) ([]entities.Loan, int64, error)
}

// AvailableBookLister supplies the book selector on the new-loan form.
type AvailableBookLister interface {
	AllAvailable() ([]entities.Book, error)
}

// PatronLister supplies the patron selector on the new-loan form.
type PatronLister interface {
	All() ([]entities.Patron, error)
}

type LoansController struct {
	store   LoanStore
	books   AvailableBookLister
	patrons PatronLister
	today   func() dates.Date
}

func NewLoansController(store LoanStore, books AvailableBookLister, patrons PatronLister) *LoansController {
	return &LoansController{
		store:   store,
		books:   books,
		patrons: patrons,
		today:   dates.Today,
	}
}

type loanForm struct {
	BookID   string
	PatronID string
	LoanedOn string
	ReturnBy string
}

func readLoanForm(c *gin.Context) loanForm {
	return loanForm{
		BookID:   c.PostForm("book_id"),
		PatronID: c.PostForm("patron_id"),
		LoanedOn: strings.TrimSpace(c.PostForm("loaned_on")),
		ReturnBy: strings.TrimSpace(c.PostForm("return_by")),
	}
}

// NewLoanForm renders the new-loan form with selectors for every
// available book and every patron. Starting a loan with no available
// books or no patrons is a business-rule failure reported on its own
// message page, not a field error.
// GET /new_loan.html
func (lc *LoansController) NewLoanForm(c *gin.Context) {
	books, patrons, ok := lc.loadSelectors(c)
	if !ok {
		return
	}

	today := lc.today()
	form := loanForm{
		LoanedOn: today.String(),
		ReturnBy: today.AddDays(defaultLoanDays).String(),
	}
	lc.renderLoanForm(c, form, books, patrons, nil)
}

// CreateLoan handles the new-loan submission. Invalid dates re-render
// the form with the selections retained.
// POST /new_loan.html
func (lc *LoansController) CreateLoan(c *gin.Context) {
	form := readLoanForm(c)

	bookID, bErr := strconv.ParseUint(form.BookID, 10, 32)
	patronID, pErr := strconv.ParseUint(form.PatronID, 10, 32)
	if bErr != nil || pErr != nil {
		c.String(http.StatusBadRequest, "Invalid book or patron selection")
		return
	}

	_, err := lc.store.Create(uint(bookID), uint(patronID), form.LoanedOn, form.ReturnBy)
	if err != nil {
		if verrs, ok := asValidationErrors(err); ok {
			books, patrons, loaded := lc.loadSelectors(c)
			if !loaded {
				return
			}
			lc.renderLoanForm(c, form, books, patrons, verrs)
			return
		}
		renderInternalError(c, err, "create loan")
		return
	}

	c.Redirect(http.StatusFound, "/all_loans.html?page=1")
}

// ReturnForm renders the return-book form for a loan.
// GET /return/:id
func (lc *LoansController) ReturnForm(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	loan, err := lc.store.GetByID(id)
	if err == gorm.ErrRecordNotFound {
		renderNotFound(c, "Loan")
		return
	}
	if err != nil {
		renderInternalError(c, err, "load loan")
		return
	}

	c.HTML(http.StatusOK, "return_loan", gin.H{
		"Title":      "Return Book",
		"Loan":       loan,
		"ReturnedOn": lc.today().String(),
	})
}

// ReturnLoan marks the loan's book as returned. An invalid date
// re-renders the form; nothing is written.
// POST /return/:id
func (lc *LoansController) ReturnLoan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	returnedOn := strings.TrimSpace(c.PostForm("returned_on"))
	_, err := lc.store.Return(id, returnedOn)
	if err == gorm.ErrRecordNotFound {
		renderNotFound(c, "Loan")
		return
	}
	if err != nil {
		if verrs, ok := asValidationErrors(err); ok {
			loan, loadErr := lc.store.GetByID(id)
			if loadErr != nil {
				renderInternalError(c, loadErr, "reload loan")
				return
			}
			c.HTML(http.StatusOK, "return_loan", gin.H{
				"Title":      "Return Book",
				"Loan":       loan,
				"ReturnedOn": returnedOn,
				"Errors":     verrs,
			})
			return
		}
		renderInternalError(c, err, "return loan")
		return
	}

	c.Redirect(http.StatusFound, "/all_loans.html?page=1")
}

// AllLoans renders the paginated joined loan listing.
// GET /all_loans.html
func (lc *LoansController) AllLoans(c *gin.Context) {
	lc.renderLoanListing(c, "all_loans", "All Loans", lc.store.List)
}

// OverdueLoans lists outstanding loans past their due date.
// GET /overdue_loans.html
func (lc *LoansController) OverdueLoans(c *gin.Context) {
	today := lc.today()
	lc.renderLoanListing(c, "overdue_loans", "Overdue Loans", func(page pagination.Page) ([]entities.Loan, int64, error) {
		return lc.store.ListOverdue(today, page)
	})
}

// CheckedLoans lists loans still out.
// GET /checked_loans.html
func (lc *LoansController) CheckedLoans(c *gin.Context) {
	lc.renderLoanListing(c, "checked_loans", "Loans Checked Out", lc.store.ListCheckedOut)
}

func (lc *LoansController) renderLoanListing(c *gin.Context, template, title string, list func(pagination.Page) ([]entities.Loan, int64, error)) {
	page, searchTerm, ok := listingParams(c)
	if !ok {
		return
	}

	loans, total, err := list(page)
	if err != nil {
		renderInternalError(c, err, "list loans")
		return
	}
	if redirectIfPastLastPage(c, page, total) {
		return
	}

	data := listingContext(title, page, total, searchTerm)
	data["Loans"] = loans
	c.HTML(http.StatusOK, template, data)
}

// loadSelectors fetches the selector data for the loan form and
// renders the business-rule message page when either list is empty.
func (lc *LoansController) loadSelectors(c *gin.Context) ([]entities.Book, []entities.Patron, bool) {
	books, err := lc.books.AllAvailable()
	if err != nil {
		renderInternalError(c, err, "list available books")
		return nil, nil, false
	}
	patrons, err := lc.patrons.All()
	if err != nil {
		renderInternalError(c, err, "list patrons")
		return nil, nil, false
	}

	if len(books) == 0 {
		renderMessage(c, "No Books Available",
			"Every book in the catalog is currently checked out. Return a book before creating a new loan.")
		return nil, nil, false
	}
	if len(patrons) == 0 {
		renderMessage(c, "No Patrons Registered",
			"There are no patrons to loan a book to. Register a patron before creating a new loan.")
		return nil, nil, false
	}
	return books, patrons, true
}

func (lc *LoansController) renderLoanForm(c *gin.Context, form loanForm, books []entities.Book, patrons []entities.Patron, errs entities.ValidationErrors) {
	c.HTML(http.StatusOK, "new_loan", gin.H{
		"Title":   "New Loan",
		"Form":    form,
		"Books":   books,
		"Patrons": patrons,
		"Errors":  errs,
	})
}

// renderMessage shows a standalone user-facing message page.
func renderMessage(c *gin.Context, title, message string) {
	c.HTML(http.StatusOK, "message", gin.H{
		"Title":   title,
		"Message": message,
	})
}
