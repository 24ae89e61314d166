package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-manager/internal/dates"
)

// BookCounter, PatronCounter and LoanCounter supply the dashboard
// figures.
type BookCounter interface {
	Count() (int64, error)
}

type PatronCounter interface {
	Count() (int64, error)
}

type LoanCounter interface {
	Count() (int64, error)
	OverdueCount(today dates.Date) (int64, error)
}

type DashboardController struct {
	books   BookCounter
	patrons PatronCounter
	loans   LoanCounter
	today   func() dates.Date
}

func NewDashboardController(books BookCounter, patrons PatronCounter, loans LoanCounter) *DashboardController {
	return &DashboardController{
		books:   books,
		patrons: patrons,
		loans:   loans,
		today:   dates.Today,
	}
}

// Home renders the dashboard with entity counts and quick links.
// GET /
func (dc *DashboardController) Home(c *gin.Context) {
	bookCount, err := dc.books.Count()
	if err != nil {
		renderInternalError(c, err, "count books")
		return
	}
	patronCount, err := dc.patrons.Count()
	if err != nil {
		renderInternalError(c, err, "count patrons")
		return
	}
	loanCount, err := dc.loans.Count()
	if err != nil {
		renderInternalError(c, err, "count loans")
		return
	}
	overdueCount, err := dc.loans.OverdueCount(dc.today())
	if err != nil {
		renderInternalError(c, err, "count overdue loans")
		return
	}

	c.HTML(http.StatusOK, "index", gin.H{
		"Title":        "Library Manager",
		"BookCount":    bookCount,
		"PatronCount":  patronCount,
		"LoanCount":    loanCount,
		"OverdueCount": overdueCount,
	})
}
