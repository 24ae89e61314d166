package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-manager/internal/dates"
)

// NewRouter creates and configures the HTTP router with all pages.
// The .html suffixes on listing paths are part of the stable URL
// contract inherited from the previous generation of this app.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Template helpers for rendering nullable dates and pager links.
	funcMap := template.FuncMap{
		"formatDate": dates.Format,
		"add": func(a, b int) int {
			return a + b
		},
		"subtract": func(a, b int) int {
			return a - b
		},
	}

	tmpl := template.Must(template.New("").Funcs(funcMap).ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	router.Static("/static", cfg.StaticPath)

	health := NewHealthController(cfg.Database, cfg.Version)
	dashboard := NewDashboardController(cfg.Books, cfg.Patrons, cfg.Loans)
	booksController := NewBooksController(cfg.Books)
	patronsController := NewPatronsController(cfg.Patrons)
	loansController := NewLoansController(cfg.Loans, cfg.Books, cfg.Patrons)

	// Health endpoint
	router.GET("/health", health.Status)

	// Dashboard
	router.GET("/", dashboard.Home)

	// Book pages
	router.GET("/new_book.html", booksController.NewBookForm)
	router.POST("/new_book.html", booksController.CreateBook)
	router.GET("/book/:id", booksController.BookDetail)
	router.POST("/book/:id", booksController.UpdateBook)
	router.GET("/all_books.html", booksController.AllBooks)
	router.GET("/overdue_books.html", booksController.OverdueBooks)
	router.GET("/checked_books.html", booksController.CheckedBooks)

	// Patron pages
	router.GET("/new_patron.html", patronsController.NewPatronForm)
	router.POST("/new_patron.html", patronsController.CreatePatron)
	router.GET("/patron/:id", patronsController.PatronDetail)
	router.POST("/patron/:id", patronsController.UpdatePatron)
	router.GET("/all_patrons.html", patronsController.AllPatrons)

	// Loan pages
	router.GET("/new_loan.html", loansController.NewLoanForm)
	router.POST("/new_loan.html", loansController.CreateLoan)
	router.GET("/all_loans.html", loansController.AllLoans)
	router.GET("/overdue_loans.html", loansController.OverdueLoans)
	router.GET("/checked_loans.html", loansController.CheckedLoans)
	router.GET("/return/:id", loansController.ReturnForm)
	router.POST("/return/:id", loansController.ReturnLoan)

	return router
}
