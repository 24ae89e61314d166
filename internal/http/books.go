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

// BookStore defines the database operations the book pages need.
type BookStore interface {
	Create(book *entities.Book) error
	GetByIDWithLoans(id uint) (*entities.Book, error)
	Update(id uint, fields entities.Book) (*entities.Book, error)
	List(page pagination.Page, searchTerm string) ([]entities.Book, int64, error)
	ListOverdue(today dates.Date, page pagination.Page, searchTerm string) ([]entities.Book, int64, error)
	ListCheckedOut(page pagination.Page, searchTerm string) ([]entities.Book, int64, error)
}

type BooksController struct {
	store BookStore
	today func() dates.Date
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{
		store: store,
		today: dates.Today,
	}
}

// bookForm holds the raw form fields so invalid submissions can be
// redisplayed exactly as typed.
type bookForm struct {
	Title          string
	Author         string
	Genre          string
	FirstPublished string
}

func readBookForm(c *gin.Context) bookForm {
	return bookForm{
		Title:          strings.TrimSpace(c.PostForm("title")),
		Author:         strings.TrimSpace(c.PostForm("author")),
		Genre:          strings.TrimSpace(c.PostForm("genre")),
		FirstPublished: strings.TrimSpace(c.PostForm("first_published")),
	}
}

// toEntity converts the form into a Book. A non-numeric publication
// year is mapped to an out-of-range value so validation reports it
// with the usual first_published message.
func (f bookForm) toEntity() entities.Book {
	book := entities.Book{
		Title:  f.Title,
		Author: f.Author,
		Genre:  f.Genre,
	}
	if f.FirstPublished != "" {
		year, err := strconv.Atoi(f.FirstPublished)
		if err != nil {
			year = -1
		}
		book.FirstPublished = &year
	}
	return book
}

// NewBookForm renders the empty new-book form.
// GET /new_book.html
func (bc *BooksController) NewBookForm(c *gin.Context) {
	c.HTML(http.StatusOK, "new_book", gin.H{
		"Title": "New Book",
		"Form":  bookForm{},
	})
}

// CreateBook handles the new-book submission. Validation failures
// re-render the form with per-field messages and the input preserved.
// POST /new_book.html
func (bc *BooksController) CreateBook(c *gin.Context) {
	form := readBookForm(c)
	book := form.toEntity()

	if err := bc.store.Create(&book); err != nil {
		if verrs, ok := asValidationErrors(err); ok {
			c.HTML(http.StatusOK, "new_book", gin.H{
				"Title":  "New Book",
				"Form":   form,
				"Errors": verrs,
			})
			return
		}
		renderInternalError(c, err, "create book")
		return
	}

	c.Redirect(http.StatusFound, "/all_books.html?page=1")
}

// BookDetail renders a book's edit form along with its loan history.
// GET /book/:id
func (bc *BooksController) BookDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetByIDWithLoans(id)
	if err == gorm.ErrRecordNotFound {
		renderNotFound(c, "Book")
		return
	}
	if err != nil {
		renderInternalError(c, err, "load book")
		return
	}

	c.HTML(http.StatusOK, "book_detail", gin.H{
		"Title": book.Title,
		"Book":  book,
		"Form":  bookFormFromEntity(book),
	})
}

// UpdateBook handles the edit submission for an existing book.
// POST /book/:id
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	form := readBookForm(c)
	_, err := bc.store.Update(id, form.toEntity())
	if err == gorm.ErrRecordNotFound {
		renderNotFound(c, "Book")
		return
	}
	if err != nil {
		if verrs, ok := asValidationErrors(err); ok {
			book, loadErr := bc.store.GetByIDWithLoans(id)
			if loadErr != nil {
				renderInternalError(c, loadErr, "reload book")
				return
			}
			c.HTML(http.StatusOK, "book_detail", gin.H{
				"Title":  book.Title,
				"Book":   book,
				"Form":   form,
				"Errors": verrs,
			})
			return
		}
		renderInternalError(c, err, "update book")
		return
	}

	c.Redirect(http.StatusFound, "/all_books.html?page=1")
}

// AllBooks renders the paginated, searchable catalog.
// GET /all_books.html
func (bc *BooksController) AllBooks(c *gin.Context) {
	page, searchTerm, ok := listingParams(c)
	if !ok {
		return
	}

	books, total, err := bc.store.List(page, searchTerm)
	if err != nil {
		renderInternalError(c, err, "list books")
		return
	}
	if redirectIfPastLastPage(c, page, total) {
		return
	}

	data := listingContext("All Books", page, total, searchTerm)
	data["Books"] = books
	c.HTML(http.StatusOK, "all_books", data)
}

// OverdueBooks lists books whose outstanding loan is past due.
// GET /overdue_books.html
func (bc *BooksController) OverdueBooks(c *gin.Context) {
	page, searchTerm, ok := listingParams(c)
	if !ok {
		return
	}

	books, total, err := bc.store.ListOverdue(bc.today(), page, searchTerm)
	if err != nil {
		renderInternalError(c, err, "list overdue books")
		return
	}
	if redirectIfPastLastPage(c, page, total) {
		return
	}

	data := listingContext("Overdue Books", page, total, searchTerm)
	data["Books"] = books
	c.HTML(http.StatusOK, "overdue_books", data)
}

// CheckedBooks lists books currently out on loan.
// GET /checked_books.html
func (bc *BooksController) CheckedBooks(c *gin.Context) {
	page, searchTerm, ok := listingParams(c)
	if !ok {
		return
	}

	books, total, err := bc.store.ListCheckedOut(page, searchTerm)
	if err != nil {
		renderInternalError(c, err, "list checked out books")
		return
	}
	if redirectIfPastLastPage(c, page, total) {
		return
	}

	data := listingContext("Books Checked Out", page, total, searchTerm)
	data["Books"] = books
	c.HTML(http.StatusOK, "checked_books", data)
}

func bookFormFromEntity(book *entities.Book) bookForm {
	form := bookForm{
		Title:  book.Title,
		Author: book.Author,
		Genre:  book.Genre,
	}
	if book.FirstPublished != nil {
		form.FirstPublished = strconv.Itoa(*book.FirstPublished)
	}
	return form
}
