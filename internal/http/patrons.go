package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/pagination"
)

// PatronStore defines the database operations the patron pages need.
type PatronStore interface {
	Create(patron *entities.Patron) error
	GetByIDWithLoans(id uint) (*entities.Patron, error)
	Update(id uint, fields entities.Patron) (*entities.Patron, error)
	List(page pagination.Page, searchTerm string) ([]entities.Patron, int64, error)
}

type PatronsController struct {
	store PatronStore
}

func NewPatronsController(store PatronStore) *PatronsController {
	return &PatronsController{store: store}
}

type patronForm struct {
	FirstName string
	LastName  string
	Address   string
	Email     string
	LibraryID string
	ZipCode   string
}

func readPatronForm(c *gin.Context) patronForm {
	return patronForm{
		FirstName: strings.TrimSpace(c.PostForm("first_name")),
		LastName:  strings.TrimSpace(c.PostForm("last_name")),
		Address:   strings.TrimSpace(c.PostForm("address")),
		Email:     strings.TrimSpace(c.PostForm("email")),
		LibraryID: strings.TrimSpace(c.PostForm("library_id")),
		ZipCode:   strings.TrimSpace(c.PostForm("zip_code")),
	}
}

func (f patronForm) toEntity() entities.Patron {
	return entities.Patron{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Address:   f.Address,
		Email:     f.Email,
		LibraryID: f.LibraryID,
		ZipCode:   f.ZipCode,
	}
}

// NewPatronForm renders the empty new-patron form.
// GET /new_patron.html
func (pc *PatronsController) NewPatronForm(c *gin.Context) {
	c.HTML(http.StatusOK, "new_patron", gin.H{
		"Title": "New Patron",
		"Form":  patronForm{},
	})
}

// CreatePatron handles the new-patron submission.
// POST /new_patron.html
func (pc *PatronsController) CreatePatron(c *gin.Context) {
	form := readPatronForm(c)
	patron := form.toEntity()

	if err := pc.store.Create(&patron); err != nil {
		if verrs, ok := asValidationErrors(err); ok {
			c.HTML(http.StatusOK, "new_patron", gin.H{
				"Title":  "New Patron",
				"Form":   form,
				"Errors": verrs,
			})
			return
		}
		renderInternalError(c, err, "create patron")
		return
	}

	c.Redirect(http.StatusFound, "/all_patrons.html?page=1")
}

// PatronDetail renders a patron's edit form and loan history.
// GET /patron/:id
func (pc *PatronsController) PatronDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	patron, err := pc.store.GetByIDWithLoans(id)
	if err == gorm.ErrRecordNotFound {
		renderNotFound(c, "Patron")
		return
	}
	if err != nil {
		renderInternalError(c, err, "load patron")
		return
	}

	c.HTML(http.StatusOK, "patron_detail", gin.H{
		"Title":  patron.FullName(),
		"Patron": patron,
		"Form":   patronFormFromEntity(patron),
	})
}

// UpdatePatron handles the edit submission for an existing patron.
// POST /patron/:id
func (pc *PatronsController) UpdatePatron(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	form := readPatronForm(c)
	_, err := pc.store.Update(id, form.toEntity())
	if err == gorm.ErrRecordNotFound {
		renderNotFound(c, "Patron")
		return
	}
	if err != nil {
		if verrs, ok := asValidationErrors(err); ok {
			patron, loadErr := pc.store.GetByIDWithLoans(id)
			if loadErr != nil {
				renderInternalError(c, loadErr, "reload patron")
				return
			}
			c.HTML(http.StatusOK, "patron_detail", gin.H{
				"Title":  patron.FullName(),
				"Patron": patron,
				"Form":   form,
				"Errors": verrs,
			})
			return
		}
		renderInternalError(c, err, "update patron")
		return
	}

	c.Redirect(http.StatusFound, "/all_patrons.html?page=1")
}

// AllPatrons renders the paginated, searchable patron listing.
// GET /all_patrons.html
func (pc *PatronsController) AllPatrons(c *gin.Context) {
	page, searchTerm, ok := listingParams(c)
	if !ok {
		return
	}

	patrons, total, err := pc.store.List(page, searchTerm)
	if err != nil {
		renderInternalError(c, err, "list patrons")
		return
	}
	if redirectIfPastLastPage(c, page, total) {
		return
	}

	data := listingContext("All Patrons", page, total, searchTerm)
	data["Patrons"] = patrons
	c.HTML(http.StatusOK, "all_patrons", data)
}

func patronFormFromEntity(patron *entities.Patron) patronForm {
	return patronForm{
		FirstName: patron.FirstName,
		LastName:  patron.LastName,
		Address:   patron.Address,
		Email:     patron.Email,
		LibraryID: patron.LibraryID,
		ZipCode:   patron.ZipCode,
	}
}
