package http

import (
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/pagination"
)

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL
// parameters. Responds with a 400 and returns false on bad input.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid %s", paramName)
		return 0, false
	}
	return uint(id), true
}

// listingParams reads the page and search_term query parameters for a
// listing view. A missing or malformed page number redirects to page 1
// of the same listing (policy, not an error) and returns ok=false.
func listingParams(c *gin.Context) (page pagination.Page, searchTerm string, ok bool) {
	number, valid := pagination.ParsePageParam(c.Query("page"))
	if !valid {
		redirectToFirstPage(c)
		return pagination.Page{}, "", false
	}
	return pagination.NewPage(number), c.Query("search_term"), true
}

// redirectToFirstPage sends the visitor to page 1 of the current
// listing, keeping the search term if one was given.
func redirectToFirstPage(c *gin.Context) {
	target := c.Request.URL.Path + "?page=1"
	if term := c.Query("search_term"); term != "" {
		target += "&search_term=" + url.QueryEscape(term)
	}
	c.Redirect(http.StatusFound, target)
}

// redirectIfPastLastPage applies the same policy when the requested
// page number is beyond the last page of a non-empty listing.
func redirectIfPastLastPage(c *gin.Context, page pagination.Page, totalItems int64) bool {
	if totalItems > 0 && page.Number > pagination.TotalPages(totalItems, page.Size) {
		redirectToFirstPage(c)
		return true
	}
	return false
}

// --- Error Rendering ---

// renderNotFound shows the explicit 404 page for unknown entity ids.
func renderNotFound(c *gin.Context, resource string) {
	c.HTML(http.StatusNotFound, "not_found", gin.H{
		"Title":    "Not Found",
		"Resource": resource,
	})
}

// renderInternalError logs the error and sends a plain 500. Storage
// failures are not recoverable at the handler level.
func renderInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.String(http.StatusInternalServerError, "internal server error")
}

// asValidationErrors pulls the per-field list out of a repository
// error, or returns false so the caller can treat it as a storage
// failure.
func asValidationErrors(err error) (entities.ValidationErrors, bool) {
	return entities.AsValidationErrors(err)
}

// listingContext assembles the template data every listing view
// shares.
func listingContext(title string, page pagination.Page, totalItems int64, searchTerm string) gin.H {
	return gin.H{
		"Title":       title,
		"Page":        page.Number,
		"TotalPages":  pagination.TotalPages(totalItems, page.Size),
		"TotalItems":  totalItems,
		"SearchTerm":  searchTerm,
		"HasPrevPage": page.Number > 1,
		"HasNextPage": page.Number < pagination.TotalPages(totalItems, page.Size),
	}
}
