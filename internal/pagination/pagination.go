// Package pagination implements the page-number policy shared by all
// listing views: pages are 1-based, ten rows per page, and anything
// that is not a positive integer sends the visitor back to page 1
// instead of erroring.
package pagination

import "strconv"

// DefaultPageSize is the fixed number of rows per listing page.
const DefaultPageSize = 10

// Page describes one slice of a listing.
type Page struct {
	Number int
	Size   int
}

// NewPage returns a Page for the given 1-based page number with the
// default size.
func NewPage(number int) Page {
	return Page{Number: number, Size: DefaultPageSize}
}

// Offset returns the row offset for the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Limit returns the row limit for the page.
func (p Page) Limit() int {
	return p.Size
}

// ParsePageParam parses the raw "page" query parameter. ok is false
// when the value is missing, non-numeric or not positive; the caller
// is expected to redirect to page 1 in that case.
func ParsePageParam(raw string) (page int, ok bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// TotalPages returns ceil(totalItems/size) with a minimum of 1 so an
// empty listing still renders a single (empty) page.
func TotalPages(totalItems int64, size int) int {
	if totalItems <= 0 {
		return 1
	}
	pages := int(totalItems) / size
	if int(totalItems)%size != 0 {
		pages++
	}
	return pages
}
