package http

import (
	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/database/books"
	"github.com/mrlokans/library-manager/internal/database/loans"
	"github.com/mrlokans/library-manager/internal/database/patrons"
)

// RouterConfig contains all dependencies and configuration needed to
// create the HTTP router. Repositories come in as concrete types and
// are narrowed to the controller interfaces inside NewRouter.
type RouterConfig struct {
	// Repositories
	Books   *books.Repository
	Patrons *patrons.Repository
	Loans   *loans.Repository

	// Health checks
	Database *database.Database

	// UI paths
	TemplatesPath string
	StaticPath    string

	// Application info
	Version string
}
