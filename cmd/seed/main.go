// Command seed creates a database with sample books, patrons and
// loans for local development.
// Usage: go run cmd/seed/main.go [-db path/to/library.db]
package main

import (
	"flag"
	"log"
	"os"

	"github.com/mrlokans/library-manager/internal/config"
	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/database/books"
	"github.com/mrlokans/library-manager/internal/database/loans"
	"github.com/mrlokans/library-manager/internal/database/patrons"
	"github.com/mrlokans/library-manager/internal/dates"
	"github.com/mrlokans/library-manager/internal/entities"
)

func main() {
	dbPath := flag.String("db", config.DefaultDatabasePath, "path to the database file")
	flag.Parse()

	log.Printf("Seeding database at %s...", *dbPath)

	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	bookRepo := books.NewRepository(db.DB)
	patronRepo := patrons.NewRepository(db.DB)
	loanRepo := loans.NewRepository(db.DB)

	seededBooks := seedBooks(bookRepo)
	seededPatrons := seedPatrons(patronRepo)
	seedLoans(loanRepo, seededBooks, seededPatrons)

	log.Printf("Done: %d books, %d patrons", len(seededBooks), len(seededPatrons))
}

func intPtr(v int) *int { return &v }

func seedBooks(repo *books.Repository) []*entities.Book {
	catalog := []*entities.Book{
		{Title: "Pride and Prejudice", Author: "Jane Austen", Genre: "Romance", FirstPublished: intPtr(1813)},
		{Title: "Moby-Dick", Author: "Herman Melville", Genre: "Adventure", FirstPublished: intPtr(1851)},
		{Title: "Middlemarch", Author: "George Eliot", Genre: "Classic", FirstPublished: intPtr(1871)},
		{Title: "The Time Machine", Author: "H.G. Wells", Genre: "Science Fiction", FirstPublished: intPtr(1895)},
		{Title: "Dracula", Author: "Bram Stoker", Genre: "Horror", FirstPublished: intPtr(1897)},
		{Title: "The Hound of the Baskervilles", Author: "Arthur Conan Doyle", Genre: "Mystery", FirstPublished: intPtr(1902)},
		{Title: "A Room with a View", Author: "E.M. Forster", Genre: "Classic", FirstPublished: intPtr(1908)},
		{Title: "Ulysses", Author: "James Joyce", Genre: "Modernist", FirstPublished: intPtr(1922)},
	}

	for _, book := range catalog {
		if err := repo.Create(book); err != nil {
			log.Fatalf("Failed to seed book %q: %v", book.Title, err)
		}
	}
	return catalog
}

func seedPatrons(repo *patrons.Repository) []*entities.Patron {
	members := []*entities.Patron{
		{FirstName: "Ada", LastName: "Lovelace", Address: "12 Analytical Lane", Email: "ada@example.org", LibraryID: "MCL-1001", ZipCode: "60601"},
		{FirstName: "Grace", LastName: "Hopper", Address: "1 Compiler Court", Email: "grace@example.org", LibraryID: "MCL-1002", ZipCode: "22203"},
		{FirstName: "Alan", LastName: "Turing", Address: "42 Enigma Road", Email: "alan@example.org", LibraryID: "MCL-1003", ZipCode: "10001"},
		{FirstName: "Katherine", LastName: "Johnson", Address: "7 Orbit Street", Email: "katherine@example.org", LibraryID: "MCL-1004", ZipCode: "23666"},
	}

	for _, patron := range members {
		if err := repo.Create(patron); err != nil {
			log.Fatalf("Failed to seed patron %s: %v", patron.FullName(), err)
		}
	}
	return members
}

func seedLoans(repo *loans.Repository, seededBooks []*entities.Book, seededPatrons []*entities.Patron) {
	today := dates.Today()

	// One loan already returned, one on time, one overdue.
	returned, err := repo.Create(seededBooks[0].ID, seededPatrons[0].ID, today.AddDays(-30).String(), today.AddDays(-23).String())
	if err != nil {
		log.Fatalf("Failed to seed loan: %v", err)
	}
	if _, err := repo.Return(returned.ID, today.AddDays(-24).String()); err != nil {
		log.Fatalf("Failed to seed returned loan: %v", err)
	}

	if _, err := repo.Create(seededBooks[1].ID, seededPatrons[1].ID, today.String(), today.AddDays(7).String()); err != nil {
		log.Fatalf("Failed to seed loan: %v", err)
	}

	if _, err := repo.Create(seededBooks[2].ID, seededPatrons[2].ID, today.AddDays(-14).String(), today.AddDays(-7).String()); err != nil {
		log.Fatalf("Failed to seed overdue loan: %v", err)
	}
}
