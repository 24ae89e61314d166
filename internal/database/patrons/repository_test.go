package patrons

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library-manager/internal/entities"
	"github.com/mrlokans/library-manager/internal/pagination"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	t.Helper()
	dbPath := "./test_patrons_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Book{},
		&entities.Patron{},
		&entities.Loan{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}
	return repo, cleanup
}

func samplePatron(libraryID string) *entities.Patron {
	return &entities.Patron{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Address:   "12 Analytical Lane",
		Email:     "ada@example.org",
		LibraryID: libraryID,
		ZipCode:   "60601",
	}
}

func TestRepository_Create(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	patron := samplePatron("MCL-1001")
	require.NoError(t, repo.Create(patron))
	assert.NotZero(t, patron.ID)

	loaded, err := repo.GetByID(patron.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", loaded.FullName())
}

func TestRepository_Create_FourDigitZipRejected(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	patron := samplePatron("MCL-1001")
	patron.ZipCode = "1234"

	err := repo.Create(patron)
	verrs, ok := entities.AsValidationErrors(err)
	require.True(t, ok)
	assert.True(t, verrs.Has("zip_code"))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRepository_Create_DuplicateLibraryID(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(samplePatron("MCL-1001")))

	dup := samplePatron("MCL-1001")
	dup.FirstName = "Grace"
	dup.Email = "grace@example.org"

	err := repo.Create(dup)
	verrs, ok := entities.AsValidationErrors(err)
	require.True(t, ok)
	assert.True(t, verrs.Has("library_id"))
	assert.Equal(t, "Library ID is already in use", verrs.Message("library_id"))
}

func TestRepository_Update(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	patron := samplePatron("MCL-1001")
	require.NoError(t, repo.Create(patron))

	t.Run("keeps own library id on update", func(t *testing.T) {
		fields := *samplePatron("MCL-1001")
		fields.Address = "7 Difference Engine Way"
		updated, err := repo.Update(patron.ID, fields)
		require.NoError(t, err)
		assert.Equal(t, "7 Difference Engine Way", updated.Address)
	})

	t.Run("cannot take another patron's library id", func(t *testing.T) {
		other := samplePatron("MCL-2002")
		other.Email = "other@example.org"
		require.NoError(t, repo.Create(other))

		fields := *samplePatron("MCL-2002")
		_, err := repo.Update(patron.ID, fields)
		verrs, ok := entities.AsValidationErrors(err)
		require.True(t, ok)
		assert.True(t, verrs.Has("library_id"))
	})

	t.Run("invalid email rejected on update", func(t *testing.T) {
		fields := *samplePatron("MCL-1001")
		fields.Email = "not-an-email"
		_, err := repo.Update(patron.ID, fields)
		verrs, ok := entities.AsValidationErrors(err)
		require.True(t, ok)
		assert.True(t, verrs.Has("email"))
	})
}

func TestRepository_List_SearchAcrossFields(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	for i := 0; i < 3; i++ {
		p := samplePatron(fmt.Sprintf("MCL-%d", 1000+i))
		p.Email = fmt.Sprintf("ada%d@example.org", i)
		require.NoError(t, repo.Create(p))
	}
	outlier := &entities.Patron{
		FirstName: "Grace",
		LastName:  "Hopper",
		Address:   "1 Compiler Court",
		Email:     "grace@navy.mil",
		LibraryID: "NVY-0001",
		ZipCode:   "22203",
	}
	require.NoError(t, repo.Create(outlier))

	t.Run("matches last name", func(t *testing.T) {
		rows, total, err := repo.List(pagination.NewPage(1), "hopper")
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, rows, 1)
		assert.Equal(t, "Grace", rows[0].FirstName)
	})

	t.Run("matches library id", func(t *testing.T) {
		_, total, err := repo.List(pagination.NewPage(1), "nvy")
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("matches zip code", func(t *testing.T) {
		_, total, err := repo.List(pagination.NewPage(1), "22203")
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("matches address substring", func(t *testing.T) {
		_, total, err := repo.List(pagination.NewPage(1), "compiler")
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("empty term lists everyone", func(t *testing.T) {
		_, total, err := repo.List(pagination.NewPage(1), "")
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
	})
}
