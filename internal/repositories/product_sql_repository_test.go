package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"catalog/internal/database"
	"catalog/internal/models"
	"catalog/internal/repositories"
)

func setupGateway(t *testing.T) *database.Gateway {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, database.Migrate(db))
	return database.NewGateway(db)
}

func TestProductRepository_CreateAndFindRoundTrip(t *testing.T) {
	repo := repositories.NewSQLProductRepository(setupGateway(t))

	created, err := repo.Create(&models.Product{
		Name:     "Tropical Paradise",
		Category: "tropical",
		Tags:     models.Tags{"colorful", "vibrant", "popular"},
	})
	assert.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	fetched, err := repo.FindByID(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Tropical Paradise", fetched.Name)
	assert.Equal(t, models.Tags{"colorful", "vibrant", "popular"}, fetched.Tags, "tag order must survive the JSON round trip")
	assert.Equal(t, 0.0, fetched.UserRating)
	assert.Equal(t, 0, fetched.RatingCount)
}

func TestProductRepository_FindByIDNotFound(t *testing.T) {
	repo := repositories.NewSQLProductRepository(setupGateway(t))

	product, err := repo.FindByID(999)
	assert.Nil(t, product)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProductRepository_FindAllFilters(t *testing.T) {
	gw := setupGateway(t)
	repo := repositories.NewSQLProductRepository(gw)

	seed := []models.Product{
		{Name: "Tropical Paradise", Description: "vibrant colors", Category: "tropical"},
		{Name: "Freshwater Classic", Description: "perfect for beginners", Category: "freshwater"},
		{Name: "Saltwater Specialist", Description: "advanced marine", Category: "saltwater"},
	}
	for i := range seed {
		_, err := repo.Create(&seed[i])
		assert.NoError(t, err)
	}

	byCategory, err := repo.FindAll(models.ProductFilters{Category: "tropical"})
	assert.NoError(t, err)
	assert.Len(t, byCategory, 1)
	assert.Equal(t, "Tropical Paradise", byCategory[0].Name)

	// Search matches name OR description.
	bySearch, err := repo.FindAll(models.ProductFilters{Search: "beginners"})
	assert.NoError(t, err)
	assert.Len(t, bySearch, 1)
	assert.Equal(t, "Freshwater Classic", bySearch[0].Name)

	// Conjunctive: category AND search must both hold.
	both, err := repo.FindAll(models.ProductFilters{Category: "saltwater", Search: "beginners"})
	assert.NoError(t, err)
	assert.Empty(t, both)

	all, err := repo.FindAll(models.ProductFilters{})
	assert.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestProductRepository_SortAllowList(t *testing.T) {
	repo := repositories.NewSQLProductRepository(setupGateway(t))

	for _, name := range []string{"Bravo", "Alpha", "Charlie"} {
		_, err := repo.Create(&models.Product{Name: name, Category: "test"})
		assert.NoError(t, err)
	}

	sorted, err := repo.FindAll(models.ProductFilters{SortBy: "name", SortOrder: "asc"})
	assert.NoError(t, err)
	assert.Equal(t, "Alpha", sorted[0].Name)
	assert.Equal(t, "Charlie", sorted[2].Name)

	// Anything outside the allow-list is rejected before reaching SQL.
	_, err = repo.FindAll(models.ProductFilters{SortBy: "name; DROP TABLE products"})
	assert.ErrorIs(t, err, repositories.ErrInvalidSort)

	_, err = repo.FindAll(models.ProductFilters{SortBy: "name", SortOrder: "sideways"})
	assert.ErrorIs(t, err, repositories.ErrInvalidSort)
}

func TestProductRepository_MalformedTagsDegradeToEmpty(t *testing.T) {
	gw := setupGateway(t)
	repo := repositories.NewSQLProductRepository(gw)

	now := time.Now().UTC()
	id, err := gw.InsertReturningID(
		`INSERT INTO products (name, description, category, tags, user_rating, rating_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		"Corrupted", "", "test", "{not json", 0, 0, now, now,
	)
	assert.NoError(t, err)

	product, err := repo.FindByID(id)
	assert.NoError(t, err)
	assert.Equal(t, models.Tags{}, product.Tags)
}

func TestProductRepository_UpdateOverwritesRow(t *testing.T) {
	repo := repositories.NewSQLProductRepository(setupGateway(t))

	created, err := repo.Create(&models.Product{Name: "Before", Category: "test", Tags: models.Tags{"a"}})
	assert.NoError(t, err)

	created.Name = "After"
	created.Tags = models.Tags{"b", "c"}
	assert.NoError(t, repo.Update(created))

	fetched, err := repo.FindByID(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "After", fetched.Name)
	assert.Equal(t, models.Tags{"b", "c"}, fetched.Tags)

	missing := *created
	missing.ID = 999
	assert.ErrorIs(t, repo.Update(&missing), repositories.ErrNotFound)
}

func TestProductRepository_DeleteIsIdempotentlyNotFound(t *testing.T) {
	repo := repositories.NewSQLProductRepository(setupGateway(t))

	created, err := repo.Create(&models.Product{Name: "Doomed", Category: "test"})
	assert.NoError(t, err)

	assert.NoError(t, repo.Delete(created.ID))
	assert.ErrorIs(t, repo.Delete(created.ID), repositories.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(999), repositories.ErrNotFound)
}

func TestUserRepository_LookupsAndUniqueness(t *testing.T) {
	gw := setupGateway(t)
	repo := repositories.NewSQLUserRepository(gw)

	created, err := repo.Create(&models.User{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Username:     "ada",
		Email:        "ada@example.com",
		PasswordHash: "hash",
	})
	assert.NoError(t, err)

	byName, err := repo.FindByUsername("ada")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	byEmail, err := repo.FindByEmail("ada@example.com")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = repo.FindByUsername("nobody")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	// Uniqueness is enforced by the store, not the application layer.
	_, err = repo.Create(&models.User{Username: "ada", Email: "other@example.com"})
	assert.Error(t, err)

	filtered, err := repo.FindAll(models.UserFilters{Username: "ad"})
	assert.NoError(t, err)
	assert.Len(t, filtered, 1)
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	gw := setupGateway(t)
	repo := repositories.NewSQLSessionRepository(gw)

	session := &models.Session{
		Token:     "tok-1",
		Data:      models.SessionData{UserID: 7, Username: "ada", FirstName: "Ada"},
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	assert.NoError(t, repo.Create(session))

	fetched, err := repo.FindByToken("tok-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), fetched.Data.UserID, "payload must round-trip through the JSON column")
	assert.Equal(t, "ada", fetched.Data.Username)

	fetched.Data.Username = "ada2"
	assert.NoError(t, repo.Update(fetched))
	refetched, err := repo.FindByToken("tok-1")
	assert.NoError(t, err)
	assert.Equal(t, "ada2", refetched.Data.Username)

	assert.NoError(t, repo.Delete("tok-1"))
	_, err = repo.FindByToken("tok-1")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.ErrorIs(t, repo.Delete("tok-1"), repositories.ErrNotFound)
}
