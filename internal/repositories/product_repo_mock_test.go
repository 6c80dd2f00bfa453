package repositories_test

import (
	"errors"
	"testing"

	"etalase/internal/models"
	"etalase/internal/repositories"

	"github.com/stretchr/testify/assert"
)

func TestMockProductRepository_GetAllPreservesInsertionOrder(t *testing.T) {
	repo := repositories.NewMockProductRepository()

	names := []string{"Laptop", "Keyboard", "Mouse"}
	for _, name := range names {
		err := repo.Create(&models.Product{Name: name, Price: 1.0})
		assert.NoError(t, err)
	}

	products, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, products, 3)
	for i, product := range products {
		assert.Equal(t, names[i], product.Name)
	}

	// Order must be stable across calls.
	again, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Equal(t, products, again)
}

func TestMockProductRepository_DeleteRemovesFromListing(t *testing.T) {
	repo := repositories.NewMockProductRepository()

	first := &models.Product{Name: "First", Price: 1.0}
	second := &models.Product{Name: "Second", Price: 2.0}
	third := &models.Product{Name: "Third", Price: 3.0}
	for _, product := range []*models.Product{first, second, third} {
		assert.NoError(t, repo.Create(product))
	}

	assert.NoError(t, repo.Delete(second.ID))

	products, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, "First", products[0].Name)
	assert.Equal(t, "Third", products[1].Name)

	_, err = repo.GetByID(second.ID)
	assert.True(t, errors.Is(err, repositories.ErrProductNotFound))
}

func TestMockProductRepository_NotFoundPaths(t *testing.T) {
	repo := repositories.NewMockProductRepository()

	_, err := repo.GetByID("missing")
	assert.True(t, errors.Is(err, repositories.ErrProductNotFound))

	err = repo.Update(&models.Product{ID: "missing", Name: "X", Price: 1.0})
	assert.True(t, errors.Is(err, repositories.ErrProductNotFound))

	err = repo.Delete("missing")
	assert.True(t, errors.Is(err, repositories.ErrProductNotFound))
}

func TestMockProductRepository_CreateAssignsID(t *testing.T) {
	repo := repositories.NewMockProductRepository()

	product := &models.Product{Name: "Widget", Price: 12.5}
	assert.NoError(t, repo.Create(product))
	assert.NotEmpty(t, product.ID)

	fetched, err := repo.GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Widget", fetched.Name)
}
