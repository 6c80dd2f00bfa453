package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"etalase/internal/cache"
	"etalase/internal/models"
	"etalase/internal/repositories"
	"etalase/internal/validation"
	logx "etalase/pkg/logger"
	"etalase/pkg/rabbitmq"
)

// Flash texts returned to the caller on successful writes. The caller
// stores them in the session for the next rendered page.
const (
	FlashProductCreated = "Product created successfully"
	FlashProductUpdated = "Product updated successfully"
	FlashProductDeleted = "Product deleted successfully"
)

// WriteResult carries the outcome of a successful write: the affected
// product (nil for deletes) and the flash message to show once.
type WriteResult struct {
	Product *models.Product
	Flash   string
}

// ProductService handles business logic related to products. Writes
// validate before touching the repository; there is no partial write.
type ProductService struct {
	repo     repositories.ProductRepository
	cache    *cache.ProductCache
	mqClient *rabbitmq.Client
	validate *validator.Validate
}

// NewProductService creates a new ProductService. The cache and the
// RabbitMQ client may be nil when those backends are not configured.
func NewProductService(repo repositories.ProductRepository, productCache *cache.ProductCache, mqClient *rabbitmq.Client) *ProductService {
	return &ProductService{
		repo:     repo,
		cache:    productCache,
		mqClient: mqClient,
		validate: validation.New(),
	}
}

// GetAllProducts retrieves all products in insertion order, serving
// from the cache when it is warm.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	ctx := context.Background()
	if products, ok := s.cache.GetList(ctx); ok {
		return products, nil
	}

	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	s.cache.SetList(ctx, products)
	return products, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	ctx := context.Background()
	if product, ok := s.cache.GetProduct(ctx, id); ok {
		return product, nil
	}

	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	s.cache.SetProduct(ctx, product)
	return product, nil
}

// CreateProduct validates the submitted fields and, only when every
// rule passes, persists a new product. A validation failure returns
// the field-error mapping as the error and writes nothing.
func (s *ProductService) CreateProduct(input models.CreateProductInput) (*WriteResult, error) {
	if errs := validation.Check(s.validate, input); errs != nil {
		return nil, errs
	}

	price, err := parsePrice(input.Price)
	if err != nil {
		return nil, validation.Errors{"price": "The price field must be numeric."}
	}

	product := &models.Product{
		Name:        input.Name,
		Price:       price,
		Description: input.Description,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.cache.Invalidate(context.Background(), product.ID)
	s.publishEvent(rabbitmq.EventProductCreated, product)

	return &WriteResult{Product: product, Flash: FlashProductCreated}, nil
}

// UpdateProduct validates the submitted fields and overwrites the
// product identified by id. The id must already exist.
func (s *ProductService) UpdateProduct(id string, input models.UpdateProductInput) (*WriteResult, error) {
	if errs := validation.Check(s.validate, input); errs != nil {
		return nil, errs
	}

	price, err := parsePrice(input.Price)
	if err != nil {
		return nil, validation.Errors{"price": "The price field must be numeric."}
	}

	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Price = price
	// A nil description means the field was not submitted; the stored
	// value is kept. An empty string overwrites.
	if input.Description != nil {
		product.Description = *input.Description
	}
	if err := s.repo.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}

	s.cache.Invalidate(context.Background(), id)
	s.publishEvent(rabbitmq.EventProductUpdated, product)

	return &WriteResult{Product: product, Flash: FlashProductUpdated}, nil
}

// DeleteProduct removes the product identified by id. Deletion is
// immediate and irreversible; the id must exist.
func (s *ProductService) DeleteProduct(id string) (*WriteResult, error) {
	if err := s.repo.Delete(id); err != nil {
		return nil, err
	}

	s.cache.Invalidate(context.Background(), id)
	s.publishDeleteEvent(id)

	return &WriteResult{Flash: FlashProductDeleted}, nil
}

// parsePrice converts the validated price text into its numeric value.
func parsePrice(raw string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}

// publishEvent publishes a product lifecycle event. Publishing is
// best-effort: a missing client or a broker error is logged and never
// fails the write that already happened.
func (s *ProductService) publishEvent(event string, product *models.Product) {
	if s.mqClient == nil {
		logx.Debug().Str("event", event).Msg("RabbitMQ client is not initialized, skipping message publication")
		return
	}

	payload := map[string]interface{}{
		"id":          product.ID,
		"name":        product.Name,
		"price":       product.Price,
		"description": product.Description,
	}
	if err := s.mqClient.PublishProductEvent(event, payload); err != nil {
		logx.Warn().Err(err).Str("event", event).Str("product_id", product.ID).Msg("failed to publish product event")
	}
}

func (s *ProductService) publishDeleteEvent(id string) {
	if s.mqClient == nil {
		logx.Debug().Str("event", rabbitmq.EventProductDeleted).Msg("RabbitMQ client is not initialized, skipping message publication")
		return
	}

	if err := s.mqClient.PublishProductEvent(rabbitmq.EventProductDeleted, map[string]interface{}{"id": id}); err != nil {
		logx.Warn().Err(err).Str("product_id", id).Msg("failed to publish product deleted event")
	}
}
