package models

import "gorm.io/gorm"

// Product represents a product in the catalog.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string  `json:"name" gorm:"type:varchar(255)" validate:"required,max=255"`
	Price       float64 `json:"price" validate:"required"`
	Description string  `json:"description" gorm:"type:text"`
	gorm.Model          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// TableName returns the table name for Product.
func (Product) TableName() string {
	return "products"
}

// CreateProductInput is the allow-list of fields a create submission may set.
// Price arrives as form text and is converted only after validation passes.
type CreateProductInput struct {
	Name        string `json:"name" form:"name" validate:"required,max=255"`
	Price       string `json:"price" form:"price" validate:"required,numeric"`
	Description string `json:"description" form:"description"`
}

// UpdateProductInput is the allow-list of fields an update submission may set.
// Description is a pointer so an omitted field (nil, stored value is
// retained) can be told apart from an empty one (overwrites).
type UpdateProductInput struct {
	Name        string  `json:"name" form:"name" validate:"required,max=255"`
	Price       string  `json:"price" form:"price" validate:"required,numeric"`
	Description *string `json:"description" form:"description"`
}

// OldInput returns the raw submitted values for form redisplay after a
// validation failure.
func (in CreateProductInput) OldInput() map[string]string {
	return map[string]string{
		"name":        in.Name,
		"price":       in.Price,
		"description": in.Description,
	}
}

// OldInput returns the raw submitted values for form redisplay after a
// validation failure. An omitted description stays omitted.
func (in UpdateProductInput) OldInput() map[string]string {
	old := map[string]string{
		"name":  in.Name,
		"price": in.Price,
	}
	if in.Description != nil {
		old["description"] = *in.Description
	}
	return old
}
