package validation_test

import (
	"strings"
	"testing"

	"etalase/internal/models"
	"etalase/internal/validation"

	"github.com/stretchr/testify/assert"
)

func TestCheck_ReportsAllViolatedFieldsTogether(t *testing.T) {
	validate := validation.New()

	errs := validation.Check(validate, models.CreateProductInput{Name: "", Price: "abc"})

	assert.Len(t, errs, 2)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "price")
	assert.Contains(t, errs["name"], "required")
	assert.Contains(t, errs["price"], "numeric")
}

func TestCheck_ValidInputPasses(t *testing.T) {
	validate := validation.New()

	errs := validation.Check(validate, models.CreateProductInput{
		Name:        "Widget",
		Price:       "12.50",
		Description: "",
	})

	assert.Nil(t, errs)
}

func TestCheck_NameLengthBound(t *testing.T) {
	validate := validation.New()

	atLimit := models.CreateProductInput{Name: strings.Repeat("a", 255), Price: "1"}
	assert.Nil(t, validation.Check(validate, atLimit))

	overLimit := models.CreateProductInput{Name: strings.Repeat("a", 256), Price: "1"}
	errs := validation.Check(validate, overLimit)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs["name"], "255")
}

func TestCheck_DescriptionIsOptional(t *testing.T) {
	validate := validation.New()

	errs := validation.Check(validate, models.CreateProductInput{Name: "Widget", Price: "0.99"})
	assert.Nil(t, errs)
}

func TestErrors_ErrorStringListsFields(t *testing.T) {
	errs := validation.Errors{
		"price": "The price field must be numeric.",
		"name":  "The name field is required.",
	}

	msg := errs.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "name: The name field is required.")
	assert.Contains(t, msg, "price: The price field must be numeric.")
}
