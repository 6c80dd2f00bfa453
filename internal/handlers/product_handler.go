package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"etalase/internal/flash"
	"etalase/internal/inertia"
	"etalase/internal/models"
	"etalase/internal/repositories"
	"etalase/internal/services"
	"etalase/internal/validation"
	logx "etalase/pkg/logger"
)

// ProductHandler handles the product web routes: the list page, the
// create/edit forms and the write actions behind them.
type ProductHandler struct {
	service  *services.ProductService
	store    *session.Store
	renderer *inertia.Renderer
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, store *session.Store, renderer *inertia.Renderer) *ProductHandler {
	return &ProductHandler{
		service:  service,
		store:    store,
		renderer: renderer,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleIndex)
	productRoutes.Get("/create", h.HandleCreate)
	productRoutes.Post("/", h.HandleStore)
	productRoutes.Get("/:id/edit", h.HandleEdit)
	productRoutes.Put("/:id", h.HandleUpdate)
	productRoutes.Patch("/:id", h.HandleUpdate)
	productRoutes.Delete("/:id", h.HandleDestroy)
}

// HandleIndex renders the product table. A flash message left by the
// previous write is consumed here and will not appear again.
func (h *ProductHandler) HandleIndex(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return sessionFailure(c, err)
	}

	products, err := h.service.GetAllProducts()
	if err != nil {
		logx.Error().Err(err).Msg("failed to list products")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
		})
	}

	props := fiber.Map{
		"products": products,
		"flash":    nil,
	}
	if message, ok := flash.Take(sess); ok {
		props["flash"] = message
	}
	if err := sess.Save(); err != nil {
		logx.Warn().Err(err).Msg("failed to save session")
	}

	return h.renderer.Render(c, "Products/Index", props)
}

// HandleCreate renders the empty create form, or the form pre-filled
// with the previous submission when validation just failed.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return sessionFailure(c, err)
	}

	props := fiber.Map{
		"errors": flash.TakeErrors(sess),
		"old":    flash.TakeOld(sess),
	}
	if err := sess.Save(); err != nil {
		logx.Warn().Err(err).Msg("failed to save session")
	}

	return h.renderer.Render(c, "Products/Create", props)
}

// HandleStore creates a product from the submitted form. Validation
// failures redirect back to the form with the error mapping and the
// original input; nothing is persisted in that case.
func (h *ProductHandler) HandleStore(c *fiber.Ctx) error {
	var input models.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		logx.Warn().Err(err).Msg("error parsing create product request body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return sessionFailure(c, err)
	}

	result, err := h.service.CreateProduct(input)
	if err != nil {
		var validationErrs validation.Errors
		if errors.As(err, &validationErrs) {
			flash.SetErrors(sess, validationErrs)
			flash.SetOld(sess, input.OldInput())
			if err := sess.Save(); err != nil {
				logx.Warn().Err(err).Msg("failed to save session")
			}
			return c.Redirect("/products/create", fiber.StatusFound)
		}
		logx.Error().Err(err).Msg("failed to create product")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create product",
		})
	}

	flash.Set(sess, result.Flash)
	if err := sess.Save(); err != nil {
		logx.Warn().Err(err).Msg("failed to save session")
	}
	return c.Redirect("/products", fiber.StatusFound)
}

// HandleEdit renders the edit form pre-filled with the stored product.
func (h *ProductHandler) HandleEdit(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetProductByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return notFound(c, productID)
		}
		logx.Error().Err(err).Str("product_id", productID).Msg("failed to load product for edit")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
		})
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return sessionFailure(c, err)
	}

	props := fiber.Map{
		"product": product,
		"errors":  flash.TakeErrors(sess),
		"old":     flash.TakeOld(sess),
	}
	if err := sess.Save(); err != nil {
		logx.Warn().Err(err).Msg("failed to save session")
	}

	return h.renderer.Render(c, "Products/Edit", props)
}

// HandleUpdate overwrites the product identified by id with the
// submitted form. Redirects use 303 so the browser follows the PUT
// with a GET.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	productID := c.Params("id")

	var input models.UpdateProductInput
	if err := c.BodyParser(&input); err != nil {
		logx.Warn().Err(err).Str("product_id", productID).Msg("error parsing update product request body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return sessionFailure(c, err)
	}

	result, err := h.service.UpdateProduct(productID, input)
	if err != nil {
		var validationErrs validation.Errors
		if errors.As(err, &validationErrs) {
			flash.SetErrors(sess, validationErrs)
			flash.SetOld(sess, input.OldInput())
			if err := sess.Save(); err != nil {
				logx.Warn().Err(err).Msg("failed to save session")
			}
			return c.Redirect(fmt.Sprintf("/products/%s/edit", productID), fiber.StatusSeeOther)
		}
		if errors.Is(err, repositories.ErrProductNotFound) {
			return notFound(c, productID)
		}
		logx.Error().Err(err).Str("product_id", productID).Msg("failed to update product")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update product",
		})
	}

	flash.Set(sess, result.Flash)
	if err := sess.Save(); err != nil {
		logx.Warn().Err(err).Msg("failed to save session")
	}
	return c.Redirect("/products", fiber.StatusSeeOther)
}

// HandleDestroy deletes the product identified by id. There is no
// server-side confirmation step.
func (h *ProductHandler) HandleDestroy(c *fiber.Ctx) error {
	productID := c.Params("id")

	sess, err := h.store.Get(c)
	if err != nil {
		return sessionFailure(c, err)
	}

	result, err := h.service.DeleteProduct(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return notFound(c, productID)
		}
		logx.Error().Err(err).Str("product_id", productID).Msg("failed to delete product")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete product",
		})
	}

	flash.Set(sess, result.Flash)
	if err := sess.Save(); err != nil {
		logx.Warn().Err(err).Msg("failed to save session")
	}
	return c.Redirect("/products", fiber.StatusSeeOther)
}

func notFound(c *fiber.Ctx, productID string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": fmt.Sprintf("Product with ID %s not found", productID),
	})
}

func sessionFailure(c *fiber.Ctx, err error) error {
	logx.Error().Err(err).Msg("failed to open session")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not open session",
	})
}
