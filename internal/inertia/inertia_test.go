package inertia_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"etalase/internal/inertia"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func setupRendererApp() *fiber.App {
	renderer := inertia.NewRenderer("Etalase", "42")
	app := fiber.New()
	app.Get("/products", func(c *fiber.Ctx) error {
		return renderer.Render(c, "Products/Index", fiber.Map{
			"products": []string{},
			"flash":    "Product created successfully",
		})
	})
	return app
}

func TestRender_FullPageLoadReturnsHTMLShell(t *testing.T) {
	app := setupRendererApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/products", nil), -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	html := string(body)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `<div id="app" data-page="`)
	assert.Contains(t, html, "Products/Index")
	assert.Contains(t, html, "<title>Etalase</title>")
}

func TestRender_SPANavigationReturnsJSONPage(t *testing.T) {
	app := setupRendererApp()

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set(inertia.HeaderInertia, "true")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get(inertia.HeaderInertia))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "application/json")

	var page inertia.Page
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, "Products/Index", page.Component)
	assert.Equal(t, "/products", page.URL)
	assert.Equal(t, "42", page.Version)
	assert.Equal(t, "Product created successfully", page.Props["flash"])
}

func TestRender_NilPropsBecomeEmptyObject(t *testing.T) {
	renderer := inertia.NewRenderer("Etalase", "1")
	app := fiber.New()
	app.Get("/empty", func(c *fiber.Ctx) error {
		return renderer.Render(c, "Products/Create", nil)
	})

	req := httptest.NewRequest(http.MethodGet, "/empty", nil)
	req.Header.Set(inertia.HeaderInertia, "true")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	var page inertia.Page
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.NotNil(t, page.Props)
	assert.Empty(t, page.Props)
}
