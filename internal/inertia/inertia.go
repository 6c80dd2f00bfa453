package inertia

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Protocol headers exchanged with the SPA frontend.
const (
	HeaderInertia = "X-Inertia"
	HeaderVersion = "X-Inertia-Version"
)

// Page is the props object handed to the SPA: which component to
// mount, its props, the current URL and the asset version.
type Page struct {
	Component string    `json:"component"`
	Props     fiber.Map `json:"props"`
	URL       string    `json:"url"`
	Version   string    `json:"version"`
}

// shellTemplate is the HTML document served on full page loads. The
// SPA boots from the JSON page object embedded in the data-page
// attribute and takes over navigation from there.
const shellTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Title}}</title>
    <script type="module" src="/assets/app.js" defer></script>
</head>
<body>
    <div id="app" data-page="{{.Page}}"></div>
</body>
</html>
`

// Renderer renders pages either as the HTML shell (initial browser
// request) or as bare JSON (subsequent SPA navigation with the
// X-Inertia header set).
type Renderer struct {
	title   string
	version string
	shell   *template.Template
}

// NewRenderer creates a Renderer. The version string lets the SPA
// detect stale assets and force a full reload.
func NewRenderer(title, version string) *Renderer {
	return &Renderer{
		title:   title,
		version: version,
		shell:   template.Must(template.New("shell").Parse(shellTemplate)),
	}
}

// Render writes the page for the given component. Props must be
// JSON-marshalable.
func (r *Renderer) Render(c *fiber.Ctx, component string, props fiber.Map) error {
	if props == nil {
		props = fiber.Map{}
	}
	page := Page{
		Component: component,
		Props:     props,
		URL:       c.OriginalURL(),
		Version:   r.version,
	}

	if c.Get(HeaderInertia) == "true" {
		c.Set(HeaderInertia, "true")
		c.Set("Vary", HeaderInertia)
		return c.JSON(page)
	}

	encoded, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to marshal page object: %w", err)
	}

	var buf strings.Builder
	err = r.shell.Execute(&buf, struct {
		Title string
		Page  string
	}{
		Title: r.title,
		Page:  string(encoded),
	})
	if err != nil {
		return fmt.Errorf("failed to render HTML shell: %w", err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(buf.String())
}
