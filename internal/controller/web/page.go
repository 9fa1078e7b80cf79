// Package web serves the single page of the application.
package web

import (
	"bytes"
	_ "embed"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/statismics/backend/internal/pkg/bininfo"
	"github.com/statismics/backend/internal/pkg/cachectrl"
	"github.com/statismics/backend/internal/server/svr"
)

//go:embed page.html
var pageTemplate string

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

type pageViewModel struct {
	Title   string
	Version string
	Tabs    []string
}

// Page is rendered once; its content only depends on the build.
type Page struct {
	body     []byte
	rendered time.Time
}

func NewPage() (*Page, error) {
	var buf bytes.Buffer
	err := pageTmpl.Execute(&buf, pageViewModel{
		Title:   "GitHub Statismics",
		Version: bininfo.Version,
		Tabs:    []string{"stats", "pie", "line", "bar"},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to render page")
	}
	return &Page{
		body:     buf.Bytes(),
		rendered: time.Now(),
	}, nil
}

func RegisterPage(page *svr.Page) error {
	p, err := NewPage()
	if err != nil {
		return err
	}

	page.Get("/", p.Index)
	return nil
}

func (p *Page) Index(ctx *fiber.Ctx) error {
	cachectrl.OptIn(ctx, p.rendered, 5*time.Minute)
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return ctx.Send(p.body)
}
