// Package markdown renders reading notes. Notes are Markdown with optional
// YAML frontmatter; the resulting HTML is sanitized before it reaches a page.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/frontmatter"
)

// Rendered is a note ready for display.
type Rendered struct {
	HTML    template.HTML
	Page    int
	Chapter string
}

type Parser struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			&frontmatter.Extender{},
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
			goldmarkhtml.WithXHTML(),
		),
	)

	return &Parser{
		md:     md,
		policy: bluemonday.UGCPolicy(),
	}
}

func (p *Parser) Parse(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := p.md.Convert(source, &buf)
	if err != nil {
		return nil, err
	}
	return p.policy.SanitizeBytes(buf.Bytes()), nil
}

func (p *Parser) ParseWithFrontmatter(source []byte) (content []byte, meta map[string]any, err error) {
	context := parser.NewContext()
	var buf bytes.Buffer

	err = p.md.Convert(source, &buf, parser.WithContext(context))
	if err != nil {
		return nil, nil, err
	}

	meta = make(map[string]any)
	if data := frontmatter.Get(context); data != nil {
		if decodeErr := data.Decode(&meta); decodeErr != nil {
			meta = make(map[string]any)
		}
	}

	return p.policy.SanitizeBytes(buf.Bytes()), meta, nil
}

// Note renders a note body. Frontmatter keys page and chapter become
// reading references; anything else in the frontmatter is ignored.
func (p *Parser) Note(content string) (Rendered, error) {
	html, meta, err := p.ParseWithFrontmatter([]byte(content))
	if err != nil {
		return Rendered{}, fmt.Errorf("failed to render note: %w", err)
	}

	r := Rendered{HTML: template.HTML(html)}

	switch page := meta["page"].(type) {
	case int:
		r.Page = page
	case uint64:
		r.Page = int(page)
	case float64:
		r.Page = int(page)
	}
	if chapter, ok := meta["chapter"]; ok {
		r.Chapter = fmt.Sprint(chapter)
	}

	return r, nil
}
