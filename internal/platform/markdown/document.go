package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

const (
	fence        = "---\n"
	closingFence = "\n---\n"
)

// Document is a markdown file with a YAML frontmatter header.
type Document struct {
	Meta map[string]any
	Body string
}

// Parse splits content into frontmatter and body. Content without a
// header parses to empty Meta.
func Parse(content string) (Document, error) {
	if !strings.HasPrefix(content, fence) {
		return Document{Meta: map[string]any{}, Body: content}, nil
	}
	rest := strings.TrimPrefix(content, fence)
	idx := strings.Index(rest, closingFence)
	if idx < 0 {
		return Document{}, fmt.Errorf("invalid frontmatter: missing closing fence")
	}
	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(rest[:idx]), &meta); err != nil {
		return Document{}, fmt.Errorf("decode frontmatter: %w", err)
	}
	return Document{Meta: meta, Body: strings.TrimPrefix(rest[idx+len(closingFence):], "\n")}, nil
}

// Render writes the header only when Meta has keys.
func (d Document) Render() (string, error) {
	if len(d.Meta) == 0 {
		return d.Body, nil
	}
	raw, err := yaml.Marshal(d.Meta)
	if err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(fence)
	buf.Write(raw)
	buf.WriteString(fence)
	buf.WriteString("\n")
	buf.WriteString(d.Body)
	return buf.String(), nil
}

// BlockMarkers returns the HTML comments that fence the named block.
func BlockMarkers(name string) (string, string) {
	return "<!-- helmwatch:" + name + ":start -->", "<!-- helmwatch:" + name + ":end -->"
}

// SetBlock replaces the named block, appending it when the body has none.
func (d *Document) SetBlock(name, generated string) {
	start, end := BlockMarkers(name)
	block := start + "\n" + generated + "\n" + end
	i := strings.Index(d.Body, start)
	j := strings.Index(d.Body, end)
	if i >= 0 && j > i {
		d.Body = d.Body[:i] + block + d.Body[j+len(end):]
		return
	}
	switch {
	case strings.TrimSpace(d.Body) == "":
		d.Body = block + "\n"
	case strings.HasSuffix(d.Body, "\n"):
		d.Body += "\n" + block + "\n"
	default:
		d.Body += "\n\n" + block + "\n"
	}
}

// Block returns the text inside the named block.
func (d Document) Block(name string) (string, bool) {
	start, end := BlockMarkers(name)
	i := strings.Index(d.Body, start)
	j := strings.Index(d.Body, end)
	if i < 0 || j < i {
		return "", false
	}
	return strings.TrimSpace(d.Body[i+len(start) : j]), true
}

var renderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML renders the body. Frontmatter is never part of the output.
func (d Document) HTML() (string, error) {
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(d.Body), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
