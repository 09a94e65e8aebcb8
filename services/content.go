package services

import (
	"bytes"
	"fmt"
	stdhtml "html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	// contentPolicy allows the formatting markdown produces
	contentPolicy = bluemonday.UGCPolicy()
	// plainPolicy strips all markup from form input
	plainPolicy = bluemonday.StrictPolicy()
)

// RenderMarkdown converts catalog markdown into sanitized HTML
func RenderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return strings.TrimSpace(contentPolicy.Sanitize(buf.String())), nil
}

// SanitizeText strips any markup from user supplied text and returns plain,
// unescaped text. Escaping is left to whatever renders it.
func SanitizeText(s string) string {
	return strings.TrimSpace(stdhtml.UnescapeString(plainPolicy.Sanitize(s)))
}
