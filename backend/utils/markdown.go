package utils

import (
	"bytes"

	"github.com/yuin/goldmark"
)

var markdown = goldmark.New()

// RenderMarkdown converts markdown to HTML. On a render failure the raw
// source comes back unchanged so the caller always has something to show.
func RenderMarkdown(source string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return source
	}
	return buf.String()
}
