// Package preview renders generated bundles into standalone documents and
// prepares their sources for display.
package preview

import (
	"strings"
	"sync"

	"github.com/ziadkadry99/mockweb/internal/templates"
)

// Document assembles the bundle into one HTML document. The stored strings
// are inserted verbatim.
func Document(b templates.Bundle) string {
	var sb strings.Builder
	sb.Grow(len(b.HTML) + len(b.CSS) + len(b.JS) + 128)
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<style>")
	sb.WriteString(b.CSS)
	sb.WriteString("</style>\n</head>\n<body>\n")
	sb.WriteString(b.HTML)
	sb.WriteString("\n<script>")
	sb.WriteString(b.JS)
	sb.WriteString("</script>\n</body>\n</html>\n")
	return sb.String()
}

// Frame is an isolated rendering context. Each Render replaces the whole
// document.
type Frame struct {
	mu  sync.RWMutex
	doc string
}

// Render replaces the frame's content with the document for b.
func (f *Frame) Render(b templates.Bundle) {
	doc := Document(b)
	f.mu.Lock()
	f.doc = doc
	f.mu.Unlock()
}

// Document returns the current document, or "" if nothing was rendered yet.
func (f *Frame) Document() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.doc
}
