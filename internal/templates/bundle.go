package templates

import "fmt"

// Language identifies one of the three source blobs of a bundle.
type Language string

const (
	LanguageHTML Language = "html"
	LanguageCSS  Language = "css"
	LanguageJS   Language = "js"
)

// Languages lists the bundle languages in tab order.
var Languages = []Language{LanguageHTML, LanguageCSS, LanguageJS}

// ParseLanguage validates a language name coming from user input.
func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case LanguageHTML, LanguageCSS, LanguageJS:
		return Language(s), nil
	default:
		return "", fmt.Errorf("unknown language %q: must be one of html, css, js", s)
	}
}

// FileName is the conventional file name for lang inside a site directory.
func (l Language) FileName() string {
	switch l {
	case LanguageCSS:
		return "style.css"
	case LanguageJS:
		return "script.js"
	default:
		return "index.html"
	}
}

// Bundle is the output of one generation. HTML, CSS and JS always come from
// the same template definition.
type Bundle struct {
	Template Name   `json:"template"`
	HTML     string `json:"html"`
	CSS      string `json:"css"`
	JS       string `json:"js"`
}

// Source returns the blob for the given language.
func (b Bundle) Source(lang Language) string {
	switch lang {
	case LanguageCSS:
		return b.CSS
	case LanguageJS:
		return b.JS
	default:
		return b.HTML
	}
}
