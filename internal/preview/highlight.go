package preview

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"

	"github.com/ziadkadry99/mockweb/internal/templates"
)

var highlighter = goldmark.New(
	goldmark.WithExtensions(
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
		),
	),
)

// chroma lexer names for each bundle language.
var lexers = map[templates.Language]string{
	templates.LanguageHTML: "html",
	templates.LanguageCSS:  "css",
	templates.LanguageJS:   "javascript",
}

// Highlight renders code as syntax-highlighted HTML.
func Highlight(lang templates.Language, code string) (string, error) {
	lexer, ok := lexers[lang]
	if !ok {
		return "", fmt.Errorf("no highlighter for language %q", lang)
	}

	fence := codeFence(code)
	src := fence + lexer + "\n" + code + "\n" + fence + "\n"

	var buf bytes.Buffer
	if err := highlighter.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("highlighting %s: %w", lang, err)
	}
	return buf.String(), nil
}

// codeFence returns a backtick fence longer than any backtick run in code.
func codeFence(code string) string {
	longest, run := 0, 0
	for _, r := range code {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	if longest < 3 {
		return "```"
	}
	return strings.Repeat("`", longest+1)
}
