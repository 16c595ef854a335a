// Package classify maps a free-text site description to a template, a theme
// label and a service bucket using case-insensitive keyword rules.
package classify

import (
	"strings"

	"github.com/ziadkadry99/mockweb/internal/templates"
)

// Result is the outcome of classifying one description. The three fields
// are chosen independently.
type Result struct {
	Template templates.Name `json:"template"`
	Theme    string         `json:"theme"`
	Bucket   ServiceBucket  `json:"service_bucket"`
}

// Classify is total: any input, including the empty string, yields a
// result, and the same text always yields the same result.
func Classify(text string) Result {
	theme := Theme(text)
	return Result{
		Template: Template(text),
		Theme:    theme,
		Bucket:   BucketForTheme(theme),
	}
}

// Template picks the template for text. Minimal is checked before creative;
// modern is the fallback.
func Template(text string) templates.Name {
	return firstMatch(strings.ToLower(text), templateRules, templates.Modern)
}

// Theme picks the theme label for text.
func Theme(text string) string {
	return firstMatch(strings.ToLower(text), themeRules, DefaultTheme)
}

// BucketForTheme picks the service bucket by scanning the theme label, not
// the raw description.
func BucketForTheme(theme string) ServiceBucket {
	kind := firstMatch(theme, bucketRules, BucketDefault)
	return buckets[kind]
}

type rule[T any] struct {
	keywords []string
	value    T
}

func firstMatch[T any](s string, rules []rule[T], fallback T) T {
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(s, kw) {
				return r.value
			}
		}
	}
	return fallback
}
