// Package synth derives the title, description and service-card markup that
// fill a template skeleton.
package synth

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/ziadkadry99/mockweb/internal/templates"
)

const (
	titleMaxWords  = 5
	titleKeepWords = 3
	titleMaxRunes  = 20
	ellipsis       = "..."
)

// Rand is the random source used for phrase selection. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

var phrasePools = map[templates.Name][]string{
	templates.Modern:   {"innovadora solución", "experiencia digital", "plataforma moderna"},
	templates.Minimal:  {"enfoque minimalista", "diseño limpio", "simplicidad elegante"},
	templates.Creative: {"visión creativa", "expresión artística", "diseño único"},
}

// Synthesizer produces the text that fills a template.
type Synthesizer struct {
	rnd Rand
}

// New returns a Synthesizer drawing phrases from rnd. A nil rnd uses the
// process-wide generator.
func New(rnd Rand) *Synthesizer {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &Synthesizer{rnd: rnd}
}

// NewSeeded returns a Synthesizer with a deterministic, goroutine-safe source.
func NewSeeded(seed uint64) *Synthesizer {
	return New(&lockedRand{r: rand.New(rand.NewPCG(seed, seed))})
}

// DeriveTitle shortens text into a page title.
func DeriveTitle(text string) string {
	words := strings.Fields(text)
	if len(words) > titleMaxWords {
		return strings.Join(words[:titleKeepWords], " ") + ellipsis
	}
	if r := []rune(text); len(r) > titleMaxRunes {
		return string(r[:titleMaxRunes]) + ellipsis
	}
	return text
}

// DeriveDescription builds the hero sentence for the given template. The
// phrase is picked at random, so identical input can yield different copy.
func (s *Synthesizer) DeriveDescription(text string, name templates.Name) string {
	pool, ok := phrasePools[name]
	if !ok {
		pool = phrasePools[templates.Modern]
	}
	phrase := pool[s.rnd.IntN(len(pool))]
	return fmt.Sprintf("Una %s para %s.", phrase, strings.ToLower(text))
}

// Phrases returns the phrase pool for a template.
func Phrases(name templates.Name) []string {
	return append([]string(nil), phrasePools[name]...)
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}
