// Package generator runs the site generation pipeline: classify the
// description, resolve the template, synthesize copy and assemble the bundle.
package generator

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/mockweb/internal/classify"
	"github.com/ziadkadry99/mockweb/internal/progress"
	"github.com/ziadkadry99/mockweb/internal/synth"
	"github.com/ziadkadry99/mockweb/internal/templates"
)

// DefaultStepDelay is the pause before each progress stage.
const DefaultStepDelay = 800 * time.Millisecond

// Stage is one observable step of a generation.
type Stage struct {
	Percent int    `json:"percent"`
	Label   string `json:"label"`
}

// Stages are reported in this order, each after one step delay.
var Stages = []Stage{
	{Percent: 20, Label: "Analizando descripción..."},
	{Percent: 40, Label: "Generando estructura HTML..."},
	{Percent: 60, Label: "Creando estilos CSS..."},
	{Percent: 80, Label: "Añadiendo interactividad..."},
	{Percent: 100, Label: "Optimizando código..."},
}

// Options configures a Generator.
type Options struct {
	Store     *templates.Store
	Synth     *synth.Synthesizer
	Clock     Clock
	StepDelay time.Duration
	Logger    *zap.Logger
}

// Generator turns descriptions into bundles. At most one generation runs at
// a time per Generator.
type Generator struct {
	store     *templates.Store
	synth     *synth.Synthesizer
	clock     Clock
	stepDelay time.Duration
	log       *zap.Logger

	running atomic.Bool
}

// New creates a Generator. Nil fields in opts get production defaults
// except StepDelay, where zero means no pause.
func New(opts Options) *Generator {
	g := &Generator{
		store:     opts.Store,
		synth:     opts.Synth,
		clock:     opts.Clock,
		stepDelay: opts.StepDelay,
		log:       opts.Logger,
	}
	if g.store == nil {
		g.store = templates.MustNewStore()
	}
	if g.synth == nil {
		g.synth = synth.New(nil)
	}
	if g.clock == nil {
		g.clock = RealClock{}
	}
	if g.log == nil {
		g.log = zap.NewNop()
	}
	return g
}

// Running reports whether a generation is in flight.
func (g *Generator) Running() bool { return g.running.Load() }

// Generate produces a bundle for text. It returns ErrEmptyInput for blank
// text. If another generation is already in flight the call is ignored and
// returns a nil bundle and nil error. Any other failure is a *GenerationError.
func (g *Generator) Generate(ctx context.Context, text string, rep progress.Reporter) (*templates.Bundle, error) {
	return g.GenerateAndCommit(ctx, text, rep, nil)
}

// CommitFunc stores a finished bundle. It runs while the in-flight guard is
// still held, so commits never interleave.
type CommitFunc func(*templates.Bundle) error

// GenerateAndCommit is Generate with commit called on success before the
// guard is released. A commit error is returned as a *GenerationError.
func (g *Generator) GenerateAndCommit(ctx context.Context, text string, rep progress.Reporter, commit CommitFunc) (*templates.Bundle, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}
	if !g.running.CompareAndSwap(false, true) {
		g.log.Debug("generation already in flight, ignoring request")
		return nil, nil
	}
	defer g.running.Store(false)

	if rep == nil {
		rep = progress.Nop
	}
	rep.Start(100)
	defer rep.Finish()

	start := time.Now()
	b, err := g.run(ctx, text, rep)
	if err == nil && commit != nil {
		if cerr := commit(b); cerr != nil {
			b, err = nil, &GenerationError{Err: cerr}
		}
	}
	if err != nil {
		g.log.Warn("generation failed", zap.Error(err))
		return nil, err
	}
	g.log.Info("website generated",
		zap.String("template", string(b.Template)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return b, nil
}

func (g *Generator) run(ctx context.Context, text string, rep progress.Reporter) (b *templates.Bundle, err error) {
	defer func() {
		if r := recover(); r != nil {
			b = nil
			err = &GenerationError{Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	step := 0
	advance := func() error {
		if err := g.clock.Sleep(ctx, g.stepDelay); err != nil {
			return &GenerationError{Err: err}
		}
		s := Stages[step]
		rep.Update(s.Percent, s.Label)
		step++
		return nil
	}

	result := classify.Classify(text)
	if err := advance(); err != nil {
		return nil, err
	}

	def := g.store.Get(result.Template)
	content := templates.Content{
		Title:       synth.DeriveTitle(text),
		Theme:       result.Theme,
		Description: g.synth.DeriveDescription(text, def.Name),
		Services:    synth.ServiceCards(result.Theme, result.Bucket),
	}
	html := def.BuildHTML(content)
	if err := advance(); err != nil {
		return nil, err
	}

	css := def.CSS()
	if err := advance(); err != nil {
		return nil, err
	}

	js := def.JS()
	if err := advance(); err != nil {
		return nil, err
	}

	bundle := &templates.Bundle{Template: def.Name, HTML: html, CSS: css, JS: js}
	if err := advance(); err != nil {
		return nil, err
	}

	g.log.Debug("classified description",
		zap.String("template", string(result.Template)),
		zap.String("theme", result.Theme),
		zap.String("bucket", string(result.Bucket.Kind)),
	)
	return bundle, nil
}
