package cmd

import (
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/mockweb/internal/config"
	"github.com/ziadkadry99/mockweb/internal/generator"
	"github.com/ziadkadry99/mockweb/internal/logging"
	"github.com/ziadkadry99/mockweb/internal/session"
	"github.com/ziadkadry99/mockweb/internal/synth"
	"github.com/ziadkadry99/mockweb/internal/templates"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `mockweb init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the logger for cfg; --verbose forces debug level.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	log, err := logging.New(level, string(cfg.Log.Format))
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return log, nil
}

// newSynthesizer honours random_seed; zero keeps phrase choice random.
func newSynthesizer(cfg *config.Config) *synth.Synthesizer {
	if cfg.RandomSeed != 0 {
		return synth.NewSeeded(cfg.RandomSeed)
	}
	return synth.New(nil)
}

// newGeneratorFactory returns a factory sharing one template store and
// synthesizer across all generators it builds.
func newGeneratorFactory(cfg *config.Config, log *zap.Logger, clock generator.Clock, stepDelay time.Duration) (session.GeneratorFactory, error) {
	store, err := templates.NewStore()
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}
	sy := newSynthesizer(cfg)
	return func() *generator.Generator {
		return generator.New(generator.Options{
			Store:     store,
			Synth:     sy,
			Clock:     clock,
			StepDelay: stepDelay,
			Logger:    log,
		})
	}, nil
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
