package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and saves the result
// to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to mockweb! Let's configure the generator.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Server port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port for `mockweb serve`",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validateIntRange(1, 65535),
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 2. Progress pacing.
	pacePrompt := promptui.Select{
		Label: "Progress animation",
		Items: []string{
			"normal: 800ms per stage",
			"fast: 200ms per stage",
			"instant: no pauses",
		},
	}
	paceIdx, _, err := pacePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("progress selection: %w", err)
	}
	cfg.Progress.StepDelayMS = []int{800, 200, 0}[paceIdx]

	// 3. Session storage.
	dbPrompt := promptui.Prompt{
		Label:   "Session database path (leave blank to keep sessions in memory)",
		Default: "",
	}
	cfg.Data.DBPath, err = dbPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("database path: %w", err)
	}

	// 4. Log format.
	formatPrompt := promptui.Select{
		Label: "Log format",
		Items: []string{string(LogFormatConsole), string(LogFormatJSON)},
	}
	_, format, err := formatPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("log format: %w", err)
	}
	cfg.Log.Format = LogFormat(format)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// validateIntRange returns a promptui validator accepting integers in [lo, hi].
func validateIntRange(lo, hi int) promptui.ValidateFunc {
	return func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%q is not a number", s)
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}
