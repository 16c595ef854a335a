package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/mockweb/internal/classify"
	"github.com/ziadkadry99/mockweb/internal/generator"
	"github.com/ziadkadry99/mockweb/internal/notify"
	"github.com/ziadkadry99/mockweb/internal/preview"
	"github.com/ziadkadry99/mockweb/internal/progress"
	"github.com/ziadkadry99/mockweb/internal/templates"
)

// previewFileName is the self-contained document written next to the sources.
const previewFileName = "preview.html"

var generateCmd = &cobra.Command{
	Use:   "generate [description...]",
	Short: "Generate a website from a description",
	Long: `Classifies the description, fills the matching template and writes
index.html, style.css, script.js and a self-contained preview.html to the
output directory. Without arguments the description is asked for interactively.`,
	Example: `  mockweb generate "Página para mi empresa de consultoría"
  mockweb generate --lang css "Portfolio creativo"
  mockweb generate --explain --no-delay "Tienda online minimalista"`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringP("output", "o", "site", "directory to write the generated files to")
	generateCmd.Flags().String("lang", "", "print only this file (html, css or js) to stdout instead of writing files")
	generateCmd.Flags().Bool("explain", false, "print the chosen template, theme and services")
	generateCmd.Flags().Bool("no-delay", false, "skip the pauses between progress stages")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("output")
	langFlag, _ := cmd.Flags().GetString("lang")
	explain, _ := cmd.Flags().GetBool("explain")
	noDelay, _ := cmd.Flags().GetBool("no-delay")

	var only templates.Language
	if langFlag != "" {
		if only, err = templates.ParseLanguage(langFlag); err != nil {
			return err
		}
	}

	description := strings.Join(args, " ")
	if strings.TrimSpace(description) == "" {
		description, err = promptDescription()
		if err != nil {
			return err
		}
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	stepDelay := cfg.StepDelay()
	if noDelay {
		stepDelay = 0
	}
	newGen, err := newGeneratorFactory(cfg, log, generator.RealClock{}, stepDelay)
	if err != nil {
		return err
	}

	if explain {
		printClassification(classify.Classify(description))
	}

	// Set up progress reporting.
	reporter := progress.NewReporter()

	b, err := newGen().Generate(ctx, description, reporter)
	if err != nil {
		n := notify.FromError(err)
		return fmt.Errorf("%s: %w", n.Message, err)
	}

	if only != "" {
		fmt.Print(b.Source(only))
		return nil
	}

	if err := writeSite(outDir, b); err != nil {
		return err
	}

	n := notify.Success()
	fmt.Printf("\n%s\n", n.Message)
	fmt.Printf("  Template:  %s\n", b.Template)
	fmt.Printf("  Output:    %s\n", outDir)
	fmt.Printf("  Preview:   %s\n", filepath.Join(outDir, previewFileName))
	fmt.Printf("  Duration:  %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// promptDescription asks for the website description interactively.
func promptDescription() (string, error) {
	prompt := promptui.Prompt{
		Label: "Describe el sitio web que necesitas",
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New(notify.EmptyInput().Message)
			}
			return nil
		},
	}
	description, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("description: %w", err)
	}
	return description, nil
}

// writeSite writes the bundle's three sources and the combined preview
// document into dir.
func writeSite(dir string, b *templates.Bundle) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	for _, lang := range templates.Languages {
		path := filepath.Join(dir, lang.FileName())
		if err := os.WriteFile(path, []byte(b.Source(lang)), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	path := filepath.Join(dir, previewFileName)
	if err := os.WriteFile(path, []byte(preview.Document(*b)), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func printClassification(r classify.Result) {
	fmt.Println("Classification:")
	fmt.Printf("  Template:  %s\n", r.Template)
	fmt.Printf("  Theme:     %s\n", r.Theme)
	names := make([]string, len(r.Bucket.Services))
	for i, svc := range r.Bucket.Services {
		names[i] = svc.Name
	}
	fmt.Printf("  Services:  %s (%s)\n", strings.Join(names, ", "), r.Bucket.Kind)
	fmt.Println()
}
