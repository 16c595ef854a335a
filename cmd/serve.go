package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/mockweb/internal/db"
	"github.com/ziadkadry99/mockweb/internal/generator"
	"github.com/ziadkadry99/mockweb/internal/server"
	"github.com/ziadkadry99/mockweb/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI with live preview",
	Long:  `Starts the mockweb HTTP server: the generator UI, its JSON API, isolated previews and the progress WebSocket.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "port to listen on (overrides config)")
	serveCmd.Flags().Bool("open", false, "open the UI in the default browser")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port, _ = cmd.Flags().GetInt("port")
	}
	open, _ := cmd.Flags().GetBool("open")

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	database, err := db.Open(cfg.Data.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	newGen, err := newGeneratorFactory(cfg, log, generator.RealClock{}, cfg.StepDelay())
	if err != nil {
		return err
	}
	sessions := session.NewManager(session.NewStore(database), newGen, log)

	srv := server.New(server.Config{
		Port:     cfg.Server.Port,
		AllowAll: cfg.Server.AllowAllOrigins,
	}, sessions, log)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if ttl := cfg.SessionTTL(); ttl > 0 {
		go sessions.RunJanitor(ctx, ttl, min(ttl, time.Minute))
	}

	go func() {
		<-ctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("shutdown", zap.Error(err))
		}
	}()

	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	dbDesc := database.Path()
	if dbDesc == ":memory:" {
		dbDesc = "in-memory"
	}
	fmt.Fprintf(os.Stderr, "mockweb %s serving at %s\n", Version, url)
	fmt.Fprintf(os.Stderr, "  Sessions: %s\n", dbDesc)
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to stop.")

	if open {
		go openBrowser(url)
	}

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
