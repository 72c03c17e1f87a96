package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/graphsync/config"
	"github.com/teranos/graphsync/internal/devreload"
	"github.com/teranos/graphsync/server"
	"github.com/teranos/graphsync/session"
)

var serveDevMode bool

// ServeCmd starts the graphsyncd session server.
var ServeCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"server"},
	Short:   "Start the graph-editing session server",
	RunE:    runServe,
}

func init() {
	ServeCmd.Flags().BoolVar(&serveDevMode, "dev", false, "Run under the autoreload supervisor, restarting on source changes")
}

func runServe(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Root().PersistentFlags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if serveDevMode {
		// The child runs the same command without --dev, so it serves
		// instead of starting another supervisor.
		childArgs := make([]string, 0, len(os.Args))
		for _, arg := range os.Args {
			if arg != "--dev" && !strings.HasPrefix(arg, "--dev=") {
				childArgs = append(childArgs, arg)
			}
		}
		sup := devreload.NewSupervisor(childArgs, cfg.Dev.WatchPaths, time.Duration(cfg.Dev.DebounceMillis)*time.Millisecond)
		code := sup.Run(cmd.Context())
		if code != 0 {
			os.Exit(code)
		}
		return nil
	}

	return serveOnce(cmd.Context(), cfg)
}

func serveOnce(parent context.Context, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	srv := server.New(ctx, session.New())
	httpSrv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: srv.Mux(),
	}

	errCh := make(chan error, 1)
	go func() {
		pterm.Info.Printf("graphsyncd listening on %s\n", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-sigCh:
		pterm.Info.Println("shutting down gracefully...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		pterm.Success.Println("server stopped cleanly")
		return nil
	}
}
