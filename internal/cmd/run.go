package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matthieukhl/expotrack/internal/server"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Expotrack API server",
	Long: `Start the Expotrack API server which provides:
- Orders and per-booth order summaries
- Booth checklists with completion progress
- A manual cache clear endpoint and Prometheus metrics`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	fmt.Println("🚀 Expotrack Starting...")

	fmt.Println("📝 Loading configuration...")
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Println("🔌 Connecting upstreams...")
	a, err := newApp(cfg, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Printf("✅ Sources ready (orders: %v, checklist: %v)\n",
		a.sources.Orders.Strategies(), a.sources.Checklist.Strategies())

	fmt.Println("⚙️  Setting up server...")
	gin.SetMode(cfg.Server.Mode)
	srv := server.NewServer(a.inventory, a.metrics, prometheus.DefaultGatherer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("🌐 Starting server on %s...\n", cfg.Server.Addr)
		errCh <- srv.Start(cfg.Server.Addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	fmt.Println("🛑 Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return <-errCh
}
