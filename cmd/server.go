package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agroconsult/painel/internal/config"
	"github.com/agroconsult/painel/internal/db"
	"github.com/agroconsult/painel/internal/events"
	"github.com/agroconsult/painel/internal/nav"
	"github.com/agroconsult/painel/internal/overlay"
	"github.com/agroconsult/painel/internal/powerbi"
	"github.com/agroconsult/painel/internal/prefs"
	"github.com/agroconsult/painel/internal/server"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the navigation and link configuration API server",
	Long:  `Starts the painel server: per-sector navigation resolution, sidebar overlay management, Power BI link bindings and the change notification stream.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if serverPort != 0 {
			cfg.Port = serverPort
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		// Open database.
		dbPath := filepath.Join(cfg.DataDir, "painel.db")
		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		// Local preferences (last known sector).
		prefStore, err := prefs.NewFileStore(filepath.Join(cfg.DataDir, "prefs.json"))
		if err != nil {
			return fmt.Errorf("opening preferences: %w", err)
		}

		// Change notification bus shared by all mutators and views.
		bus := events.NewBus()

		overlayStore := overlay.NewStore(database, bus)
		linkStore := powerbi.NewStore(database, bus, cfg.Links)
		resolver := nav.NewResolver(overlayStore, cfg.DefaultSector)

		// Create server and register all feature routes.
		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAllOrigins,
		})

		overlay.RegisterRoutes(srv.Router(), overlayStore)
		powerbi.RegisterRoutes(srv.Router(), linkStore)
		nav.RegisterRoutes(srv.Router(), resolver, prefStore)
		events.RegisterRoutes(srv.Router(), bus)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "painel server v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", dbPath)

		return srv.Start()
	},
}

func init() {
	serverCmd.Flags().IntVarP(&serverPort, "port", "p", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serverCmd)
}
