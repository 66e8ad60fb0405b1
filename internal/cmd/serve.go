package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/gantt-tools/gantt-go/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the browser editor",
	Long: `Serve the form editor: upload or paste data, map columns, add, remove
and edit activities, and download the chart or CSV.

Sessions live in memory and expire after server.session_ttl of inactivity.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: server.addr from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadValidConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Gantt.Server.Addr = serveAddr
	}

	if cfg.Gantt.Log.Level == "debug" || logLvl == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	srv, err := server.New(cfg)
	if err != nil {
		return NewExitError(2, err.Error())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Serving gantt editor on %s\n", cfg.Gantt.Server.Addr)
	return srv.Run(ctx)
}
