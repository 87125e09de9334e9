package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dqscore/dqscore/internal/scoring"
	"github.com/dqscore/dqscore/internal/server"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scoring engine over HTTP",
	Long: `Start an HTTP API exposing the scoring engine:

  POST /api/v1/scores   score raw rows
  POST /api/v1/dqs      fold dimension scores into a composite
  GET  /api/v1/healthz  liveness
  GET  /metrics         Prometheus metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srvCfg := cfg.Server
		if serveHost != "" {
			srvCfg.Host = serveHost
		}
		if servePort != 0 {
			srvCfg.Port = servePort
		}

		srv := server.New(srvCfg, scoring.NewEngine(), cfg.EngineWeights())
		return srv.Run(context.Background())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (default from config)")
}
