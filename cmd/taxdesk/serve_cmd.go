package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quarterdeck/taxdesk/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the rule-based toolkit over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := server.NewServer(cfg, logger)
		router := srv.SetupRouter()

		addr := fmt.Sprintf(":%d", servePort)
		logger.Info("starting HTTP server", zap.String("addr", addr))
		return router.Run(addr)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "listen port")
}
