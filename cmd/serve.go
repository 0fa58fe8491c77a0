package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/reviewlens/internal/server"
)

var (
	srvLoad loadFlags
	srvAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve <file>",
	Short: "Serve summary, insights and attributes of a dataset over HTTP",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := analysisOptions()
		if err != nil {
			return err
		}
		ds, err := loadDataset(args[0], &srvLoad)
		if err != nil {
			return err
		}
		c := currentConfig()
		addr := c.HTTPAddr
		if srvAddr != "" {
			addr = srvAddr
		}
		s := server.New(ds, server.Config{
			Addr:           addr,
			RequestTimeout: time.Duration(c.RequestTimeoutSec) * time.Second,
			RateLimitRPS:   c.RateLimitRPS,
			RateLimitBurst: c.RateLimitBurst,
			Options:        opt,
		}, log.Logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return s.ListenAndServe(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	srvLoad.register(serveCmd.Flags())
	serveCmd.Flags().StringVar(&srvAddr, "addr", "", "listen address (overrides config http_addr)")
}
