package main

import (
	"context"
	"fmt"
	"github.com/spf13/cobra"
	"os"
	"os/signal"
	"syscall"
	"tmiclient/internal/pkg/app"
)

var (
	configPath string
	envPath    string
)

var rootCmd = &cobra.Command{
	Use:   "tmiclient",
	Short: "Twitch chat client running one bot per configured account",
	Long: `tmiclient connects to Twitch chat over websocket, joins the configured
channels and answers commands, cheers and subscription notices.

Credentials are read from the config file or from TMI_CLIENT_USERNAME and
TMI_CLIENT_PASSWORD (a .env file next to the binary is loaded first).`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return app.Run(ctx, app.Options{ConfigPath: configPath, EnvPath: envPath})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.json", "Path to the JSON config (written with defaults when missing)")
	rootCmd.PersistentFlags().StringVar(&envPath, "env", ".env", "Path to an optional .env file")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
