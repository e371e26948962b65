package main

import (
	"fmt"
	"github.com/spf13/cobra"
	"tmiclient/internal/app/infrastructure/config"
)

var clientName string

var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "Edit the channels a configured client joins",
}

var channelsAddCmd = &cobra.Command{
	Use:   "add <channel>...",
	Short: "Add channels to a client",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editChannels(cmd, args, (*config.Manager).AddChannels)
	},
}

var channelsRemoveCmd = &cobra.Command{
	Use:   "remove <channel>...",
	Short: "Remove channels from a client",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editChannels(cmd, args, (*config.Manager).RemoveChannels)
	},
}

func editChannels(cmd *cobra.Command, args []string, edit func(*config.Manager, string, ...string) error) error {
	m, err := config.New(configPath)
	if err != nil {
		return err
	}
	if err := edit(m, clientName, args...); err != nil {
		return err
	}

	for _, c := range m.Get().Clients {
		if c.Name == clientName {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", c.Name, c.Channels)
		}
	}
	return nil
}

func init() {
	channelsCmd.PersistentFlags().StringVar(&clientName, "client", "default", "Name of the client entry to edit")
	channelsCmd.AddCommand(channelsAddCmd, channelsRemoveCmd)
	rootCmd.AddCommand(channelsCmd)
}
