package main

import (
	"github.com/spf13/cobra"

	"github.com/pkordes/lunchmap/internal/console"
	"github.com/pkordes/lunchmap/internal/service"
)

func newSessionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Start an interactive map session",
		Long: `Starts a line-oriented session that stands in for the map: "select <n>"
clicks a marker, "click <lat> <lng>" clicks the map, "add" toggles add mode.
Type "help" inside the session for all commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			coord := service.NewCoordinator(a.client, a.logger)
			return console.New(coord, cmd.InOrStdin(), cmd.OutOrStdout(), a.logger).Run(cmd.Context())
		},
	}
}
