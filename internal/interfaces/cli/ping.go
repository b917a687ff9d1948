package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check connectivity to the NutriLens API server",
		Args:  cobra.NoArgs,
		RunE:  runPing,
	}

	return cmd
}

func runPing(cmd *cobra.Command, args []string) error {
	_, apiClient, err := requireClient(cmd)
	if err != nil {
		return err
	}

	result, err := apiClient.Ping(cmd.Context())
	if err != nil {
		return fmt.Errorf("server is not reachable: %w", err)
	}

	PrintSuccess(cmd, fmt.Sprintf("%s is up", result.App))
	return nil
}
