package commands

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DashboardCommand prints the dashboard for the signed-in role
func DashboardCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard for the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeStore, err := opts.newService(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeStore()
			dashboard, err := svc.Dashboard(cmd.Context())
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(dashboard)
		},
	}
}
