package commands

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fatih/color"
	"github.com/simbuah/go-api-http-client/httpclient"
	"github.com/spf13/cobra"
)

// GetCommand prints the raw response of any API path
func GetCommand(opts *globalOptions) *cobra.Command {
	var params []string

	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "GET an API path and print the response body",
		Example: color.HiBlackString(`  # List fruits
  simbuah get /master/buah

  # Sales report for May
  simbuah get /laporan/penjualan -q start_date=2024-05-01 -q end_date=2024-05-31`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := parseParams(params)
			if err != nil {
				return err
			}

			svc, closeStore, err := opts.newService(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeStore()
			resp, err := svc.Client().Get(cmd.Context(), args[0], &httpclient.RequestOptions{Query: query})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err := out.Write(resp.Body); err != nil {
				return err
			}
			if len(resp.Body) > 0 && resp.Body[len(resp.Body)-1] != '\n' {
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&params, "query", "q", nil, "query parameter as key=value, repeatable")
	return cmd
}

func parseParams(params []string) (url.Values, error) {
	if len(params) == 0 {
		return nil, nil
	}
	query := url.Values{}
	for _, param := range params {
		key, value, ok := strings.Cut(param, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid query parameter %q, expected key=value", param)
		}
		query.Add(key, value)
	}
	return query, nil
}
