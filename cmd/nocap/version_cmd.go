package main

import (
	"encoding/json"
	"fmt"

	"github.com/nocap-js/nocap"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			if output == "json" {
				b, err := json.Marshal(map[string]string{
					"version": version,
					"library": nocap.Version,
					"commit":  commit,
					"date":    date,
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "nocap %s (library %s, commit %s, built %s)\n",
				version, nocap.Version, commit, date)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "text", "output format (json or text)")
	return cmd
}
