package main

import (
	"fmt"

	"github.com/nocap-js/nocap"
	"github.com/spf13/cobra"
)

func newDocsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "docs [topic]",
		Aliases: []string{"doc"},
		Short:   "Show documentation for slang constructs",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []nocap.DocsOption
			category, _ := cmd.Flags().GetString("category")
			all, _ := cmd.Flags().GetBool("all")
			switch {
			case all:
				opts = append(opts, nocap.DocsAll())
			case category != "":
				opts = append(opts, nocap.DocsCategory(category))
			case len(args) > 0:
				opts = append(opts, nocap.DocsTopic(args[0]))
			}
			out, err := marshalJSON(cmd.OutOrStdout(), nocap.Docs(opts...).Data())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().String("category", "", "rules, aliases or errors")
	cmd.Flags().Bool("all", false, "show everything")
	return cmd
}
