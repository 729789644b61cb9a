package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/nocap-js/nocap"
	nerrors "github.com/nocap-js/nocap/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newCheckCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Report slang that would be left untouched",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			var sources []*source
			if len(args) == 0 {
				src, err := getSource(cmd, nil)
				if err != nil {
					return err
				}
				sources = append(sources, src)
			}
			var errs *multierror.Error
			for _, path := range args {
				src, err := readSource(path)
				if err != nil {
					errs = multierror.Append(errs, err)
					continue
				}
				sources = append(sources, src)
			}

			friendly, _ := cmd.Flags().GetBool("friendly")
			found := 0
			for _, src := range sources {
				diags, err := nocap.Check(ctx, src.code, getNocapOptions(v, src.name(), cmd.ErrOrStderr())...)
				if err != nil {
					errs = multierror.Append(errs, fmt.Errorf("%s: %w", src.name(), err))
					continue
				}
				found += len(diags)
				printDiagnostics(cmd.OutOrStdout(), diags, friendly)
			}

			if err := errs.ErrorOrNil(); err != nil {
				errs.ErrorFormat = listErrors
				printError(cmd.ErrOrStderr(), err)
			}
			if found > 0 || errs.ErrorOrNil() != nil {
				return &exitError{code: 1}
			}
			return nil
		},
	}
	cmd.Flags().StringP("code", "c", "", "code to check")
	cmd.Flags().Bool("stdin", false, "read code from stdin")
	cmd.Flags().Bool("friendly", false, "show source context for each finding")
	return cmd
}

func printDiagnostics(w io.Writer, diags []*nerrors.Diagnostic, friendly bool) {
	if !friendly {
		for _, d := range diags {
			fmt.Fprintln(w, d.Error())
		}
		return
	}
	formatted := make([]*nerrors.FormattedError, len(diags))
	for i, d := range diags {
		formatted[i] = d.ToFormatted()
	}
	fmt.Fprint(w, nerrors.NewFormatter(useColor(w)).FormatMultiple(formatted))
}

// listErrors renders one error per line.
func listErrors(errs []error) string {
	lines := make([]string, len(errs))
	for i, err := range errs {
		lines[i] = err.Error()
	}
	return strings.Join(lines, "\n")
}
