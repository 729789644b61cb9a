package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/nocap-js/nocap"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const usage = "Usage: nocap <file>"

// errUsage is returned when no input is given.
var errUsage = errors.New(usage)

func newRootCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:           "nocap <file>",
		Short:         "Rewrite slang JavaScript into standard JavaScript",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(v); err != nil {
				return err
			}
			processGlobalFlags(v)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRewrite(cmd, args, v)
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "config file (default .nocap.yaml in the working or home directory)")
	pf.Bool("no-color", false, "disable colored output")
	pf.BoolP("verbose", "v", false, "log every slang decision to stderr")
	pf.String("catch-param", "", "catch binding used when a vibeCheck callback has no parameter")
	pf.String("loop-var", "", "loop variable used when a spinBack callback has no parameter")

	f := cmd.Flags()
	f.StringP("code", "c", "", "code to rewrite")
	f.Bool("stdin", false, "read code from stdin")
	f.BoolP("write", "w", false, "write the result back to the source file")
	f.StringP("out", "o", "", "write the result to this file")
	f.Bool("watch", false, "rewrite again whenever the source file changes")

	_ = v.BindPFlags(pf)

	cmd.AddCommand(
		newASTCmd(v),
		newCheckCmd(v),
		newDocsCmd(),
		newVersionCmd(),
	)
	return cmd
}

// initConfig loads the config file and environment into v. Flags set on
// the command line take precedence over both.
func initConfig(v *viper.Viper) error {
	v.SetEnvPrefix("NOCAP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return err
		}
		v.SetConfigFile(expanded)
	} else {
		v.SetConfigName(".nocap")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func runRewrite(cmd *cobra.Command, args []string, v *viper.Viper) error {
	src, err := getSource(cmd, args)
	if err != nil {
		return err
	}
	if watching, _ := cmd.Flags().GetBool("watch"); watching {
		if src.path == "" {
			return errors.New("--watch requires a file argument")
		}
		// Writing the source would trigger the watcher again
		if write, _ := cmd.Flags().GetBool("write"); write {
			return errors.New("--watch cannot be combined with --write")
		}
		return watch(cmd.Context(), src.path, func() error {
			next, err := readSource(src.path)
			if err != nil {
				return err
			}
			return rewriteOnce(cmd, next, v)
		}, cmd.ErrOrStderr())
	}
	return rewriteOnce(cmd, src, v)
}

func rewriteOnce(cmd *cobra.Command, src *source, v *viper.Viper) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	opts := getNocapOptions(v, src.name(), cmd.ErrOrStderr())
	out, err := nocap.Transform(ctx, src.code, opts...)
	if err != nil {
		return err
	}
	return writeOutput(cmd, src, out)
}

func writeOutput(cmd *cobra.Command, src *source, out string) error {
	outPath, _ := cmd.Flags().GetString("out")
	write, _ := cmd.Flags().GetBool("write")
	switch {
	case outPath != "":
		path, err := homedir.Expand(outPath)
		if err != nil {
			return err
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		return writeIfChanged(path, out)
	case write:
		if src.path == "" {
			return errors.New("--write requires a file argument")
		}
		return writeIfChanged(src.path, out)
	}
	_, err := io.WriteString(cmd.OutOrStdout(), out)
	return err
}

// writeIfChanged writes out to path unless the file already holds it.
func writeIfChanged(path, out string) error {
	if current, err := os.ReadFile(path); err == nil && string(current) == out {
		return nil
	}
	return os.WriteFile(path, []byte(out), 0o644)
}
