package main

import (
	"errors"
	"io"
	"os"

	"github.com/nocap-js/nocap"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// source is the code to process and where it came from.
type source struct {
	code string
	path string // empty for --code and --stdin
}

func (s *source) name() string {
	if s.path == "" {
		return "<stdin>"
	}
	return s.path
}

func readSource(path string) (*source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &source{code: string(data), path: path}, nil
}

// getSource determines the code to process. There are three possibilities:
// 1. --code <code>
// 2. --stdin (read code from stdin)
// 3. path as args[0]
func getSource(cmd *cobra.Command, args []string) (*source, error) {
	var codeFlagSet, stdinFlagSet bool
	if f := cmd.Flags().Lookup("code"); f != nil && f.Changed {
		codeFlagSet = true
	}
	if f := cmd.Flags().Lookup("stdin"); f != nil && f.Changed {
		stdinFlagSet = true
	}
	pathSupplied := len(args) > 0
	// Error if multiple input sources are specified
	if pathSupplied && (codeFlagSet || stdinFlagSet) {
		return nil, errors.New("multiple input sources specified")
	} else if codeFlagSet && stdinFlagSet {
		return nil, errors.New("multiple input sources specified")
	}
	switch {
	case stdinFlagSet:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		return &source{code: string(data)}, nil
	case pathSupplied:
		return readSource(args[0])
	case codeFlagSet:
		code, _ := cmd.Flags().GetString("code")
		return &source{code: code}, nil
	}
	return nil, errUsage
}

// getNocapOptions builds library options from flags, environment and the
// config file.
func getNocapOptions(v *viper.Viper, filename string, stderr io.Writer) []nocap.Option {
	opts := []nocap.Option{
		nocap.WithFilename(filename),
		nocap.WithCatchParam(v.GetString("catch-param")),
		nocap.WithLoopVar(v.GetString("loop-var")),
	}
	if v.GetBool("verbose") {
		opts = append(opts, nocap.WithLogger(newLogger(stderr, v)))
	}
	return opts
}
