package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"
	nerrors "github.com/nocap-js/nocap/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

var red = color.New(color.FgRed).SprintFunc()

// printError writes err to w. Errors that carry source context are rendered
// with the diagnostic formatter.
func printError(w io.Writer, err error) {
	if fe, ok := err.(nerrors.FormattableError); ok {
		fmt.Fprint(w, nerrors.NewFormatter(useColor(w)).Format(fe.ToFormatted()))
		return
	}
	if multi, ok := err.(interface {
		ToFormattedMultiple() []*nerrors.FormattedError
	}); ok {
		fmt.Fprint(w, nerrors.NewFormatter(useColor(w)).FormatMultiple(multi.ToFormattedMultiple()))
		return
	}
	msg := err.Error()
	if useColor(w) {
		msg = red(msg)
	}
	fmt.Fprintln(w, msg)
}

// useColor reports whether output to w should be colorized.
func useColor(w io.Writer) bool {
	if color.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// marshalJSON renders value as indented JSON, colorized when w is a
// terminal.
func marshalJSON(w io.Writer, value any) ([]byte, error) {
	if useColor(w) {
		return prettyjson.Marshal(value)
	}
	return json.MarshalIndent(value, "", "  ")
}

// newLogger returns a console logger on w at debug level.
func newLogger(w io.Writer, v *viper.Viper) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    v.GetBool("no-color") || !useColor(w),
		PartsOrder: []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
	}
	return zerolog.New(out).Level(zerolog.DebugLevel)
}

// Reads global flags from Viper and adjusts the environment accordingly.
func processGlobalFlags(v *viper.Viper) {
	if v.GetBool("no-color") {
		color.NoColor = true
	}
}
