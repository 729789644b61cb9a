package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Formatter renders errors in a Rust-like style with source context and
// carets under the offending span.
type Formatter struct {
	// UseColor enables ANSI color codes in output.
	UseColor bool
}

// NewFormatter creates a new error formatter.
func NewFormatter(useColor bool) *Formatter {
	return &Formatter{UseColor: useColor}
}

func forcedColor(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

// Colors used for error formatting. They are forced on; whether they are
// applied at all is decided by Formatter.UseColor.
var (
	colorError     = forcedColor(color.FgRed)
	colorErrorBold = forcedColor(color.FgHiRed, color.Bold)
	colorWarning   = forcedColor(color.FgHiYellow, color.Bold)
	colorCode      = forcedColor(color.FgHiBlack)
	colorLocation  = forcedColor(color.FgCyan)
	colorGutter    = forcedColor(color.FgHiBlack)
	colorSource    = forcedColor(color.FgWhite)
	colorCaret     = forcedColor(color.FgHiRed)
	colorHint      = forcedColor(color.FgHiYellow)
	colorNote      = forcedColor(color.FgHiBlue)
)

// FormattedError represents an error ready for display.
type FormattedError struct {
	Code        ErrorCode
	Kind        string // "error", "syntax error", "warning", etc.
	Message     string
	Filename    string
	Line        int
	Column      int
	EndColumn   int               // For multi-character underlines
	SourceLines []SourceLineEntry // Multiple lines for context
	Hint        string            // "Did you mean?" suggestion
	Note        string            // Additional context
}

// SourceLineEntry represents a line of source code with its number.
type SourceLineEntry struct {
	Number int
	Text   string
	IsMain bool // True if this is the line with the error
}

func (f *Formatter) paint(c *color.Color, s string) string {
	if !f.UseColor {
		return s
	}
	return c.Sprint(s)
}

// Format formats the error as a string using a consistent Rust-like style.
func (f *Formatter) Format(err *FormattedError) string {
	return f.FormatWithPrefix(err, "")
}

// FormatWithPrefix formats the error with an optional prefix like "1/5".
func (f *Formatter) FormatWithPrefix(err *FormattedError, prefix string) string {
	var b strings.Builder

	width := 2
	if err.Line >= 100 {
		width = len(fmt.Sprint(err.Line))
	}

	f.writeHeader(&b, err, prefix)
	f.writeLocation(&b, err, width)
	f.writeSource(&b, err, width)
	if err.Hint != "" {
		f.writeTrailer(&b, colorHint, "hint: ", err.Hint, width, true)
	}
	if err.Note != "" {
		f.writeTrailer(&b, colorNote, "note: ", err.Note, width, false)
	}
	return b.String()
}

func (f *Formatter) writeHeader(b *strings.Builder, err *FormattedError, prefix string) {
	label := "error"
	if err.Kind != "" {
		label = err.Kind
	}
	labelColor := colorErrorBold
	if label == "warning" {
		labelColor = colorWarning
	}
	b.WriteString(f.paint(labelColor, label))

	// error[E1001] or error[1/5]
	if err.Code != "" {
		b.WriteString(f.paint(colorCode, fmt.Sprintf("[%s]", err.Code)))
	} else if prefix != "" {
		b.WriteString(f.paint(colorCode, fmt.Sprintf("[%s]", prefix)))
	}

	b.WriteString(f.paint(colorError, ": "))
	b.WriteString(err.Message)
	b.WriteString("\n")
}

func (f *Formatter) writeLocation(b *strings.Builder, err *FormattedError, width int) {
	if err.Line == 0 && err.Filename == "" {
		return
	}
	b.WriteString(strings.Repeat(" ", width))
	b.WriteString(f.paint(colorLocation, "-->"))
	b.WriteString(" ")

	loc := err.Filename
	if err.Line > 0 {
		if loc != "" {
			loc += ":"
		}
		loc += fmt.Sprintf("%d:%d", err.Line, err.Column)
	}
	b.WriteString(f.paint(colorLocation, loc))
	b.WriteString("\n")
}

func (f *Formatter) writeSource(b *strings.Builder, err *FormattedError, width int) {
	if len(err.SourceLines) == 0 {
		return
	}
	padding := strings.Repeat(" ", width)
	b.WriteString(padding)
	b.WriteString(f.paint(colorGutter, " |\n"))

	for _, line := range err.SourceLines {
		b.WriteString(f.paint(colorGutter, fmt.Sprintf("%*d", width, line.Number)))
		b.WriteString(f.paint(colorGutter, " | "))
		b.WriteString(f.paint(colorSource, line.Text))
		b.WriteString("\n")

		if !line.IsMain || err.Column <= 0 {
			continue
		}
		b.WriteString(padding)
		b.WriteString(f.paint(colorGutter, " | "))
		b.WriteString(strings.Repeat(" ", err.Column-1))
		n := 1
		if err.EndColumn > err.Column {
			n = err.EndColumn - err.Column + 1
		}
		b.WriteString(f.paint(colorCaret, strings.Repeat("^", n)))
		b.WriteString("\n")
	}
}

func (f *Formatter) writeTrailer(b *strings.Builder, c *color.Color, label, text string, width int, spaced bool) {
	padding := strings.Repeat(" ", width)
	if spaced {
		b.WriteString(padding)
		b.WriteString(f.paint(colorGutter, " |\n"))
	}
	b.WriteString(padding)
	b.WriteString(f.paint(colorGutter, " = "))
	b.WriteString(f.paint(c, label))
	b.WriteString(text)
	b.WriteString("\n")
}

// FormatMultiple formats multiple errors with consistent styling.
func (f *Formatter) FormatMultiple(errs []*FormattedError) string {
	switch len(errs) {
	case 0:
		return ""
	case 1:
		return f.Format(errs[0])
	}

	var b strings.Builder
	for i, err := range errs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(f.FormatWithPrefix(err, fmt.Sprintf("%d/%d", i+1, len(errs))))
	}
	b.WriteString("\n")
	b.WriteString(f.paint(colorErrorBold, fmt.Sprintf("found %d errors", len(errs))))
	b.WriteString("\n")
	return b.String()
}
