package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/critfail/pkg"
)

// Output formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// formatEnum lists the output formats.
const formatEnum = formatText + "," + formatJSON + "," + formatYAML

// outputIndent is the indent width of structured output.
const outputIndent = 2

// encode writes v to w in the structured format named by format.
func encode(ctx context.Context, w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", strings.Repeat(" ", outputIndent))
		if err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		_, err = fmt.Fprintln(w, string(data))

		return err

	case formatYAML:
		data, err := yaml.MarshalContext(ctx, v, yaml.Indent(outputIndent))
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		_, err = fmt.Fprint(w, string(data))

		return err

	default:
		return pkg.ErrInvalidFormat.Wrap(
			fmt.Errorf("%q (want one of %s)", format, formatEnum),
		)
	}
}

// logFormat returns the attribute recording the output format of a command.
func logFormat(format string) slog.Attr { return slog.String("format", format) }
