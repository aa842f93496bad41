package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/critfail/log"
	"github.com/ardnew/critfail/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	confPath := variable(ctx, ConfigIdentifier)
	if confPath == "" {
		panic("internal error: config path undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	data, err := yaml.MarshalContext(ctx, i.buildConfig(ctx),
		yaml.Indent(defaultConfigIndent))
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(ErrYAMLMarshal.Wrap(err))
	}

	err = os.MkdirAll(filepath.Dir(confPath), 0o700)
	if err == nil {
		err = os.WriteFile(confPath, data, 0o600)
	}

	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	_, err = fmt.Fprintln(stdout(ctx), confPath)

	return err
}

// buildConfig maps flag names to values. Application flags take their current
// value; flags of each command are nested under the command name and take
// their default value.
func (i *Init) buildConfig(ctx context.Context) map[string]any {
	ktx := kongContextFrom(ctx)
	conf := make(map[string]any)

	for _, flag := range ktx.Model.Flags {
		if ignoreFlag(flag) {
			continue
		}

		if val := configValue(ktx.FlagValue(flag)); val != nil {
			conf[flag.Name] = val
		}
	}

	for _, child := range ktx.Model.Children {
		if child.Type != kong.CommandNode || child.Hidden {
			continue
		}

		sub := make(map[string]any)

		for _, flag := range child.Flags {
			if ignoreFlag(flag) {
				continue
			}

			if val := defaultValue(flag.Default); val != nil {
				sub[flag.Name] = val
			}
		}

		if len(sub) > 0 {
			conf[child.Name] = sub
		}
	}

	return conf
}

// ignoreFlag reports whether flag is left out of the configuration file.
func ignoreFlag(flag *kong.Flag) bool {
	if flag.Hidden {
		return true
	}

	for _, prefix := range []string{"help", "version", profile.Tag} {
		if strings.HasPrefix(flag.Name, prefix) {
			return true
		}
	}

	return false
}

// configValue returns the configuration file value of a flag, or nil if
// the flag is unset.
func configValue(val any) any {
	switch v := val.(type) {
	case nil:
		return nil

	case bool:
		return v

	case string:
		if v == "" {
			return nil
		}

		return v

	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return v

	case float32, float64:
		return v

	case []string:
		if len(v) == 0 {
			return nil
		}

		return v

	case *uint64:
		if v == nil {
			return nil
		}

		return *v

	case fmt.Stringer:
		return configValue(v.String())

	default:
		return configValue(fmt.Sprint(v))
	}
}

// defaultValue converts the text of a default tag to a typed value.
func defaultValue(text string) any {
	if text == "" {
		return nil
	}

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n
	}

	if b, err := strconv.ParseBool(text); err == nil {
		return b
	}

	return text
}
