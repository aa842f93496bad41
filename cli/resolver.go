package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// load is a [kong.ConfigurationLoader] that parses YAML configuration files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(load, "/path/to/config.yaml")
//
// Top-level keys set application flags. Flags of a command are set by a map
// under the command name, and fall back to top-level keys of the same name.
// Flag names with hyphens (e.g., "log-level") may also use underscores
// (e.g., "log_level").
//
// Example config file:
//
//	log-level: debug
//	log_pretty: false
//	roll:
//	  format: json
//	  repeat: 2
//
// This configuration will be applied to Kong flags:
//
//	--log-level=debug
//	--log-pretty=false
//	roll --format=json --repeat=2
//
// Command-line flags override config file values. An empty file is an empty
// configuration.
func load(r io.Reader) (kong.Resolver, error) {
	conf := config{}

	err := yaml.NewDecoder(r).Decode(&conf)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return conf, nil
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	parent *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if parent != nil && parent.Command != nil {
		if sub, ok := r[parent.Command.Name].(map[string]any); ok {
			if value, ok := config(sub).lookup(flag.Name); ok {
				return value, nil
			}
		}
	}

	// Not found - nil lets Kong use defaults
	value, _ := r.lookup(flag.Name)

	return value, nil
}

// lookup returns the value of the key name, or its underscore variant.
func (r config) lookup(name string) (any, bool) {
	for _, key := range []string{name, strings.ReplaceAll(name, "-", "_")} {
		if value, ok := r[key]; ok && value != nil {
			if _, nested := value.(map[string]any); nested {
				return nil, false
			}

			return normalize(value), true
		}
	}

	return nil, false
}

// normalize converts numbers to the strings Kong parses flag values from.
func normalize(value any) any {
	switch v := value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int, int32, uint, uint32:
		return fmt.Sprint(v)
	case []any:
		list := make([]any, len(v))
		for i, e := range v {
			list[i] = normalize(e)
		}

		return list
	default:
		return v
	}
}
