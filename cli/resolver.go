package cli

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/ffins/log"
)

// resolveYAML returns a [kong.ConfigurationLoader] for YAML configuration
// files.
//
// Nested mappings are flattened by joining keys with "-", so both of these
// set --log-level:
//
//	log-level: debug
//
//	log:
//	  level: debug
//
// Keys may use underscores in place of hyphens. Scalars are passed to kong as
// strings; sequences become lists of strings.
//
// A file that does not parse is reported and ignored, leaving every flag at
// its default. Command-line flags override configuration values.
func resolveYAML(ctx context.Context) kong.ConfigurationLoader {
	return loader(ctx, "yaml", func(data []byte, doc *map[string]any) error {
		return yaml.UnmarshalContext(ctx, data, doc)
	})
}

// resolveTOML returns a [kong.ConfigurationLoader] for TOML configuration
// files. Tables are flattened like YAML mappings:
//
//	[log]
//	level = "debug"
func resolveTOML(ctx context.Context) kong.ConfigurationLoader {
	return loader(ctx, "toml", func(data []byte, doc *map[string]any) error {
		return toml.Unmarshal(data, doc)
	})
}

func loader(
	ctx context.Context,
	format string,
	decode func([]byte, *map[string]any) error,
) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		data, err := io.ReadAll(r)
		if err == nil {
			err = decode(data, &doc)
		}

		if err != nil {
			log.WarnContext(ctx, "ignoring configuration file",
				slog.String("format", format),
				slog.Any("error", err),
			)

			return config{}, nil
		}

		cfg := make(config)
		cfg.flatten("", doc)

		return cfg, nil
	}
}

// config implements [kong.Resolver] over a flattened YAML document.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if v, ok := c[flag.Name]; ok {
		return v, nil
	}

	return nil, nil
}

func (c config) flatten(prefix string, m map[string]any) {
	for k, v := range m {
		key := strings.ReplaceAll(k, "_", "-")
		if prefix != "" {
			key = prefix + "-" + key
		}

		switch v := v.(type) {
		case map[string]any:
			c.flatten(key, v)

		case []any:
			list := make([]any, 0, len(v))
			for _, e := range v {
				list = append(list, scalar(e))
			}

			c[key] = list

		case nil:

		default:
			c[key] = scalar(v)
		}
	}
}

// scalar renders a decoded YAML scalar the way it would be typed on the
// command line.
func scalar(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		b, err := yaml.Marshal(v)
		if err != nil {
			return ""
		}

		return strings.TrimSpace(string(b))
	}
}
