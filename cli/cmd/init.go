package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/ffins/log"
	"github.com/ardnew/ffins/profile"
)

// defaultConfigIndent is the YAML indent of a generated configuration file.
const defaultConfigIndent = 2

// unsavedFlags are flag name prefixes never written to a configuration file.
var unsavedFlags = []string{"help", "version", profile.Tag}

// Init writes the effective flag values to the configuration file.
type Init struct {
	Force bool `help:"Overwrite an existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) error {
	ktx := kongContextFrom(ctx)

	path := ktx.Model.Vars()[ConfigIdentifier]
	if path == "" {
		return ErrWriteConfig.With(slog.String("reason", "no configuration path"))
	}

	mode := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !i.Force {
		mode |= os.O_EXCL
	}

	file, err := os.OpenFile(path, mode, 0o644)

	switch {
	case errors.Is(err, fs.ErrExist):
		return ErrWriteConfig.With(slog.String("file", path)).Wrap(ErrFileExists)
	case err != nil:
		return ErrWriteConfig.With(slog.String("file", path)).Wrap(err)
	}

	doc := configDocument(ktx)

	err = write(ctx, file, doc, formatYAML, defaultConfigIndent)
	if cerr := file.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return ErrWriteConfig.With(slog.String("file", path)).Wrap(err)
	}

	log.DebugContext(ctx, "wrote configuration",
		slog.String("path", path),
		slog.Int("flags", len(doc)),
	)

	return nil
}

// configDocument returns the set flags of ktx in model order, keyed by flag
// name.
func configDocument(ktx *kong.Context) yaml.MapSlice {
	var doc yaml.MapSlice

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || unsaved(flag.Name) {
			continue
		}

		if v, ok := configValue(ktx.FlagValue(flag)); ok {
			doc = append(doc, yaml.MapItem{Key: flag.Name, Value: v})
		}
	}

	return doc
}

func unsaved(name string) bool {
	for _, prefix := range unsavedFlags {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}

	return false
}

// configValue reports the serializable form of a flag value and whether it
// carries anything worth saving.
func configValue(v any) (any, bool) {
	switch v := v.(type) {
	case nil:
		return nil, false
	case string:
		return v, v != ""
	case []string:
		return v, len(v) > 0
	case fmt.Stringer:
		s := v.String()

		return s, s != ""
	default:
		return v, true
	}
}
