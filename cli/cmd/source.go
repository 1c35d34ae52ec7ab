package cmd

import (
	"bytes"
	"context"
	"debug/elf"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/readahead"

	"github.com/ardnew/ffins/ffi"
	"github.com/ardnew/ffins/ffi/debuginfo"
	"github.com/ardnew/ffins/log"
	"github.com/ardnew/ffins/ns"
)

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// Loader reads sources and builds their namespace.
type Loader struct {
	// LibPath lists directories searched before the library path variable.
	LibPath []string
	// Name overrides the namespace name derived from the source.
	Name string
	// AllLanguages extracts items from non-Rust compile units too.
	AllLanguages bool
}

// Items reads the items of source.
func (l Loader) Items(ctx context.Context, source string) ([]ffi.Item, error) {
	logger := log.Default()

	data, path, err := l.read(ctx, source)
	if err != nil {
		return nil, err
	}

	opts := []debuginfo.Option{
		debuginfo.WithLogger(logger),
		debuginfo.WithAllLanguages(l.AllLanguages),
	}

	var items []ffi.Item

	switch {
	case data == nil:
		items, err = debuginfo.Open(ctx, path, opts...)

	case debuginfo.IsELF(bytes.NewReader(data)):
		var f *elf.File

		if f, err = elf.NewFile(bytes.NewReader(data)); err == nil {
			items, err = debuginfo.Load(ctx, f, opts...)
		} else {
			err = debuginfo.ErrNotELF.Wrap(err)
		}

	default:
		items, err = ffi.Decode(ctx, bytes.NewReader(data))
	}

	if err != nil {
		return nil, ErrLoad.Wrap(err).With(slog.String("source", source))
	}

	logger.DebugContext(ctx, "source loaded",
		slog.String("source", source),
		slog.String("path", path),
		slog.Int("items", len(items)),
	)

	return items, nil
}

// Load reads the items of source and builds their namespace.
func (l Loader) Load(ctx context.Context, source string) (*ns.Root, []ffi.Item, error) {
	items, err := l.Items(ctx, source)
	if err != nil {
		return nil, nil, err
	}

	root, err := ffi.Build(ctx, items,
		ns.WithName(l.name(source)),
		ns.WithLogger(log.Default()),
	)
	if err != nil {
		return nil, nil, err
	}

	return root, items, nil
}

// read returns the content of source, or only its path when source is an ELF
// file that is better opened in place.
func (l Loader) read(ctx context.Context, source string) ([]byte, string, error) {
	if source == stdinSource || source == "" {
		data, err := readAll(stdinFrom(ctx))

		return data, stdinSource, err
	}

	path := source
	if _, err := os.Stat(path); err != nil {
		if path, err = debuginfo.Locate(source, debuginfo.SearchPath(l.LibPath...)); err != nil {
			return nil, source, err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, path, ErrLoad.Wrap(err)
	}
	defer f.Close()

	if debuginfo.IsELF(f) {
		return nil, path, nil
	}

	data, err := readAll(f)

	return data, path, err
}

// readAll reads r to the end, prefetching ahead of the consumer.
func readAll(r io.Reader) ([]byte, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrLoad.Wrap(err)
	}

	return data, nil
}

// name returns the namespace name for source: the configured name, or the
// source's base name without "lib" prefix and extensions.
func (l Loader) name(source string) string {
	if l.Name != "" || source == stdinSource || source == "" {
		return l.Name
	}

	base := filepath.Base(source)
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}

	if s, ok := strings.CutPrefix(base, "lib"); ok && s != "" {
		base = s
	}

	return base
}
