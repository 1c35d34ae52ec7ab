package debuginfo

import (
	"context"
	"debug/dwarf"
	"debug/elf"
	"errors"
	"io"
	"log/slog"

	"github.com/ardnew/ffins/ffi"
	"github.com/ardnew/ffins/ns"
)

// IsELF reports whether r begins with the ELF magic number.
func IsELF(r io.ReaderAt) bool {
	var magic [len(elf.ELFMAG)]byte

	n, _ := r.ReadAt(magic[:], 0)

	return n == len(magic) && string(magic[:]) == elf.ELFMAG
}

// Open reads the items of the ELF object at path.
func Open(ctx context.Context, path string, opts ...Option) ([]ffi.Item, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, ErrNotELF.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	items, err := Load(ctx, f, opts...)
	if err != nil {
		var e *ns.Error
		if errors.As(err, &e) {
			return nil, e.With(slog.String("path", path))
		}

		return nil, err
	}

	return items, nil
}

// Load reads the items of an opened ELF object.
func Load(ctx context.Context, f *elf.File, opts ...Option) ([]ffi.Item, error) {
	d, err := f.DWARF()
	if err != nil {
		return nil, ErrNoDebugInfo.Wrap(err)
	}

	return Items(ctx, d, opts...)
}

// Items walks the compile units of d and returns their items in the order
// their entries appear.
func Items(ctx context.Context, d *dwarf.Data, opts ...Option) ([]ffi.Item, error) {
	return walk(ctx, d.Reader(), makeConfig(opts...))
}
