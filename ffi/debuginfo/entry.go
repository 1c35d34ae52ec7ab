package debuginfo

import (
	"debug/dwarf"
	"errors"
	"fmt"

	"github.com/ardnew/ffins/ffi"
)

// Source languages (DW_LANG_*).
const langRust = 0x1c

// Base type encodings (DW_ATE_*).
const (
	ateBoolean      = 0x02
	ateFloat        = 0x04
	ateSigned       = 0x05
	ateSignedChar   = 0x06
	ateUnsigned     = 0x07
	ateUnsignedChar = 0x08
	ateUTF          = 0x10
)

var encodings = map[int64]ffi.Encoding{
	ateBoolean:      ffi.EncodingBool,
	ateFloat:        ffi.EncodingFloat,
	ateSigned:       ffi.EncodingSignedInt,
	ateSignedChar:   ffi.EncodingChar,
	ateUnsigned:     ffi.EncodingUnsignedInt,
	ateUnsignedChar: ffi.EncodingChar,
	ateUTF:          ffi.EncodingChar,
}

var errSkip = errors.New("skip")

func missing(attr dwarf.Attr) error {
	return fmt.Errorf("missing or invalid %v", attr)
}

func str(e *dwarf.Entry, attr dwarf.Attr) (string, bool) {
	s, ok := e.Val(attr).(string)

	return s, ok
}

func udata(e *dwarf.Entry, attr dwarf.Attr) (uint64, bool) {
	n, ok := e.Val(attr).(int64)
	if !ok || n < 0 {
		return 0, false
	}

	return uint64(n), true
}

func ref(e *dwarf.Entry, attr dwarf.Attr) (uint64, bool) {
	off, ok := e.Val(attr).(dwarf.Offset)

	return uint64(off), ok
}

func module(path []string) []string {
	m := make([]string, len(path))
	copy(m, path)

	return m
}

// function decodes a subprogram. Subprograms that are not external, or whose
// demangled name belongs to a language runtime, return errSkip.
func function(e *dwarf.Entry, path []string) (ffi.Item, error) {
	it := ffi.Item{
		Offset: uint64(e.Offset),
		Kind:   ffi.KindFunction,
		Module: module(path),
	}

	if ext, ok := e.Val(dwarf.AttrExternal).(bool); ok && !ext {
		return it, errSkip
	}

	it.Name, _ = str(e, dwarf.AttrName)

	linkage, ok := str(e, dwarf.AttrLinkageName)
	if !ok {
		return it, missing(dwarf.AttrLinkageName)
	}

	full := Demangle(linkage)
	if IsRuntime(full) {
		return it, errSkip
	}

	it.LinkageName = linkage
	it.FullName = full

	if e.Val(dwarf.AttrType) != nil {
		ret, ok := ref(e, dwarf.AttrType)
		if !ok {
			return it, missing(dwarf.AttrType)
		}

		it.Return = &ret
	}

	return it, nil
}

func argument(e *dwarf.Entry) (ffi.Argument, error) {
	var (
		a  ffi.Argument
		ok bool
	)

	if a.Name, ok = str(e, dwarf.AttrName); !ok {
		return a, missing(dwarf.AttrName)
	}

	if a.Type, ok = ref(e, dwarf.AttrType); !ok {
		return a, missing(dwarf.AttrType)
	}

	return a, nil
}

func baseType(e *dwarf.Entry, path []string) (ffi.Item, error) {
	it := ffi.Item{
		Offset: uint64(e.Offset),
		Kind:   ffi.KindBaseType,
		Module: module(path),
	}

	var ok bool

	if it.Name, ok = str(e, dwarf.AttrName); !ok {
		return it, missing(dwarf.AttrName)
	}

	if it.Size, ok = udata(e, dwarf.AttrByteSize); !ok {
		return it, missing(dwarf.AttrByteSize)
	}

	switch {
	case it.Name == "!" && it.Size == 0:
		it.Encoding = ffi.EncodingNever
	case it.Name == "()" && it.Size == 0:
		it.Encoding = ffi.EncodingUnit
	default:
		enc, ok := e.Val(dwarf.AttrEncoding).(int64)
		if !ok {
			return it, missing(dwarf.AttrEncoding)
		}

		if it.Encoding, ok = encodings[enc]; !ok {
			return it, fmt.Errorf("unsupported %v 0x%x", dwarf.AttrEncoding, enc)
		}
	}

	return it, nil
}

func pointerType(e *dwarf.Entry, path []string) (ffi.Item, error) {
	it := ffi.Item{
		Offset: uint64(e.Offset),
		Kind:   ffi.KindPointerType,
		Module: module(path),
	}

	var ok bool

	if it.Name, ok = str(e, dwarf.AttrName); !ok {
		return it, missing(dwarf.AttrName)
	}

	target, ok := ref(e, dwarf.AttrType)
	if !ok {
		return it, missing(dwarf.AttrType)
	}

	it.Type = &target

	return it, nil
}

func structure(e *dwarf.Entry, path []string) (ffi.Item, error) {
	it := ffi.Item{
		Offset: uint64(e.Offset),
		Kind:   ffi.KindStructure,
		Module: module(path),
	}

	var ok bool

	if it.Name, ok = str(e, dwarf.AttrName); !ok {
		return it, missing(dwarf.AttrName)
	}

	if it.Size, ok = udata(e, dwarf.AttrByteSize); !ok {
		return it, missing(dwarf.AttrByteSize)
	}

	if it.Alignment, ok = udata(e, dwarf.AttrAlignment); !ok {
		return it, missing(dwarf.AttrAlignment)
	}

	return it, nil
}

func member(e *dwarf.Entry) (ffi.Member, error) {
	var (
		m  ffi.Member
		ok bool
	)

	if m.Name, ok = str(e, dwarf.AttrName); !ok {
		return m, missing(dwarf.AttrName)
	}

	if m.Type, ok = ref(e, dwarf.AttrType); !ok {
		return m, missing(dwarf.AttrType)
	}

	if m.Offset, ok = udata(e, dwarf.AttrDataMemberLoc); !ok {
		return m, missing(dwarf.AttrDataMemberLoc)
	}

	if m.Alignment, ok = udata(e, dwarf.AttrAlignment); !ok {
		return m, missing(dwarf.AttrAlignment)
	}

	return m, nil
}
