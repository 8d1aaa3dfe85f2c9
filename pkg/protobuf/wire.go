// Package protobuf implements an incremental decoder and an append-style
// encoder for the protobuf wire format. The decoder walks a buffer one
// field at a time and hands each field to a caller-supplied handler, which
// reads the values it cares about; everything else is skipped.
package protobuf

import "errors"

// WireType identifies how a field's value is laid out on the wire.
type WireType uint32

const (
	WireVarint    WireType = 0
	WireFixed64   WireType = 1
	WireDelimited WireType = 2
	WireFixed32   WireType = 5
)

// MaxFieldNumber is the largest field number the tag encoding can carry.
const MaxFieldNumber = 1<<29 - 1

var (
	ErrTruncated     = errors.New("protobuf: buffer truncated")
	ErrFieldNumber   = errors.New("protobuf: invalid field number")
	ErrWireType      = errors.New("protobuf: unexpected wire type")
	ErrFieldMismatch = errors.New("protobuf: read of a field other than the current one")
	ErrConsumed      = errors.New("protobuf: field value already consumed")
	ErrOverflow      = errors.New("protobuf: value does not fit the requested type")
)

func validWireType(w WireType) bool {
	switch w {
	case WireVarint, WireFixed64, WireDelimited, WireFixed32:
		return true
	default:
		// Groups (3 and 4) are long gone from the format.
		return false
	}
}

func makeTag(fieldNumber uint32, wire WireType) uint64 {
	return uint64(fieldNumber)<<3 | uint64(wire)
}

func splitTag(tag uint64) (uint32, WireType) {
	return uint32(tag >> 3), WireType(tag & 0x7)
}
