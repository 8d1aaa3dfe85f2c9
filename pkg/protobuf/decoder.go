package protobuf

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/FangnanWei/pigweed/pkg/varint"
)

// Handler receives one callback per field during Decoder.Decode. The handler
// may consume the field's value through the decoder's typed reads; fields it
// leaves untouched are skipped. Returning a non-nil error aborts the decode.
type Handler interface {
	ProcessField(d *Decoder, fieldNumber uint32) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(d *Decoder, fieldNumber uint32) error

func (f HandlerFunc) ProcessField(d *Decoder, fieldNumber uint32) error {
	return f(d, fieldNumber)
}

// Decoder is an incremental cursor over an encoded message. It holds no
// copy of the input: typed reads parse directly out of the caller's buffer.
// The zero value is ready for SetHandler plus Decode; use NewDecoder to
// drive Next and the typed reads by hand.
type Decoder struct {
	data     []byte
	handler  Handler
	field    uint32
	wire     WireType
	entry    bool // positioned on a field
	consumed bool // current field's value already read
}

func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// SetHandler installs the callback invoked for every field by Decode.
func (d *Decoder) SetHandler(h Handler) { d.handler = h }

// Decode walks every field in data, invoking the handler for each. Unknown
// or unconsumed fields are skipped. Decoding stops at the first malformed
// field or the first handler error.
func (d *Decoder) Decode(data []byte) error {
	d.data = data
	d.entry = false
	d.consumed = false
	for {
		switch err := d.Next(); err {
		case nil:
		case io.EOF:
			return nil
		default:
			return err
		}
		if d.handler == nil {
			continue
		}
		if err := d.handler.ProcessField(d, d.field); err != nil {
			return err
		}
	}
}

// Next advances to the next field tag, skipping the current field's value if
// no typed read consumed it. It returns io.EOF at a clean end of buffer.
func (d *Decoder) Next() error {
	if d.entry && !d.consumed {
		if err := d.skipValue(); err != nil {
			return err
		}
	}
	d.entry = false
	d.consumed = false
	if len(d.data) == 0 {
		return io.EOF
	}
	tag, n := varint.Decode(d.data)
	if n == 0 {
		return ErrTruncated
	}
	num, wire := splitTag(tag)
	if tag>>3 == 0 || tag>>3 > MaxFieldNumber {
		return ErrFieldNumber
	}
	if !validWireType(wire) {
		return ErrWireType
	}
	d.data = d.data[n:]
	d.field = num
	d.wire = wire
	d.entry = true
	return nil
}

// FieldNumber returns the field number of the entry Next last stopped on.
func (d *Decoder) FieldNumber() (uint32, error) {
	if !d.entry {
		return 0, ErrFieldNumber
	}
	return d.field, nil
}

// WireType returns the wire type of the current entry.
func (d *Decoder) WireType() (WireType, error) {
	if !d.entry {
		return 0, ErrFieldNumber
	}
	return d.wire, nil
}

func (d *Decoder) skipValue() error {
	switch d.wire {
	case WireVarint:
		_, n := varint.Decode(d.data)
		if n == 0 {
			return ErrTruncated
		}
		d.data = d.data[n:]
	case WireFixed64:
		if len(d.data) < 8 {
			return ErrTruncated
		}
		d.data = d.data[8:]
	case WireFixed32:
		if len(d.data) < 4 {
			return ErrTruncated
		}
		d.data = d.data[4:]
	case WireDelimited:
		size, n := varint.Decode(d.data)
		if n == 0 || uint64(len(d.data)-n) < size {
			return ErrTruncated
		}
		d.data = d.data[n+int(size):]
	}
	return nil
}

// checkEntry validates that a typed read targets the current, unread field.
func (d *Decoder) checkEntry(fieldNumber uint32, want WireType) error {
	if !d.entry {
		return ErrFieldNumber
	}
	if d.consumed {
		return ErrConsumed
	}
	if fieldNumber != d.field {
		return ErrFieldMismatch
	}
	if d.wire != want {
		return ErrWireType
	}
	return nil
}

func (d *Decoder) readVarint(fieldNumber uint32) (uint64, error) {
	if err := d.checkEntry(fieldNumber, WireVarint); err != nil {
		return 0, err
	}
	v, n := varint.Decode(d.data)
	if n == 0 {
		return 0, ErrTruncated
	}
	d.data = d.data[n:]
	d.consumed = true
	return v, nil
}

// ReadUint64 reads the current field as a uint64 varint.
func (d *Decoder) ReadUint64(fieldNumber uint32) (uint64, error) {
	return d.readVarint(fieldNumber)
}

// ReadUint32 reads the current field as a uint32, rejecting wider values.
func (d *Decoder) ReadUint32(fieldNumber uint32) (uint32, error) {
	v, err := d.readVarint(fieldNumber)
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 {
		return 0, ErrOverflow
	}
	return uint32(v), nil
}

// ReadInt64 reads the current field as a two's-complement int64.
func (d *Decoder) ReadInt64(fieldNumber uint32) (int64, error) {
	v, err := d.readVarint(fieldNumber)
	return int64(v), err
}

// ReadInt32 reads the current field as an int32. Negative values arrive
// sign-extended to ten wire bytes; anything outside int32 range is rejected.
func (d *Decoder) ReadInt32(fieldNumber uint32) (int32, error) {
	v, err := d.ReadInt64(fieldNumber)
	if err != nil {
		return 0, err
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, ErrOverflow
	}
	return int32(v), nil
}

// ReadSint64 reads the current field as a zigzag-encoded int64.
func (d *Decoder) ReadSint64(fieldNumber uint32) (int64, error) {
	v, err := d.readVarint(fieldNumber)
	return varint.ZigZagDecode(v), err
}

// ReadSint32 reads the current field as a zigzag-encoded int32.
func (d *Decoder) ReadSint32(fieldNumber uint32) (int32, error) {
	v, err := d.ReadSint64(fieldNumber)
	if err != nil {
		return 0, err
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, ErrOverflow
	}
	return int32(v), nil
}

// ReadBool reads the current field as a bool.
func (d *Decoder) ReadBool(fieldNumber uint32) (bool, error) {
	v, err := d.readVarint(fieldNumber)
	return v != 0, err
}

// ReadFixed64 reads the current field as a little-endian fixed64.
func (d *Decoder) ReadFixed64(fieldNumber uint32) (uint64, error) {
	if err := d.checkEntry(fieldNumber, WireFixed64); err != nil {
		return 0, err
	}
	if len(d.data) < 8 {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint64(d.data)
	d.data = d.data[8:]
	d.consumed = true
	return v, nil
}

// ReadFixed32 reads the current field as a little-endian fixed32.
func (d *Decoder) ReadFixed32(fieldNumber uint32) (uint32, error) {
	if err := d.checkEntry(fieldNumber, WireFixed32); err != nil {
		return 0, err
	}
	if len(d.data) < 4 {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint32(d.data)
	d.data = d.data[4:]
	d.consumed = true
	return v, nil
}

// ReadSfixed64 reads the current field as a signed fixed64.
func (d *Decoder) ReadSfixed64(fieldNumber uint32) (int64, error) {
	v, err := d.ReadFixed64(fieldNumber)
	return int64(v), err
}

// ReadSfixed32 reads the current field as a signed fixed32.
func (d *Decoder) ReadSfixed32(fieldNumber uint32) (int32, error) {
	v, err := d.ReadFixed32(fieldNumber)
	return int32(v), err
}

// ReadDouble reads the current field as a float64.
func (d *Decoder) ReadDouble(fieldNumber uint32) (float64, error) {
	v, err := d.ReadFixed64(fieldNumber)
	return math.Float64frombits(v), err
}

// ReadFloat reads the current field as a float32.
func (d *Decoder) ReadFloat(fieldNumber uint32) (float32, error) {
	v, err := d.ReadFixed32(fieldNumber)
	return math.Float32frombits(v), err
}

// ReadBytes reads the current length-delimited field. The returned slice
// aliases the input buffer and is valid only as long as it is.
func (d *Decoder) ReadBytes(fieldNumber uint32) ([]byte, error) {
	if err := d.checkEntry(fieldNumber, WireDelimited); err != nil {
		return nil, err
	}
	size, n := varint.Decode(d.data)
	if n == 0 || uint64(len(d.data)-n) < size {
		return nil, ErrTruncated
	}
	v := d.data[n : n+int(size) : n+int(size)]
	d.data = d.data[n+int(size):]
	d.consumed = true
	return v, nil
}

// ReadString reads the current length-delimited field as a string.
func (d *Decoder) ReadString(fieldNumber uint32) (string, error) {
	b, err := d.ReadBytes(fieldNumber)
	return string(b), err
}
