package protobuf

import (
	"encoding/binary"
	"math"

	"github.com/FangnanWei/pigweed/pkg/varint"
)

// Encoder builds an encoded message field by field. The buffer grows as
// needed and is reused across Reset, mirroring the decoder's allocation-free
// stance. The zero value is ready to use.
type Encoder struct {
	buf []byte
}

// Bytes returns the encoded message. The slice aliases the encoder's
// internal buffer and is invalidated by further writes or Reset.
func (e *Encoder) Bytes() []byte { return e.buf }

// Reset discards the encoded message, keeping the buffer capacity.
func (e *Encoder) Reset() { e.buf = e.buf[:0] }

func (e *Encoder) writeTag(fieldNumber uint32, wire WireType) error {
	if fieldNumber == 0 || fieldNumber > MaxFieldNumber {
		return ErrFieldNumber
	}
	e.buf = varint.Append(e.buf, makeTag(fieldNumber, wire))
	return nil
}

// WriteUint64 appends a varint field.
func (e *Encoder) WriteUint64(fieldNumber uint32, v uint64) error {
	if err := e.writeTag(fieldNumber, WireVarint); err != nil {
		return err
	}
	e.buf = varint.Append(e.buf, v)
	return nil
}

// WriteUint32 appends a varint field.
func (e *Encoder) WriteUint32(fieldNumber uint32, v uint32) error {
	return e.WriteUint64(fieldNumber, uint64(v))
}

// WriteInt64 appends a two's-complement varint field.
func (e *Encoder) WriteInt64(fieldNumber uint32, v int64) error {
	return e.WriteUint64(fieldNumber, uint64(v))
}

// WriteInt32 appends a two's-complement varint field; negative values take
// the full ten wire bytes, as the format requires.
func (e *Encoder) WriteInt32(fieldNumber uint32, v int32) error {
	return e.WriteInt64(fieldNumber, int64(v))
}

// WriteSint64 appends a zigzag-encoded varint field.
func (e *Encoder) WriteSint64(fieldNumber uint32, v int64) error {
	return e.WriteUint64(fieldNumber, varint.ZigZagEncode(v))
}

// WriteSint32 appends a zigzag-encoded varint field.
func (e *Encoder) WriteSint32(fieldNumber uint32, v int32) error {
	return e.WriteSint64(fieldNumber, int64(v))
}

// WriteBool appends a bool field.
func (e *Encoder) WriteBool(fieldNumber uint32, v bool) error {
	var u uint64
	if v {
		u = 1
	}
	return e.WriteUint64(fieldNumber, u)
}

// WriteFixed64 appends a little-endian fixed64 field.
func (e *Encoder) WriteFixed64(fieldNumber uint32, v uint64) error {
	if err := e.writeTag(fieldNumber, WireFixed64); err != nil {
		return err
	}
	e.buf = binary.LittleEndian.AppendUint64(e.buf, v)
	return nil
}

// WriteFixed32 appends a little-endian fixed32 field.
func (e *Encoder) WriteFixed32(fieldNumber uint32, v uint32) error {
	if err := e.writeTag(fieldNumber, WireFixed32); err != nil {
		return err
	}
	e.buf = binary.LittleEndian.AppendUint32(e.buf, v)
	return nil
}

// WriteSfixed64 appends a signed fixed64 field.
func (e *Encoder) WriteSfixed64(fieldNumber uint32, v int64) error {
	return e.WriteFixed64(fieldNumber, uint64(v))
}

// WriteSfixed32 appends a signed fixed32 field.
func (e *Encoder) WriteSfixed32(fieldNumber uint32, v int32) error {
	return e.WriteFixed32(fieldNumber, uint32(v))
}

// WriteDouble appends a float64 field.
func (e *Encoder) WriteDouble(fieldNumber uint32, v float64) error {
	return e.WriteFixed64(fieldNumber, math.Float64bits(v))
}

// WriteFloat appends a float32 field.
func (e *Encoder) WriteFloat(fieldNumber uint32, v float32) error {
	return e.WriteFixed32(fieldNumber, math.Float32bits(v))
}

// WriteBytes appends a length-delimited field.
func (e *Encoder) WriteBytes(fieldNumber uint32, v []byte) error {
	if err := e.writeTag(fieldNumber, WireDelimited); err != nil {
		return err
	}
	e.buf = varint.Append(e.buf, uint64(len(v)))
	e.buf = append(e.buf, v...)
	return nil
}

// WriteString appends a length-delimited field.
func (e *Encoder) WriteString(fieldNumber uint32, v string) error {
	if err := e.writeTag(fieldNumber, WireDelimited); err != nil {
		return err
	}
	e.buf = varint.Append(e.buf, uint64(len(v)))
	e.buf = append(e.buf, v...)
	return nil
}
