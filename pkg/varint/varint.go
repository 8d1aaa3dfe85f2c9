// Package varint implements base-128 variable-length integers and the
// zigzag mapping used for signed fields on the wire.
package varint

import "math/bits"

// MaxLen64 is the longest valid encoding of a uint64.
const MaxLen64 = 10

// Append appends x to dst in LEB128 form and returns the extended slice.
func Append(dst []byte, x uint64) []byte {
	for x >= 0x80 {
		dst = append(dst, byte(x)|0x80)
		x >>= 7
	}
	return append(dst, byte(x))
}

// Decode reads a varint from the front of b, returning the value and the
// number of bytes consumed. n == 0 means b is truncated, overlong, or the
// value would not fit in 64 bits.
func Decode(b []byte) (x uint64, n int) {
	var s uint
	for i, c := range b {
		if i == MaxLen64 {
			return 0, 0
		}
		if c < 0x80 {
			// The tenth byte carries only the top bit of a uint64.
			if i == MaxLen64-1 && c > 1 {
				return 0, 0
			}
			return x | uint64(c)<<s, i + 1
		}
		x |= uint64(c&0x7F) << s
		s += 7
	}
	return 0, 0
}

// AppendInt appends a signed value using the plain two's-complement carry:
// negative numbers always occupy MaxLen64 bytes, matching protobuf int32 and
// int64 fields.
func AppendInt(dst []byte, x int64) []byte {
	return Append(dst, uint64(x))
}

// DecodeInt reads a varint written by AppendInt.
func DecodeInt(b []byte) (int64, int) {
	u, n := Decode(b)
	return int64(u), n
}

// ZigZagEncode maps signed values onto unsigned ones so small magnitudes of
// either sign stay short: 0→0, -1→1, 1→2, -2→3.
func ZigZagEncode(x int64) uint64 {
	return uint64(x<<1) ^ uint64(x>>63)
}

// ZigZagDecode inverts ZigZagEncode.
func ZigZagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// AppendZigZag appends x zigzag-encoded.
func AppendZigZag(dst []byte, x int64) []byte {
	return Append(dst, ZigZagEncode(x))
}

// DecodeZigZag reads a varint and undoes the zigzag mapping.
func DecodeZigZag(b []byte) (int64, int) {
	u, n := Decode(b)
	return ZigZagDecode(u), n
}

// EncodedLen reports how many bytes Append will write for x.
func EncodedLen(x uint64) int {
	return (bits.Len64(x|1) + 6) / 7
}
