package varint

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestAppendDecodeRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 0x7F, 0x80, 0x2A, 300, 1<<32 - 1, 1 << 35, 1<<64 - 1}
	for _, x := range cases {
		buf := Append(nil, x)
		require.Equal(t, EncodedLen(x), len(buf), "value %d", x)
		got, n := Decode(buf)
		require.Equal(t, len(buf), n, "value %d", x)
		require.Equal(t, x, got)
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	// Truncated: continuation bit set on the last byte.
	_, n := Decode([]byte{0x80})
	require.Zero(t, n)
	_, n = Decode(nil)
	require.Zero(t, n)
	// Eleven bytes is past the longest uint64 encoding.
	overlong := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	_, n = Decode(overlong)
	require.Zero(t, n)
	// Tenth byte overflowing 64 bits.
	overflow := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x02}
	_, n = Decode(overflow)
	require.Zero(t, n)
}

func TestZigZagKnownValues(t *testing.T) {
	pairs := []struct {
		signed   int64
		unsigned uint64
	}{
		{0, 0}, {-1, 1}, {1, 2}, {-2, 3}, {2, 4},
		{-13, 25}, {2147483647, 4294967294}, {-2147483648, 4294967295},
	}
	for _, p := range pairs {
		assert.Equal(t, p.unsigned, ZigZagEncode(p.signed))
		assert.Equal(t, p.signed, ZigZagDecode(p.unsigned))
	}
}

func TestQuickRoundTrip(t *testing.T) {
	unsignedRT := func(x uint64) bool {
		got, n := Decode(Append(nil, x))
		return n > 0 && got == x
	}
	require.NoError(t, quick.Check(unsignedRT, nil))

	signedRT := func(x int64) bool {
		got, n := DecodeInt(AppendInt(nil, x))
		return n > 0 && got == x
	}
	require.NoError(t, quick.Check(signedRT, nil))

	zigzagRT := func(x int64) bool {
		got, n := DecodeZigZag(AppendZigZag(nil, x))
		return n > 0 && got == x
	}
	require.NoError(t, quick.Check(zigzagRT, nil))
}

func TestMatchesProtowire(t *testing.T) {
	encodeMatch := func(x uint64) bool {
		return string(Append(nil, x)) == string(protowire.AppendVarint(nil, x))
	}
	require.NoError(t, quick.Check(encodeMatch, nil))

	zigzagMatch := func(x int64) bool {
		return ZigZagEncode(x) == protowire.EncodeZigZag(x) &&
			ZigZagDecode(protowire.EncodeZigZag(x)) == protowire.DecodeZigZag(protowire.EncodeZigZag(x))
	}
	require.NoError(t, quick.Check(zigzagMatch, nil))
}

func FuzzDecodeAgreesWithProtowire(f *testing.F) {
	f.Add([]byte{0x2A})
	f.Add([]byte{0x80, 0x01})
	f.Add([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01})
	f.Add([]byte{0x80})
	f.Fuzz(func(t *testing.T, data []byte) {
		got, n := Decode(data)
		ref, rn := protowire.ConsumeVarint(data)
		if n == 0 {
			require.Negative(t, rn, "we rejected %x, protowire accepted", data)
			return
		}
		require.Equal(t, rn, n)
		require.Equal(t, ref, got)
	})
}

func BenchmarkAppend(b *testing.B) {
	buf := make([]byte, 0, MaxLen64)
	for i := 0; i < b.N; i++ {
		buf = Append(buf[:0], uint64(i)*2654435761)
	}
}

func BenchmarkDecode(b *testing.B) {
	buf := Append(nil, 1<<42+5)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Decode(buf)
	}
}
