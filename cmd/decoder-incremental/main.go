// decoder-incremental is a size-report binary: it exercises the incremental
// protobuf decoder against a fixed encoded message so the build pipeline can
// measure how much code the decoder pulls in.
package main

import (
	"github.com/FangnanWei/pigweed/pkg/bloat"
	"github.com/FangnanWei/pigweed/pkg/protobuf"
)

var encodedProto = []byte{
	// type=int32, k=1, v=42
	0x08, 0x2A,
	// type=sint32, k=2, v=-13
	0x10, 0x19,
}

type testDecodeHandler struct {
	testInt32  int32
	testSint32 int32
}

func (h *testDecodeHandler) ProcessField(d *protobuf.Decoder, fieldNumber uint32) error {
	switch fieldNumber {
	case 1, 3, 4, 5:
		v, err := d.ReadInt32(fieldNumber)
		if err != nil {
			v = 0
		}
		h.testInt32 = v
	case 2, 6, 7:
		v, err := d.ReadSint32(fieldNumber)
		if err != nil {
			v = 0
		}
		h.testSint32 = v
	}
	return nil
}

func main() {
	bloat.BloatThisBinary()

	var decoder protobuf.Decoder
	handler := &testDecodeHandler{}
	decoder.SetHandler(handler)
	_ = decoder.Decode(encodedProto)

	bloat.Sink(int64(handler.testInt32) + int64(handler.testSint32))
}
