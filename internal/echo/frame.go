package echo

import "encoding/binary"

const (
	typeEchoRequest = 8
	typeEchoReply   = 0

	headerLen = 8
	frameLen  = 64
)

// payloadPattern pads the frame to frameLen; the bytes carry no meaning and
// must only be deterministic so frames for equal (id, seq) are identical.
var payloadPattern = []byte("pingview-probe!!")

// BuildEchoRequest assembles a complete echo request frame for id/seq,
// checksummed and ready to transmit.
func BuildEchoRequest(id, seq uint16) []byte {
	frame := make([]byte, frameLen)
	frame[0] = typeEchoRequest
	frame[1] = 0 // code
	binary.BigEndian.PutUint16(frame[4:6], id)
	binary.BigEndian.PutUint16(frame[6:8], seq)
	for i := headerLen; i < frameLen; i++ {
		frame[i] = payloadPattern[(i-headerLen)%len(payloadPattern)]
	}
	binary.BigEndian.PutUint16(frame[2:4], Checksum(frame))
	return frame
}

// Reply is the identifying part of a parsed echo reply.
type Reply struct {
	ID  uint16
	Seq uint16
}

// ParseEchoReply extracts id/seq from an inbound frame. It tolerates a leading
// IPv4 header (raw sockets on some platforms deliver one) and rejects frames
// that are short, not type 0/code 0, or fail checksum validation.
func ParseEchoReply(b []byte) (Reply, bool) {
	b = stripIPv4Header(b)
	if len(b) < headerLen {
		return Reply{}, false
	}
	if b[0] != typeEchoReply || b[1] != 0 {
		return Reply{}, false
	}
	if !validChecksum(b) {
		return Reply{}, false
	}
	return Reply{
		ID:  binary.BigEndian.Uint16(b[4:6]),
		Seq: binary.BigEndian.Uint16(b[6:8]),
	}, true
}

// stripIPv4Header removes a leading IPv4 header if one is present. An ICMP
// frame always starts with its type byte, and no echo message type has a high
// nibble of 4, so the version nibble disambiguates.
func stripIPv4Header(b []byte) []byte {
	if len(b) == 0 || b[0]>>4 != 4 {
		return b
	}
	ihl := int(b[0]&0x0f) * 4
	if ihl < 20 || len(b) <= ihl {
		return b
	}
	return b[ihl:]
}

func validChecksum(b []byte) bool {
	want := binary.BigEndian.Uint16(b[2:4])
	zeroed := make([]byte, len(b))
	copy(zeroed, b)
	zeroed[2], zeroed[3] = 0, 0
	return Checksum(zeroed) == want
}
