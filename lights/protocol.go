package lights

// Adalight serial framing: a 3-byte magic word, the high and low bytes
// of (count-1), a checksum of those two, then count RGB triples.
const (
	magic0 byte = 'A'
	magic1 byte = 'd'
	magic2 byte = 'a'

	checksumSeed byte = 0x55

	headerLen = 6
)

// framePacket encodes an RGB frame as an Adalight packet, reusing buf
// when it is large enough.
func framePacket(frame []Color, buf []byte) []byte {
	size := headerLen + 3*len(frame)
	if cap(buf) < size {
		buf = make([]byte, size)
	}
	buf = buf[:size]

	hi := byte((len(frame) - 1) >> 8)
	lo := byte((len(frame) - 1) & 0xff)
	buf[0], buf[1], buf[2] = magic0, magic1, magic2
	buf[3], buf[4], buf[5] = hi, lo, hi^lo^checksumSeed

	for i, c := range frame {
		buf[headerLen+3*i] = c.R
		buf[headerLen+3*i+1] = c.G
		buf[headerLen+3*i+2] = c.B
	}
	return buf
}
