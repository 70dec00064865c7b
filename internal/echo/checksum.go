package echo

// Checksum computes the internet checksum over b: the ones-complement of the
// ones-complement sum of all 16-bit big-endian words, with an odd trailing
// byte promoted to the high byte of a final word. Carry from the 32-bit
// accumulator is folded back in before complementing.
func Checksum(b []byte) uint16 {
	var sum uint32
	for i := 0; i+1 < len(b); i += 2 {
		sum += uint32(b[i])<<8 | uint32(b[i+1])
	}
	if len(b)%2 == 1 {
		sum += uint32(b[len(b)-1]) << 8
	}
	for sum>>16 > 0 {
		sum = sum&0xffff + sum>>16
	}
	return ^uint16(sum)
}
