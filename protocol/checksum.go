package protocol

// Checksum computes the 16-bit frame checksum: the modulo-65536 sum of
// every byte from the address field through the payload. The start marker
// and the checksum field itself are excluded.
func Checksum(data []byte) uint16 {
	var sum uint16
	for _, b := range data {
		sum += uint16(b)
	}
	return sum
}
