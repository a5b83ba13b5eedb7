package secure

// Wipe zeroes a byte slice in place.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Copy returns an independent copy of b.
func Copy(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
