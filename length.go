package formstream

// totalLength computes the exact byte length of the encoded body for the
// given boundary and parts. It trusts each part's declared size without
// reading any source, so the result is available before streaming begins
// and matches the streamed byte count exactly.
func totalLength(boundary string, parts []Part) int64 {
	// Closing delimiter: "--" boundary "--" CRLF.
	n := int64(len(boundary) + 6)
	for _, p := range parts {
		// Part delimiter: "--" boundary CRLF.
		n += int64(2+len(boundary)) + 2
		n += int64(len(p.header()))
		n += p.Size()
		// Trailing CRLF after the payload.
		n += 2
	}
	return n
}
