package analysis

import (
	"encoding/base64"
	"strings"
)

// encodeChunkSize is a multiple of three so chunk boundaries never produce
// intermediate padding.
const encodeChunkSize = 3 * 1024

// encodeBase64 produces the standard base64 encoding of data without
// materializing a second full-size buffer. Documents run to megabytes, so
// the input is streamed through the encoder in fixed-size chunks.
func encodeBase64(data []byte) string {
	var b strings.Builder
	b.Grow(base64.StdEncoding.EncodedLen(len(data)))

	enc := base64.NewEncoder(base64.StdEncoding, &b)
	for len(data) > 0 {
		n := encodeChunkSize
		if n > len(data) {
			n = len(data)
		}
		enc.Write(data[:n])
		data = data[n:]
	}
	enc.Close()
	return b.String()
}
