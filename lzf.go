package pcd

import "fmt"

// DecompressLZF decompresses an LZF-encoded byte stream into a buffer of
// exactly expectedLength bytes. The stream is a sequence of control bytes:
// values below 32 introduce a literal run of control+1 bytes; anything else
// is a back-reference into the output produced so far, with a 3-bit length
// (escape value 7 adds one extra length byte) and a 13-bit distance.
//
// References may point into bytes written by the same copy, so overlapping
// copies advance one byte at a time and yield repeating patterns. On
// success the output is exactly expectedLength bytes; any truncation,
// out-of-range reference or size violation fails with ErrDecompression
func DecompressLZF(src []byte, expectedLength int) ([]byte, error) {
	out := make([]byte, expectedLength)
	ip, op := 0, 0
	for ip < len(src) {
		ctrl := int(src[ip])
		ip++
		if ctrl < 32 {
			// literal run of ctrl+1 bytes...
			n := ctrl + 1
			if ip+n > len(src) {
				return nil, fmt.Errorf("%w: literal run of %d bytes reads past input end", ErrDecompression, n)
			}
			if op+n > expectedLength {
				return nil, fmt.Errorf("%w: literal run of %d bytes writes past output end", ErrDecompression, n)
			}
			copy(out[op:], src[ip:ip+n])
			ip += n
			op += n
			continue
		}
		// back-reference...
		length := ctrl >> 5
		if length == 7 {
			if ip >= len(src) {
				return nil, fmt.Errorf("%w: truncated extended-length back-reference", ErrDecompression)
			}
			length += int(src[ip])
			ip++
		}
		if ip >= len(src) {
			return nil, fmt.Errorf("%w: truncated back-reference", ErrDecompression)
		}
		ref := op - ((ctrl & 0x1f) << 8) - 1 - int(src[ip])
		ip++
		if ref < 0 || ref >= op {
			return nil, fmt.Errorf("%w: back-reference to offset %d at output position %d", ErrDecompression, ref, op)
		}
		n := length + 2
		if op+n > expectedLength {
			return nil, fmt.Errorf("%w: back-reference copy of %d bytes writes past output end", ErrDecompression, n)
		}
		// byte-at-a-time so self-overlapping references repeat the
		// bytes they have just produced
		for ; n > 0; n-- {
			out[op] = out[ref]
			op++
			ref++
		}
	}
	if op != expectedLength {
		return nil, fmt.Errorf("%w: produced %d bytes, expected %d", ErrDecompression, op, expectedLength)
	}
	return out, nil
}
