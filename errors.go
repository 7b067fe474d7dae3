package pcd

import "errors"

// Error kinds surfaced by Decode - match with errors.Is
var (
	// ErrHeader indicates the leading text block could not be parsed:
	// no DATA line, an unknown encoding, or an unparsable numeric value
	ErrHeader = errors.New("malformed PCD header")
	// ErrDecompression indicates a malformed LZF stream: truncated input,
	// an out-of-range back-reference or a buffer size violation
	ErrDecompression = errors.New("malformed LZF stream")
	// ErrSchema indicates the declared schema is internally inconsistent
	// or disagrees with the payload length
	ErrSchema = errors.New("inconsistent PCD schema")
)
