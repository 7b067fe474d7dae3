// Package pcd implements a decoder for the Point Cloud Data (PCD) file
// format: a textual header describing a field schema, followed by a
// payload in ascii, raw binary or LZF-compressed binary form. Decoding
// yields flat per-point arrays for the recognized semantic fields
// (position, normal, rgb colour, intensity, label); any other declared
// field keeps its byte-layout slot but produces no output.
package pcd

import (
	"encoding/binary"
	"fmt"
	"io"
)

// DecodeOptions represents the decoding options passed to Decode
type DecodeOptions struct {
	// BigEndian selects big-endian interpretation for all multi-byte
	// values in the binary payloads
	//
	// the default is little-endian, which is what PCD writers emit in
	// practice. The compressed-size prefix of binary_compressed data is
	// always little-endian regardless of this flag
	BigEndian bool
}

func (o *DecodeOptions) byteOrder() binary.ByteOrder {
	if o != nil && o.BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Decode decodes a complete PCD buffer into a PointCloud
//
// if the DecodeOptions supplied is nil, default options are used
func Decode(data []byte, options *DecodeOptions) (*PointCloud, error) {
	schema, err := ParseSchema(data)
	if err != nil {
		return nil, err
	}
	decoder, ok := bodyDecoders[schema.Encoding]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported data encoding %q", ErrHeader, schema.Encoding)
	}
	return decoder(schema, data[schema.HeaderLength:], options.byteOrder())
}

// DecodeFrom reads a complete PCD stream and decodes it. The whole
// stream is buffered first; there is no partial or streaming decode
func DecodeFrom(r io.Reader, options *DecodeOptions) (*PointCloud, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read PCD stream: %w", err)
	}
	return Decode(data, options)
}
