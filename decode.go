package pcd

import (
	"encoding/binary"
	"fmt"
)

type bodyDecoder func(schema *Schema, payload []byte, bo binary.ByteOrder) (*PointCloud, error)

var bodyDecoders map[Encoding]bodyDecoder

func init() {
	bodyDecoders = map[Encoding]bodyDecoder{
		EncodingAscii:            decodeAscii,
		EncodingBinary:           decodeBinary,
		EncodingBinaryCompressed: decodeBinaryCompressed,
	}
}

// used lists the schema indexes of the recognized fields that are
// actually declared, for layout validation
func (f fieldIndexes) used() []int {
	used := make([]int, 0, 9)
	for _, i := range []int{f.x, f.y, f.z, f.nx, f.ny, f.nz, f.rgb, f.intensity, f.label} {
		if i >= 0 {
			used = append(used, i)
		}
	}
	return used
}

// checkRowLayout verifies that every recognized field's 4-byte slot fits
// within the interleaved row stride
func checkRowLayout(schema *Schema, idx fieldIndexes) error {
	if schema.Size == nil {
		return fmt.Errorf("%w: %s data requires a SIZE line", ErrSchema, schema.Encoding)
	}
	for _, i := range idx.used() {
		if schema.RowOffset(i)+4 > schema.RowStride() {
			return fmt.Errorf("%w: field %q overruns the %d-byte row", ErrSchema, schema.Fields[i], schema.RowStride())
		}
	}
	return nil
}

// checkColumnLayout verifies that every recognized field's last value fits
// within a column-major buffer of the given length
func checkColumnLayout(schema *Schema, idx fieldIndexes, bufLen int) error {
	if schema.Points == 0 {
		return nil
	}
	for _, i := range idx.used() {
		end := schema.ColumnBlockStart(i, schema.Points) + schema.Size[i]*(schema.Points-1) + 4
		if end > bufLen {
			return fmt.Errorf("%w: field %q overruns the %d-byte decompressed buffer", ErrSchema, schema.Fields[i], bufLen)
		}
	}
	return nil
}
