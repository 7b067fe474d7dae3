package pcd

import (
	"encoding/binary"
	"fmt"
)

// decodeBinary decodes the row-major binary payload: point i's fields
// occupy one rowStride-sized slice starting at i*rowStride, with each
// field at its RowOffset within the row
func decodeBinary(schema *Schema, payload []byte, bo binary.ByteOrder) (*PointCloud, error) {
	idx := schema.indexes()
	if err := checkRowLayout(schema, idx); err != nil {
		return nil, err
	}
	stride := schema.RowStride()
	if need := schema.Points * stride; len(payload) < need {
		return nil, fmt.Errorf("%w: payload holds %d bytes, %d points of %d-byte rows need %d", ErrSchema, len(payload), schema.Points, stride, need)
	}
	b := newCloudBuilder(schema.Points, idx)
	for i := 0; i < schema.Points; i++ {
		row := payload[i*stride : (i+1)*stride]
		if idx.hasPosition() {
			b.addPosition(
				readFloat32(bo, row[schema.RowOffset(idx.x):]),
				readFloat32(bo, row[schema.RowOffset(idx.y):]),
				readFloat32(bo, row[schema.RowOffset(idx.z):]))
		}
		if idx.rgb >= 0 {
			off := schema.RowOffset(idx.rgb)
			// blue-green-red byte order within the 4-byte slot
			b.addColor(row[off+2], row[off+1], row[off])
		}
		if idx.hasNormal() {
			b.addNormal(
				readFloat32(bo, row[schema.RowOffset(idx.nx):]),
				readFloat32(bo, row[schema.RowOffset(idx.ny):]),
				readFloat32(bo, row[schema.RowOffset(idx.nz):]))
		}
		if idx.intensity >= 0 {
			b.addIntensity(readFloat32(bo, row[schema.RowOffset(idx.intensity):]))
		}
		if idx.label >= 0 {
			b.addLabel(readInt32(bo, row[schema.RowOffset(idx.label):]))
		}
	}
	return b.build(), nil
}
