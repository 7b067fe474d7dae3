package pcd

import (
	"encoding/binary"
	"fmt"
)

// decodeBinaryCompressed decodes the binary_compressed payload: a
// little-endian u32 pair (compressed length, decompressed length)
// followed by an LZF stream. The decompressed buffer is column-major -
// all values of the first field, then all values of the second, in
// declaration order - so point i's value for field f sits at
// ColumnBlockStart(f, points) + size[f]*i
func decodeBinaryCompressed(schema *Schema, payload []byte, bo binary.ByteOrder) (*PointCloud, error) {
	idx := schema.indexes()
	if schema.Size == nil {
		return nil, fmt.Errorf("%w: %s data requires a SIZE line", ErrSchema, schema.Encoding)
	}
	if len(payload) < 8 {
		return nil, fmt.Errorf("%w: missing compressed/decompressed size prefix", ErrDecompression)
	}
	compressedSize := int(binary.LittleEndian.Uint32(payload[0:4]))
	decompressedSize := int(binary.LittleEndian.Uint32(payload[4:8]))
	if len(payload)-8 < compressedSize {
		return nil, fmt.Errorf("%w: payload holds %d compressed bytes, header declares %d", ErrDecompression, len(payload)-8, compressedSize)
	}
	dec, err := DecompressLZF(payload[8:8+compressedSize], decompressedSize)
	if err != nil {
		return nil, err
	}
	if err := checkColumnLayout(schema, idx, len(dec)); err != nil {
		return nil, err
	}
	points := schema.Points
	column := func(i, p int) []byte {
		return dec[schema.ColumnBlockStart(i, points)+schema.Size[i]*p:]
	}
	b := newCloudBuilder(points, idx)
	for p := 0; p < points; p++ {
		if idx.hasPosition() {
			b.addPosition(
				readFloat32(bo, column(idx.x, p)),
				readFloat32(bo, column(idx.y, p)),
				readFloat32(bo, column(idx.z, p)))
		}
		if idx.rgb >= 0 {
			slot := column(idx.rgb, p)
			b.addColor(slot[2], slot[1], slot[0])
		}
		if idx.hasNormal() {
			b.addNormal(
				readFloat32(bo, column(idx.nx, p)),
				readFloat32(bo, column(idx.ny, p)),
				readFloat32(bo, column(idx.nz, p)))
		}
		if idx.intensity >= 0 {
			b.addIntensity(readFloat32(bo, column(idx.intensity, p)))
		}
		if idx.label >= 0 {
			b.addLabel(readInt32(bo, column(idx.label, p)))
		}
	}
	return b.build(), nil
}
