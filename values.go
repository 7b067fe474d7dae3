package pcd

import (
	"encoding/binary"
	"math"
)

func readFloat32(bo binary.ByteOrder, raw []byte) float32 {
	return math.Float32frombits(bo.Uint32(raw))
}

func readInt32(bo binary.ByteOrder, raw []byte) int32 {
	return int32(bo.Uint32(raw))
}
