package pcd

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// compressedBody prefixes an LZF-compressed copy of the column-major
// buffer with the little-endian size pair the encoding requires
func compressedBody(columnMajor []byte) []byte {
	compressed := lzfCompress(columnMajor)
	body := make([]byte, 8, 8+len(compressed))
	binary.LittleEndian.PutUint32(body[0:4], uint32(len(compressed)))
	binary.LittleEndian.PutUint32(body[4:8], uint32(len(columnMajor)))
	return append(body, compressed...)
}

func TestDecodeBinaryCompressed_ColumnMajor(t *testing.T) {
	header := "FIELDS x y z\nSIZE 4 4 4\nTYPE F F F\nPOINTS 2\nDATA binary_compressed\n"
	// all x values, then all y values, then all z values
	columns := f32le(1, 2, 3, 4, 5, 6)
	data := append([]byte(header), compressedBody(columns)...)

	cloud, err := Decode(data, nil)
	require.NoError(t, err)
	// point 0 draws from the start of each block, point 1 from one
	// element further in - not from interleaved rows
	assert.Equal(t, []float32{1, 3, 5, 2, 4, 6}, cloud.Positions)
}

func TestDecodeBinaryCompressed_AllGroups(t *testing.T) {
	header := "FIELDS x y z rgb intensity label\n" +
		"SIZE 4 4 4 4 4 4\nTYPE F F F F F I\nPOINTS 2\nDATA binary_compressed\n"
	columns := f32le(1, 2)                           // x block
	columns = append(columns, f32le(3, 4)...)        // y block
	columns = append(columns, f32le(5, 6)...)        // z block
	columns = append(columns, 0x00, 0x00, 0xFF, 0x00) // rgb block, point 0: red
	columns = append(columns, 0xFF, 0x00, 0x00, 0x00) // point 1: blue
	columns = append(columns, f32le(0.5, 0.25)...) // intensity block
	columns = append(columns, i32le(10)...)
	columns = append(columns, i32le(-20)...)
	data := append([]byte(header), compressedBody(columns)...)

	cloud, err := Decode(data, nil)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 3, 5, 2, 4, 6}, cloud.Positions)
	assert.Equal(t, []float32{1, 0, 0, 0, 0, 1}, cloud.Colors)
	assert.Equal(t, []float32{0.5, 0.25}, cloud.Intensity)
	assert.Equal(t, []int32{10, -20}, cloud.Label)
}

func TestDecodeBinaryCompressed_Errors(t *testing.T) {
	header := "FIELDS x y z\nSIZE 4 4 4\nPOINTS 2\nDATA binary_compressed\n"
	t.Run("missing size prefix", func(t *testing.T) {
		data := append([]byte(header), 0x01, 0x02)
		_, err := Decode(data, nil)
		assert.ErrorIs(t, err, ErrDecompression)
	})
	t.Run("truncated compressed bytes", func(t *testing.T) {
		body := compressedBody(f32le(1, 2, 3, 4, 5, 6))
		data := append([]byte(header), body[:len(body)-4]...)
		_, err := Decode(data, nil)
		assert.ErrorIs(t, err, ErrDecompression)
	})
	t.Run("corrupt stream", func(t *testing.T) {
		body := []byte{2, 0, 0, 0, 24, 0, 0, 0, 0xFF, 0xFF}
		data := append([]byte(header), body...)
		_, err := Decode(data, nil)
		assert.ErrorIs(t, err, ErrDecompression)
	})
	t.Run("buffer smaller than schema", func(t *testing.T) {
		// decompresses fine but holds one point of data, not two
		data := append([]byte(header), compressedBody(f32le(1, 2, 3))...)
		_, err := Decode(data, nil)
		assert.ErrorIs(t, err, ErrSchema)
	})
}
