package pcd

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// decodeAscii decodes the ascii payload: one whitespace-separated line per
// point, with each field's value at its declaration-order column. The
// byte-layout tables are not used here
func decodeAscii(schema *Schema, payload []byte, _ binary.ByteOrder) (*PointCloud, error) {
	idx := schema.indexes()
	b := newCloudBuilder(schema.Points, idx)
	for n, line := range strings.Split(string(payload), "\n") {
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		if err := decodeAsciiPoint(schema, idx, tokens, b); err != nil {
			return nil, fmt.Errorf("ascii data line %d: %w", n+1, err)
		}
	}
	return b.build(), nil
}

func decodeAsciiPoint(schema *Schema, idx fieldIndexes, tokens []string, b *cloudBuilder) error {
	if idx.hasPosition() {
		x, err := floatToken(tokens, idx.x)
		if err != nil {
			return err
		}
		y, err := floatToken(tokens, idx.y)
		if err != nil {
			return err
		}
		z, err := floatToken(tokens, idx.z)
		if err != nil {
			return err
		}
		b.addPosition(x, y, z)
	}
	if idx.rgb >= 0 {
		packed, err := rgbToken(schema, tokens, idx.rgb)
		if err != nil {
			return err
		}
		b.addPackedColor(packed)
	}
	if idx.hasNormal() {
		nx, err := floatToken(tokens, idx.nx)
		if err != nil {
			return err
		}
		ny, err := floatToken(tokens, idx.ny)
		if err != nil {
			return err
		}
		nz, err := floatToken(tokens, idx.nz)
		if err != nil {
			return err
		}
		b.addNormal(nx, ny, nz)
	}
	if idx.intensity >= 0 {
		v, err := floatToken(tokens, idx.intensity)
		if err != nil {
			return err
		}
		b.addIntensity(v)
	}
	if idx.label >= 0 {
		v, err := intToken(tokens, idx.label)
		if err != nil {
			return err
		}
		b.addLabel(v)
	}
	return nil
}

// rgbToken parses a packed rgb column. When the field is declared as a
// float the token's 32-bit float bit pattern is the packed value;
// otherwise the token's truncated integer value is
func rgbToken(schema *Schema, tokens []string, column int) (uint32, error) {
	v, err := float64Token(tokens, column)
	if err != nil {
		return 0, err
	}
	if schema.floatType(column) {
		return math.Float32bits(float32(v)), nil
	}
	return uint32(int64(v)), nil
}

func floatToken(tokens []string, column int) (float32, error) {
	v, err := float64Token(tokens, column)
	return float32(v), err
}

func float64Token(tokens []string, column int) (float64, error) {
	if column >= len(tokens) {
		return 0, fmt.Errorf("missing column %d (line has %d tokens)", column, len(tokens))
	}
	v, err := strconv.ParseFloat(tokens[column], 64)
	if err != nil {
		return 0, fmt.Errorf("column %d: invalid value %q", column, tokens[column])
	}
	return v, nil
}

func intToken(tokens []string, column int) (int32, error) {
	if column >= len(tokens) {
		return 0, fmt.Errorf("missing column %d (line has %d tokens)", column, len(tokens))
	}
	v, err := strconv.ParseInt(tokens[column], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("column %d: invalid value %q", column, tokens[column])
	}
	return int32(v), nil
}
