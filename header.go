package pcd

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Encoding identifies how the payload after the header is laid out
type Encoding uint8

const (
	EncodingAscii Encoding = iota
	EncodingBinary
	EncodingBinaryCompressed
)

func (e Encoding) String() string {
	switch e {
	case EncodingAscii:
		return "ascii"
	case EncodingBinary:
		return "binary"
	case EncodingBinaryCompressed:
		return "binary_compressed"
	}
	return fmt.Sprintf("Encoding(%d)", uint8(e))
}

// Schema represents the parsed PCD header: the declared fields, their
// byte layout and the payload encoding
type Schema struct {
	Version   string
	Fields    []string
	Size      []int
	Type      []string
	Count     []int
	Width     int
	Height    int
	Viewpoint []float64
	// Points is the declared POINTS value, or Width*Height when absent.
	// For ascii data with neither declared it is -1; the line-oriented
	// decoder does not need it
	Points   int
	Encoding Encoding
	// HeaderLength is the byte offset where the payload begins - the byte
	// immediately after the newline terminating the DATA line
	HeaderLength int

	rowOffset []int
	rowStride int
}

// RowOffset returns the byte offset of field i within one interleaved row,
// i.e. the cumulative byte width (size*count) of all fields preceding it
func (s *Schema) RowOffset(i int) int {
	return s.rowOffset[i]
}

// RowStride returns the byte length of one interleaved row - the sum of
// size*count over all fields. Only the plain binary encoding lays rows
// out this way
func (s *Schema) RowStride() int {
	return s.rowStride
}

// ColumnBlockStart returns the byte offset of field i's contiguous value
// block within a column-major (struct-of-arrays) buffer holding the given
// number of points, as produced by the binary_compressed encoding
func (s *Schema) ColumnBlockStart(i, points int) int {
	return points * s.rowOffset[i]
}

// FieldIndex returns the declaration-order index of the named field
func (s *Schema) FieldIndex(name string) (int, bool) {
	for i, f := range s.Fields {
		if f == name {
			return i, true
		}
	}
	return 0, false
}

// ParseSchema parses the leading text block of a PCD buffer. The scan
// stops at the first DATA line; everything after it is payload and is
// never inspected here. Keywords are matched case-insensitively and
// comments ('#' to end of line) are stripped first
func ParseSchema(data []byte) (*Schema, error) {
	schema := &Schema{Width: -1, Height: -1, Points: -1}
	pos := 0
	sawData := false
	for pos < len(data) && !sawData {
		next := len(data)
		line := data[pos:]
		if eol := bytes.IndexByte(line, '\n'); eol >= 0 {
			line = line[:eol]
			next = pos + eol + 1
		}
		pos = next
		if hash := bytes.IndexByte(line, '#'); hash >= 0 {
			line = line[:hash]
		}
		tokens := strings.Fields(string(line))
		if len(tokens) < 2 {
			continue
		}
		var err error
		switch strings.ToUpper(tokens[0]) {
		case "VERSION":
			schema.Version = tokens[1]
		case "FIELDS":
			schema.Fields = tokens[1:]
		case "SIZE":
			schema.Size, err = intValues("SIZE", tokens[1:])
		case "TYPE":
			schema.Type = tokens[1:]
		case "COUNT":
			schema.Count, err = intValues("COUNT", tokens[1:])
		case "WIDTH":
			schema.Width, err = intValue("WIDTH", tokens[1])
		case "HEIGHT":
			schema.Height, err = intValue("HEIGHT", tokens[1])
		case "VIEWPOINT":
			schema.Viewpoint, err = floatValues("VIEWPOINT", tokens[1:])
		case "POINTS":
			schema.Points, err = intValue("POINTS", tokens[1])
		case "DATA":
			schema.Encoding, err = parseEncoding(tokens[1])
			schema.HeaderLength = pos
			sawData = true
		}
		if err != nil {
			return nil, err
		}
	}
	if !sawData {
		return nil, fmt.Errorf("%w: no DATA line found", ErrHeader)
	}
	if schema.Count == nil && schema.Fields != nil {
		schema.Count = make([]int, len(schema.Fields))
		for i := range schema.Count {
			schema.Count[i] = 1
		}
	}
	if err := schema.validate(); err != nil {
		return nil, err
	}
	if schema.Points < 0 {
		if schema.Width >= 0 && schema.Height >= 0 {
			schema.Points = schema.Width * schema.Height
		} else if schema.Encoding != EncodingAscii {
			// the binary layouts are addressed by point count; ascii is
			// line-oriented and can do without one
			return nil, fmt.Errorf("%w: no POINTS line and no WIDTH/HEIGHT to derive a point count from", ErrHeader)
		}
	}
	if schema.Size != nil {
		schema.rowOffset = make([]int, len(schema.Fields))
		for i := range schema.Fields {
			schema.rowOffset[i] = schema.rowStride
			schema.rowStride += schema.Size[i] * schema.Count[i]
		}
	}
	return schema, nil
}

func (s *Schema) validate() error {
	if s.Size != nil && len(s.Size) != len(s.Fields) {
		return fmt.Errorf("%w: %d fields but %d SIZE values", ErrSchema, len(s.Fields), len(s.Size))
	}
	if s.Type != nil && len(s.Type) != len(s.Fields) {
		return fmt.Errorf("%w: %d fields but %d TYPE values", ErrSchema, len(s.Fields), len(s.Type))
	}
	if s.Count != nil && len(s.Count) != len(s.Fields) {
		return fmt.Errorf("%w: %d fields but %d COUNT values", ErrSchema, len(s.Fields), len(s.Count))
	}
	return nil
}

// floatType reports whether field i is declared with TYPE F - only
// relevant for the packed rgb bit reinterpretation
func (s *Schema) floatType(i int) bool {
	return s.Type != nil && strings.EqualFold(s.Type[i], "F")
}

func parseEncoding(token string) (Encoding, error) {
	switch strings.ToLower(token) {
	case "ascii":
		return EncodingAscii, nil
	case "binary":
		return EncodingBinary, nil
	case "binary_compressed":
		return EncodingBinaryCompressed, nil
	}
	return 0, fmt.Errorf("%w: unknown data encoding %q", ErrHeader, token)
}

func intValue(keyword, token string) (int, error) {
	v, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s value %q", ErrHeader, keyword, token)
	}
	return v, nil
}

func intValues(keyword string, tokens []string) ([]int, error) {
	values := make([]int, len(tokens))
	for i, token := range tokens {
		v, err := intValue(keyword, token)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func floatValues(keyword string, tokens []string) ([]float64, error) {
	values := make([]float64, len(tokens))
	for i, token := range tokens {
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid %s value %q", ErrHeader, keyword, token)
		}
		values[i] = v
	}
	return values, nil
}
