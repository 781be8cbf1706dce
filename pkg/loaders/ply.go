package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// plyHeader represents the parsed header information from a PLY file
type plyHeader struct {
	Format   string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version  string // Usually "1.0"
	Elements []plyElement
}

// plyElement is one element block (vertex, face, ...) in file order
type plyElement struct {
	Name  string
	Count int
	Props []plyProperty
}

// plyProperty represents a property definition in the PLY header
type plyProperty struct {
	Name      string
	Type      string // Scalar type, or the item type of a list
	IsList    bool
	CountType string // For list properties, the type of the count
}

// LoadPLY loads the vertex positions and faces of a PLY file. Polygons are
// fan-triangulated; all other properties are skipped.
func LoadPLY(filename string, opts Options) (*Mesh, error) {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("while opening PLY file: %w", err)
	}
	defer file.Close()

	mesh, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("while reading %s: %w", filename, err)
	}
	mesh.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	opts.logger().Infof("loaded PLY %s: %d vertices, %d triangles in %v",
		filename, len(mesh.Vertices), len(mesh.Faces), time.Since(startTime))
	return mesh, nil
}

// ReadPLY parses a PLY stream in any of the three standard encodings
func ReadPLY(r io.Reader) (*Mesh, error) {
	br := bufio.NewReaderSize(r, 1024*1024)

	header, err := parsePLYHeader(br)
	if err != nil {
		return nil, err
	}

	var values plyValueReader
	switch header.Format {
	case "ascii":
		scanner := bufio.NewScanner(br)
		scanner.Split(bufio.ScanWords)
		values = &asciiPLYReader{scanner: scanner}
	case "binary_little_endian":
		values = &binaryPLYReader{r: br, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryPLYReader{r: br, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("%w: unsupported PLY format %q", ErrMalformedAsset, header.Format)
	}

	mesh := &Mesh{}
	for _, elem := range header.Elements {
		if err := readPLYElement(values, elem, mesh); err != nil {
			return nil, err
		}
	}

	for i, f := range mesh.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= len(mesh.Vertices) {
				return nil, fmt.Errorf("%w: face %d references vertex %d of %d", ErrMalformedAsset, i, idx, len(mesh.Vertices))
			}
		}
	}
	return mesh, nil
}

// parsePLYHeader reads header lines up to and including end_header
func parsePLYHeader(br *bufio.Reader) (*plyHeader, error) {
	header := &plyHeader{}
	first := true

	for {
		line, err := br.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return nil, fmt.Errorf("%w: header ended early: %v", ErrMalformedAsset, err)
		}
		line = strings.TrimSpace(line)

		if first {
			if line != "ply" {
				return nil, fmt.Errorf("%w: missing ply magic number", ErrMalformedAsset)
			}
			first = false
			continue
		}
		if line == "end_header" {
			return header, nil
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) >= 3 {
				header.Format = parts[1]
				header.Version = parts[2]
			}
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: invalid element line %q", ErrMalformedAsset, line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("%w: invalid element count: %s", ErrMalformedAsset, parts[2])
			}
			header.Elements = append(header.Elements, plyElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("%w: property before any element", ErrMalformedAsset)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			elem := &header.Elements[len(header.Elements)-1]
			elem.Props = append(elem.Props, prop)
		}
	}
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (plyProperty, error) {
	if len(parts) < 2 {
		return plyProperty{}, fmt.Errorf("%w: invalid property definition", ErrMalformedAsset)
	}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return plyProperty{}, fmt.Errorf("%w: invalid list property definition", ErrMalformedAsset)
		}
		return plyProperty{IsList: true, CountType: parts[1], Type: parts[2], Name: parts[3]}, nil
	}
	return plyProperty{Type: parts[0], Name: parts[1]}, nil
}

// readPLYElement reads every instance of elem, keeping vertex positions and
// face index lists
func readPLYElement(values plyValueReader, elem plyElement, mesh *Mesh) error {
	for i := 0; i < elem.Count; i++ {
		var pos [3]float64
		var polygon []int

		for _, prop := range elem.Props {
			if prop.IsList {
				n, err := values.read(prop.CountType)
				if err != nil {
					return fmt.Errorf("%w: %s %d: list count of %s: %v", ErrMalformedAsset, elem.Name, i, prop.Name, err)
				}
				keep := elem.Name == "face" && (prop.Name == "vertex_indices" || prop.Name == "vertex_index")
				for k := 0; k < int(n); k++ {
					v, err := values.read(prop.Type)
					if err != nil {
						return fmt.Errorf("%w: %s %d: %s: %v", ErrMalformedAsset, elem.Name, i, prop.Name, err)
					}
					if keep {
						polygon = append(polygon, int(v))
					}
				}
				continue
			}

			v, err := values.read(prop.Type)
			if err != nil {
				return fmt.Errorf("%w: %s %d: %s: %v", ErrMalformedAsset, elem.Name, i, prop.Name, err)
			}
			if elem.Name == "vertex" {
				switch prop.Name {
				case "x":
					pos[0] = v
				case "y":
					pos[1] = v
				case "z":
					pos[2] = v
				}
			}
		}

		switch elem.Name {
		case "vertex":
			mesh.Vertices = append(mesh.Vertices, vec3(pos))
		case "face":
			if len(polygon) < 3 {
				return fmt.Errorf("%w: face %d has %d vertices", ErrMalformedAsset, i, len(polygon))
			}
			mesh.Faces = append(mesh.Faces, fan(polygon)...)
		}
	}
	return nil
}

// plyValueReader yields the next scalar of the body as a float64
type plyValueReader interface {
	read(dataType string) (float64, error)
}

type asciiPLYReader struct {
	scanner *bufio.Scanner
}

func (a *asciiPLYReader) read(dataType string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.ParseFloat(a.scanner.Text(), 64)
}

type binaryPLYReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *binaryPLYReader) read(dataType string) (float64, error) {
	size := plyTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unsupported data type: %s", dataType)
	}
	p := b.buf[:size]
	if _, err := io.ReadFull(b.r, p); err != nil {
		return 0, err
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(p[0])), nil
	case "uchar", "uint8":
		return float64(p[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(p))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(p)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(p))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(p)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(p))), nil
	default: // double, float64
		return math.Float64frombits(b.order.Uint64(p)), nil
	}
}

// plyTypeSize returns the size in bytes of a PLY data type, or 0 if unknown
func plyTypeSize(dataType string) int {
	switch dataType {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "float", "float32", "int", "int32", "uint", "uint32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}

// fan splits a convex polygon into triangles sharing its first vertex
func fan(polygon []int) [][3]int {
	tris := make([][3]int, 0, len(polygon)-2)
	for k := 1; k+1 < len(polygon); k++ {
		tris = append(tris, [3]int{polygon[0], polygon[k], polygon[k+1]})
	}
	return tris
}
