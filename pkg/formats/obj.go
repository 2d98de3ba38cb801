package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrEmptyOBJ     = errors.New("OBJ contains no faces")
	ErrMalformedOBJ = errors.New("malformed OBJ data")
)

// OBJIndex references one face corner. Indices are 0-based; -1 means absent.
type OBJIndex struct {
	V  int // Position index
	VT int // Texture coordinate index
	VN int // Normal index
}

// OBJFace is a triangle. Polygons are fan-triangulated at parse time.
type OBJFace [3]OBJIndex

// OBJGroup is a named run of faces inside an object ("g" statement).
type OBJGroup struct {
	Name  string
	Faces []OBJFace
}

// OBJObject is a named object ("o" statement) holding one or more groups.
type OBJObject struct {
	Name   string
	Groups []OBJGroup
}

// OBJ represents a parsed Wavefront OBJ file.
// Vertex attribute pools are shared by all objects, as in the file.
type OBJ struct {
	Positions [][3]float32
	Normals   [][3]float32
	TexCoords [][2]float32
	Objects   []OBJObject
}

// ParseOBJ parses OBJ text from a byte slice.
// Supported statements: v, vn, vt, f, o, g. Others (mtllib, usemtl, s, l, p) are ignored.
func ParseOBJ(data []byte) (*OBJ, error) {
	p := &objParser{obj: &OBJ{}}

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		p.line++
		if err := p.parseLine(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOBJ, err)
	}

	p.obj.prune()
	if p.obj.FaceCount() == 0 {
		return nil, ErrEmptyOBJ
	}
	return p.obj, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	return ParseOBJ(data)
}

// FaceCount returns the number of triangles across all objects.
func (o *OBJ) FaceCount() int {
	total := 0
	for _, obj := range o.Objects {
		for _, g := range obj.Groups {
			total += len(g.Faces)
		}
	}
	return total
}

// prune drops groups without faces and objects without groups.
func (o *OBJ) prune() {
	objects := o.Objects[:0]
	for _, obj := range o.Objects {
		groups := obj.Groups[:0]
		for _, g := range obj.Groups {
			if len(g.Faces) > 0 {
				groups = append(groups, g)
			}
		}
		obj.Groups = groups
		if len(obj.Groups) > 0 {
			objects = append(objects, obj)
		}
	}
	o.Objects = objects
}

type objParser struct {
	obj  *OBJ
	line int
}

func (p *objParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformedOBJ, p.line, fmt.Sprintf(format, args...))
}

func (p *objParser) parseLine(text string) error {
	if i := strings.IndexByte(text, '#'); i >= 0 {
		text = text[:i]
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "v":
		v, err := p.floats(fields[1:], 3)
		if err != nil {
			return err
		}
		p.obj.Positions = append(p.obj.Positions, [3]float32{v[0], v[1], v[2]})
	case "vn":
		v, err := p.floats(fields[1:], 3)
		if err != nil {
			return err
		}
		p.obj.Normals = append(p.obj.Normals, [3]float32{v[0], v[1], v[2]})
	case "vt":
		v, err := p.floats(fields[1:], 1)
		if err != nil {
			return err
		}
		uv := [2]float32{v[0], 0}
		if len(v) > 1 {
			uv[1] = v[1]
		}
		p.obj.TexCoords = append(p.obj.TexCoords, uv)
	case "o":
		p.obj.Objects = append(p.obj.Objects, OBJObject{Name: strings.Join(fields[1:], " ")})
	case "g":
		obj := p.currentObject()
		obj.Groups = append(obj.Groups, OBJGroup{Name: strings.Join(fields[1:], " ")})
	case "f":
		return p.parseFace(fields[1:])
	}
	return nil
}

// currentObject returns the object faces are appended to, creating an unnamed one if needed.
func (p *objParser) currentObject() *OBJObject {
	if len(p.obj.Objects) == 0 {
		p.obj.Objects = append(p.obj.Objects, OBJObject{})
	}
	return &p.obj.Objects[len(p.obj.Objects)-1]
}

func (p *objParser) currentGroup() *OBJGroup {
	obj := p.currentObject()
	if len(obj.Groups) == 0 {
		obj.Groups = append(obj.Groups, OBJGroup{Name: obj.Name})
	}
	return &obj.Groups[len(obj.Groups)-1]
}

func (p *objParser) floats(fields []string, minCount int) ([]float32, error) {
	if len(fields) < minCount {
		return nil, p.errorf("expected at least %d values, got %d", minCount, len(fields))
	}
	out := make([]float32, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, p.errorf("invalid number %q", f)
		}
		out = append(out, float32(v))
	}
	return out, nil
}

func (p *objParser) parseFace(fields []string) error {
	if len(fields) < 3 {
		return p.errorf("face needs at least 3 vertices, got %d", len(fields))
	}

	corners := make([]OBJIndex, len(fields))
	for i, f := range fields {
		c, err := p.parseCorner(f)
		if err != nil {
			return err
		}
		corners[i] = c
	}

	g := p.currentGroup()
	for i := 1; i+1 < len(corners); i++ {
		g.Faces = append(g.Faces, OBJFace{corners[0], corners[i], corners[i+1]})
	}
	return nil
}

// parseCorner parses "v", "v/vt", "v//vn" or "v/vt/vn".
func (p *objParser) parseCorner(s string) (OBJIndex, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return OBJIndex{}, p.errorf("invalid face corner %q", s)
	}

	idx := OBJIndex{V: -1, VT: -1, VN: -1}
	var err error
	if idx.V, err = p.resolve(parts[0], len(p.obj.Positions)); err != nil {
		return idx, err
	}
	if idx.V < 0 {
		return idx, p.errorf("face corner %q has no position", s)
	}
	if len(parts) > 1 {
		if idx.VT, err = p.resolve(parts[1], len(p.obj.TexCoords)); err != nil {
			return idx, err
		}
	}
	if len(parts) > 2 {
		if idx.VN, err = p.resolve(parts[2], len(p.obj.Normals)); err != nil {
			return idx, err
		}
	}
	return idx, nil
}

// resolve converts a 1-based (or negative, relative) OBJ index into a 0-based index.
// An empty string yields -1.
func (p *objParser) resolve(s string, count int) (int, error) {
	if s == "" {
		return -1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1, p.errorf("invalid index %q", s)
	}
	switch {
	case n > 0 && n <= count:
		return n - 1, nil
	case n < 0 && -n <= count:
		return count + n, nil
	default:
		return -1, p.errorf("index %d out of range (have %d)", n, count)
	}
}
