package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/partview/internal/logger"
	"github.com/Faultbox/partview/pkg/formats"
)

// FromOBJ builds a scene from a parsed OBJ file. The root node holds one
// child per OBJ object; an object with several groups gets one child node per
// group. Each group becomes one mesh, re-indexed so that every distinct
// position/uv/normal corner is one vertex.
func FromOBJ(obj *formats.OBJ) (*Scene, error) {
	s := &Scene{Root: NewNode("root")}

	for _, o := range obj.Objects {
		objNode := s.Root.AddChild(NewNode(o.Name))
		single := len(o.Groups) == 1

		for _, g := range o.Groups {
			mesh, err := buildOBJMesh(obj, g)
			if err != nil {
				return nil, fmt.Errorf("object %q group %q: %w", o.Name, g.Name, err)
			}
			if single {
				mesh.Name = o.Name
			} else {
				mesh.Name = o.Name + "/" + g.Name
			}

			id := MeshID(len(s.Meshes))
			s.Meshes = append(s.Meshes, mesh)

			target := objNode
			if !single {
				target = objNode.AddChild(NewNode(g.Name))
			}
			target.Meshes = append(target.Meshes, id)
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("scene built from OBJ",
		zap.Int("objects", len(obj.Objects)),
		zap.Int("meshes", len(s.Meshes)),
	)
	return s, nil
}

// LoadOBJ parses an OBJ file from disk and builds a scene from it.
func LoadOBJ(path string) (*Scene, error) {
	obj, err := formats.ParseOBJFile(path)
	if err != nil {
		return nil, err
	}
	return FromOBJ(obj)
}

func buildOBJMesh(obj *formats.OBJ, g formats.OBJGroup) (*Mesh, error) {
	mesh := &Mesh{}
	remap := make(map[formats.OBJIndex]uint32)
	hasNormals, hasUVs := true, true

	for _, f := range g.Faces {
		var tri [3]uint32
		for k, c := range f {
			if c.V < 0 || c.V >= len(obj.Positions) {
				return nil, fmt.Errorf("%w: position %d", ErrFaceIndex, c.V)
			}
			if c.VN < 0 || c.VN >= len(obj.Normals) {
				hasNormals = false
			}
			if c.VT < 0 || c.VT >= len(obj.TexCoords) {
				hasUVs = false
			}

			idx, ok := remap[c]
			if !ok {
				idx = uint32(len(mesh.Positions))
				remap[c] = idx
				mesh.Positions = append(mesh.Positions, obj.Positions[c.V])
			}
			tri[k] = idx
		}
		mesh.Faces = append(mesh.Faces, tri)
	}

	// Attributes are kept only when every corner supplies them.
	if hasNormals || hasUVs {
		corners := make([]formats.OBJIndex, len(mesh.Positions))
		for c, idx := range remap {
			corners[idx] = c
		}
		if hasNormals {
			mesh.Normals = make([][3]float32, len(corners))
			for i, c := range corners {
				mesh.Normals[i] = obj.Normals[c.VN]
			}
		}
		if hasUVs {
			mesh.UVs = make([][2]float32, len(corners))
			for i, c := range corners {
				mesh.UVs[i] = obj.TexCoords[c.VT]
			}
		}
	}
	return mesh, nil
}
