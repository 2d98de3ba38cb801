// Package scene provides the hierarchical scene graph and world transform composition.
package scene

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/partview/pkg/math"
)

// Scene validation errors.
var (
	ErrNoRoot         = errors.New("scene has no root node")
	ErrMeshRef        = errors.New("node references unknown mesh")
	ErrFaceIndex      = errors.New("face references unknown vertex")
	ErrAttributeCount = errors.New("vertex attribute count mismatch")
	ErrCycle          = errors.New("node reachable more than once")
)

// MeshID identifies a mesh within a loaded scene. IDs are assigned from the
// mesh table position at load time and never reused within a session.
type MeshID uint32

// Mesh is read-only triangle geometry owned by the scene.
type Mesh struct {
	Name      string
	Positions [][3]float32
	Normals   [][3]float32 // Optional, one per position
	UVs       [][2]float32 // Optional, one per position
	Faces     [][3]uint32
}

// Empty reports whether the mesh has no vertices.
func (m *Mesh) Empty() bool {
	return len(m.Positions) == 0
}

// HasNormals reports whether per-vertex normals are present.
func (m *Mesh) HasNormals() bool {
	return len(m.Normals) > 0
}

// HasUVs reports whether per-vertex texture coordinates are present.
func (m *Mesh) HasUVs() bool {
	return len(m.UVs) > 0
}

// Node is a scene graph node. Children are exclusively owned by their parent.
type Node struct {
	Name     string
	Local    math.Mat4
	Children []*Node
	Meshes   []MeshID
}

// NewNode creates a node with an identity local transform.
func NewNode(name string) *Node {
	return &Node{Name: name, Local: math.Identity()}
}

// NewNodeTRS creates a node whose local transform is T * R * S.
func NewNodeTRS(name string, t math.Vec3, r math.Quat, s math.Vec3) *Node {
	return &Node{Name: name, Local: math.TRS(t, r, s)}
}

// AddChild appends child and returns it.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// Scene is the loaded model: a node tree plus a flat mesh table.
// It is built once at load and treated as immutable afterwards.
type Scene struct {
	Root   *Node
	Meshes []*Mesh
}

// Mesh returns the mesh with the given id.
func (s *Scene) Mesh(id MeshID) (*Mesh, bool) {
	if int(id) >= len(s.Meshes) {
		return nil, false
	}
	return s.Meshes[id], true
}

// MeshIDs returns every mesh id in table order.
func (s *Scene) MeshIDs() []MeshID {
	ids := make([]MeshID, len(s.Meshes))
	for i := range s.Meshes {
		ids[i] = MeshID(i)
	}
	return ids
}

// Validate checks the structural invariants of the scene and reports every
// violation found, not just the first.
func (s *Scene) Validate() error {
	if s == nil || s.Root == nil {
		return ErrNoRoot
	}

	var errs error
	for i, m := range s.Meshes {
		errs = multierr.Append(errs, validateMesh(MeshID(i), m))
	}

	seen := make(map[*Node]bool)
	stack := []*Node{s.Root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if seen[n] {
			errs = multierr.Append(errs, fmt.Errorf("%w: %q", ErrCycle, n.Name))
			continue
		}
		seen[n] = true

		for _, id := range n.Meshes {
			if int(id) >= len(s.Meshes) {
				errs = multierr.Append(errs, fmt.Errorf("%w: node %q mesh %d (have %d)", ErrMeshRef, n.Name, id, len(s.Meshes)))
			}
		}
		stack = append(stack, n.Children...)
	}
	return errs
}

func validateMesh(id MeshID, m *Mesh) error {
	if m == nil {
		return fmt.Errorf("%w: mesh %d is nil", ErrMeshRef, id)
	}

	var errs error
	n := uint32(len(m.Positions))
	if m.HasNormals() && len(m.Normals) != len(m.Positions) {
		errs = multierr.Append(errs, fmt.Errorf("%w: mesh %d has %d normals for %d positions", ErrAttributeCount, id, len(m.Normals), n))
	}
	if m.HasUVs() && len(m.UVs) != len(m.Positions) {
		errs = multierr.Append(errs, fmt.Errorf("%w: mesh %d has %d uvs for %d positions", ErrAttributeCount, id, len(m.UVs), n))
	}
	for fi, f := range m.Faces {
		if f[0] >= n || f[1] >= n || f[2] >= n {
			errs = multierr.Append(errs, fmt.Errorf("%w: mesh %d face %d %v (have %d)", ErrFaceIndex, id, fi, f, n))
			break
		}
	}
	return errs
}
