package scene

import "github.com/Faultbox/partview/pkg/math"

// OffsetSource supplies the interactive translation for a mesh.
type OffsetSource interface {
	Offset(id MeshID) math.Vec3
}

// ComputeWorldTransforms walks the node tree depth-first and returns the world
// transform of every referenced mesh. A node's world transform is its parent's
// world transform times its local transform; the mesh offset from offsets is
// applied as a translation after the structural transform. A mesh referenced
// by more than one node keeps the transform of its first visit.
// offsets may be nil.
func ComputeWorldTransforms(s *Scene, offsets OffsetSource) map[MeshID]math.Mat4 {
	out := make(map[MeshID]math.Mat4, len(s.Meshes))
	walk(s, func(n *Node, world math.Mat4) {
		for _, id := range n.Meshes {
			if _, done := out[id]; done {
				continue
			}
			m := world
			if offsets != nil {
				m = math.TranslateVec(offsets.Offset(id)).Mul(world)
			}
			out[id] = m
		}
	})
	return out
}

// NodeWorldTransforms returns the structural world transform of every node.
func NodeWorldTransforms(s *Scene) map[*Node]math.Mat4 {
	out := make(map[*Node]math.Mat4)
	walk(s, func(n *Node, world math.Mat4) {
		out[n] = world
	})
	return out
}

type frame struct {
	node   *Node
	parent math.Mat4
}

// walk visits nodes in depth-first, child order using an explicit stack.
// Nodes reachable more than once are visited once.
func walk(s *Scene, visit func(n *Node, world math.Mat4)) {
	if s == nil || s.Root == nil {
		return
	}

	seen := make(map[*Node]bool)
	stack := []frame{{node: s.Root, parent: math.Identity()}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[f.node] {
			continue
		}
		seen[f.node] = true

		world := f.parent.Mul(f.node.Local)
		visit(f.node, world)

		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: f.node.Children[i], parent: world})
		}
	}
}
