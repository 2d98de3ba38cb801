// Package collision detects overlapping parts using world-space axis-aligned
// bounding boxes.
package collision

import (
	gomath "math"

	"github.com/Faultbox/partview/internal/engine/scene"
	"github.com/Faultbox/partview/pkg/math"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// Empty returns an inverted box that any point extends.
func Empty() AABB {
	inf := float32(gomath.Inf(1))
	return AABB{
		Min: math.Vec3{X: inf, Y: inf, Z: inf},
		Max: math.Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// IsEmpty reports whether the box contains no points.
func (a AABB) IsEmpty() bool {
	return a.Min.X > a.Max.X || a.Min.Y > a.Max.Y || a.Min.Z > a.Max.Z
}

// Extend grows the box to contain p.
func (a AABB) Extend(p math.Vec3) AABB {
	return AABB{Min: a.Min.Min(p), Max: a.Max.Max(p)}
}

// Union returns the smallest box containing a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{Min: a.Min.Min(b.Min), Max: a.Max.Max(b.Max)}
}

// Overlaps reports whether the boxes intersect on all three axes.
// Touching faces count as overlapping.
func (a AABB) Overlaps(b AABB) bool {
	return a.Max.X >= b.Min.X && a.Min.X <= b.Max.X &&
		a.Max.Y >= b.Min.Y && a.Min.Y <= b.Max.Y &&
		a.Max.Z >= b.Min.Z && a.Min.Z <= b.Max.Z
}

// ContainsPoint reports whether p lies inside or on the box.
func (a AABB) ContainsPoint(p math.Vec3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// Size returns the extent along each axis.
func (a AABB) Size() math.Vec3 {
	return a.Max.Sub(a.Min)
}

// Center returns the box midpoint.
func (a AABB) Center() math.Vec3 {
	return a.Min.Add(a.Max).Scale(0.5)
}

// Corners returns the eight box corners.
func (a AABB) Corners() [8]math.Vec3 {
	return [8]math.Vec3{
		{X: a.Min.X, Y: a.Min.Y, Z: a.Min.Z},
		{X: a.Max.X, Y: a.Min.Y, Z: a.Min.Z},
		{X: a.Min.X, Y: a.Max.Y, Z: a.Min.Z},
		{X: a.Max.X, Y: a.Max.Y, Z: a.Min.Z},
		{X: a.Min.X, Y: a.Min.Y, Z: a.Max.Z},
		{X: a.Max.X, Y: a.Min.Y, Z: a.Max.Z},
		{X: a.Min.X, Y: a.Max.Y, Z: a.Max.Z},
		{X: a.Max.X, Y: a.Max.Y, Z: a.Max.Z},
	}
}

// ComputeAABB returns the world-space bounds of mesh under world.
// Every vertex is transformed, so the box is tight for any affine transform.
// ok is false for meshes without vertices.
func ComputeAABB(mesh *scene.Mesh, world math.Mat4) (box AABB, ok bool) {
	if mesh == nil || mesh.Empty() {
		return AABB{}, false
	}
	box = Empty()
	for _, p := range mesh.Positions {
		box = box.Extend(math.V3(world.TransformPoint(p)))
	}
	return box, true
}

// SceneBounds returns the union of the structural world bounds of every mesh,
// ignoring interactive offsets and visibility. ok is false if no mesh has
// vertices.
func SceneBounds(s *scene.Scene) (AABB, bool) {
	box := Empty()
	found := false
	for id, world := range scene.ComputeWorldTransforms(s, nil) {
		m, exists := s.Mesh(id)
		if !exists {
			continue
		}
		if b, ok := ComputeAABB(m, world); ok {
			box = box.Union(b)
			found = true
		}
	}
	return box, found
}
