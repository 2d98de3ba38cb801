package viewer

import (
	"github.com/Faultbox/partview/internal/engine/collision"
	"github.com/Faultbox/partview/internal/engine/meshstate"
	"github.com/Faultbox/partview/internal/engine/scene"
	"github.com/Faultbox/partview/pkg/math"
)

// MeshFrame is what the renderer needs to draw one mesh.
type MeshFrame struct {
	ID    scene.MeshID
	Mesh  *scene.Mesh
	World math.Mat4 // Includes the animation spin for the animated mesh
	State meshstate.MeshState
	// Overlapping is set when collision highlighting is on and the mesh
	// overlaps another visible mesh.
	Overlapping bool
	Bounds      collision.AABB
}

// FrameData is a snapshot of everything drawn in one frame.
type FrameData struct {
	Meshes     []MeshFrame // Visible meshes only, in id order
	Overlaps   collision.OverlapSet
	View       math.Mat4
	Projection math.Mat4
	Material   Material
	Lights     []Light

	AnimationAngle float32
	AnimatedID     scene.MeshID
	Animated       bool
	Highlight      bool
}

// Frame composes transforms, detects overlaps and snapshots the state for
// drawing. The spin of the animated mesh is applied about its local origin,
// before its offset; it does not affect collision or picking.
func (c *Controller) Frame() FrameData {
	st := c.state
	fd := FrameData{
		View:           st.Camera.ViewMatrix(),
		Projection:     st.Camera.Projection(st.Aspect()),
		Material:       st.Material,
		Lights:         append([]Light(nil), st.Lights...),
		AnimationAngle: st.Clock.Angle(),
		Highlight:      st.Detector.Enabled(),
	}
	if id, ok := st.Clock.Target(); ok && st.Clock.Enabled() {
		fd.AnimatedID, fd.Animated = id, true
	}
	if st.Scene == nil {
		return fd
	}

	transforms := scene.ComputeWorldTransforms(st.Scene, st.Store)
	fd.Overlaps = st.Detector.Detect(st.Scene, transforms, st.Store)

	for _, id := range st.Scene.MeshIDs() {
		state := st.Store.Get(id)
		world, ok := transforms[id]
		if !state.Visible || !ok {
			continue
		}
		mesh, _ := st.Scene.Mesh(id)
		bounds, _ := collision.ComputeAABB(mesh, world)
		if fd.Animated && id == fd.AnimatedID {
			world = world.Mul(math.RotateY(math.Radians(fd.AnimationAngle)))
		}
		fd.Meshes = append(fd.Meshes, MeshFrame{
			ID:          id,
			Mesh:        mesh,
			World:       world,
			State:       state,
			Overlapping: fd.Overlaps.Involved(id),
			Bounds:      bounds,
		})
	}
	return fd
}
