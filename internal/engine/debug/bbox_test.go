package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/partview/internal/engine/collision"
	"github.com/Faultbox/partview/pkg/math"
)

func TestGenerateBBoxWireframeVertices(t *testing.T) {
	v := GenerateBBoxWireframeVertices(0, 0, 0, 1, 2, 3)
	require.Len(t, v, BBoxWireframeVertexCount*3)

	// Every edge is axis aligned: endpoints differ in exactly one coordinate.
	for i := 0; i < len(v); i += 6 {
		diff := 0
		for k := 0; k < 3; k++ {
			if v[i+k] != v[i+3+k] {
				diff++
			}
		}
		assert.Equal(t, 1, diff, "edge %d", i/6)
	}
}

func TestAppendAABBWireframe(t *testing.T) {
	box := collision.AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}

	v := AppendAABBWireframe(nil, box, 0.5)
	require.Len(t, v, BBoxWireframeVertexCount*3)
	for _, c := range v {
		assert.Equal(t, float32(1.5), max(c, -c))
	}

	v = AppendAABBWireframe(v, box, 0)
	assert.Len(t, v, 2*BBoxWireframeVertexCount*3)

	assert.Empty(t, AppendAABBWireframe(nil, collision.Empty(), 0))
}
