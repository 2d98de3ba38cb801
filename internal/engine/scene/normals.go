package scene

import "github.com/Faultbox/partview/pkg/math"

// VertexNormals returns per-vertex normals for m. Stored normals are
// returned as is. Otherwise face normals are accumulated with area weighting
// and averaged across vertices that share a position, so seams left by
// attribute splitting do not show.
func (m *Mesh) VertexNormals() [][3]float32 {
	if m.HasNormals() {
		return m.Normals
	}

	sums := make([]math.Vec3, len(m.Positions))
	for _, f := range m.Faces {
		a, b, c := math.V3(m.Positions[f[0]]), math.V3(m.Positions[f[1]]), math.V3(m.Positions[f[2]])
		n := b.Sub(a).Cross(c.Sub(a))
		for _, i := range f {
			sums[i] = sums[i].Add(n)
		}
	}

	const epsilon float32 = 0.001
	shared := make(map[[3]int32][]int)
	for i, p := range m.Positions {
		key := [3]int32{int32(p[0] / epsilon), int32(p[1] / epsilon), int32(p[2] / epsilon)}
		shared[key] = append(shared[key], i)
	}

	out := make([][3]float32, len(m.Positions))
	for _, idxs := range shared {
		var sum math.Vec3
		for _, i := range idxs {
			sum = sum.Add(sums[i])
		}
		n := math.Vec3{Y: 1}
		if sum.Length() > 1e-8 {
			n = sum.Normalize()
		}
		for _, i := range idxs {
			out[i] = n.Array()
		}
	}
	return out
}
