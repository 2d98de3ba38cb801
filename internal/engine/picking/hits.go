package picking

import "sort"

// hitSet accumulates per-name depth ranges.
type hitSet map[uint32]*Hit

func (s hitSet) record(name uint32, z float32) {
	h, ok := s[name]
	if !ok {
		s[name] = &Hit{Name: name, MinDepth: z, MaxDepth: z}
		return
	}
	h.MinDepth = min(h.MinDepth, z)
	h.MaxDepth = max(h.MaxDepth, z)
}

func (s hitSet) sorted() []Hit {
	out := make([]Hit, 0, len(s))
	for _, h := range s {
		out = append(out, *h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// EncodeName packs the low 24 bits of a selection name into an RGB color,
// least significant byte in red.
func EncodeName(name uint32) [3]byte {
	return [3]byte{byte(name), byte(name >> 8), byte(name >> 16)}
}

// DecodeName reverses EncodeName.
func DecodeName(r, g, b byte) uint32 {
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16
}

// HitsFromPixels builds hit records from a read-back region of an
// offscreen selection pass: RGBA color with EncodeName tags and one depth
// value per pixel. Pixels tagged 0 are background.
func HitsFromPixels(color []byte, depth []float32) []Hit {
	set := make(hitSet)
	for i := 0; i < len(depth) && 4*i+2 < len(color); i++ {
		name := DecodeName(color[4*i], color[4*i+1], color[4*i+2])
		if name == 0 {
			continue
		}
		set.record(name, depth[i])
	}
	return set.sorted()
}
