package geometry

// Segment represents a line segment in 3D space
type Segment struct {
	A, B Vector3
}

// Length returns the length of the segment
func (s Segment) Length() float64 {
	return s.A.Distance(s.B)
}

// intersectionT returns the interpolation parameter where the edge from v1 to
// v2 crosses the horizontal plane at z
func intersectionT(v1, v2 Vector3, z float64) float64 {
	return (z - v1.Z) / (v2.Z - v1.Z)
}

// SectionAtZ intersects a triangle with the horizontal plane at z and returns
// the resulting cross-section segment. The second return value is false when
// the triangle does not cross the plane or the intersection is degenerate.
func SectionAtZ(t Triangle, z float64) (Segment, bool) {
	vertices := [3]Vector3{t.V1, t.V2, t.V3}

	above := [3]bool{}
	aboveCount := 0
	for i, v := range vertices {
		if v.Z >= z {
			above[i] = true
			aboveCount++
		}
	}

	if aboveCount == 0 || aboveCount == 3 {
		return Segment{}, false
	}

	// Exactly one vertex is isolated on its side of the plane. The two edges
	// from that vertex cross the plane and give the section endpoints.
	var isolated int
	if aboveCount == 1 {
		for i := 0; i < 3; i++ {
			if above[i] {
				isolated = i
			}
		}
	} else {
		for i := 0; i < 3; i++ {
			if !above[i] {
				isolated = i
			}
		}
	}

	v0 := vertices[isolated]
	v1 := vertices[(isolated+1)%3]
	v2 := vertices[(isolated+2)%3]

	seg := Segment{
		A: v0.Lerp(v1, intersectionT(v0, v1, z)),
		B: v0.Lerp(v2, intersectionT(v0, v2, z)),
	}
	if seg.A.Distance(seg.B) < 1e-12 {
		return Segment{}, false
	}
	return seg, true
}

// ClipBelowZ clips a triangle against the horizontal plane at z, keeping the
// part with Z <= z. Returns zero, one or two triangles. The original normal
// is preserved on all pieces.
func ClipBelowZ(t Triangle, z float64) []Triangle {
	vertices := [3]Vector3{t.V1, t.V2, t.V3}

	inside := [3]bool{}
	insideCount := 0
	for i, v := range vertices {
		if v.Z <= z {
			inside[i] = true
			insideCount++
		}
	}

	switch insideCount {
	case 3:
		return []Triangle{t}
	case 0:
		return nil
	}

	if insideCount == 1 {
		var insideIdx int
		for i := 0; i < 3; i++ {
			if inside[i] {
				insideIdx = i
			}
		}

		v0 := vertices[insideIdx]
		v1 := vertices[(insideIdx+1)%3]
		v2 := vertices[(insideIdx+2)%3]

		newV1 := v0.Lerp(v1, intersectionT(v0, v1, z))
		newV2 := v0.Lerp(v2, intersectionT(v0, v2, z))

		return []Triangle{{Normal: t.Normal, V1: v0, V2: newV1, V3: newV2}}
	}

	// Two vertices inside, one outside. The kept quad splits into two
	// triangles.
	var outsideIdx int
	for i := 0; i < 3; i++ {
		if !inside[i] {
			outsideIdx = i
		}
	}

	v0 := vertices[outsideIdx]
	v1 := vertices[(outsideIdx+1)%3]
	v2 := vertices[(outsideIdx+2)%3]

	newV1 := v0.Lerp(v1, intersectionT(v0, v1, z))
	newV2 := v0.Lerp(v2, intersectionT(v0, v2, z))

	return []Triangle{
		{Normal: t.Normal, V1: v1, V2: v2, V3: newV1},
		{Normal: t.Normal, V1: v2, V2: newV2, V3: newV1},
	}
}
