package grass

import "github.com/go-gl/mathgl/mgl32"

// ComputeNormals returns smooth per-vertex normals for a triangle list.
// Each face contributes its unit normal (counter-clockwise winding) to its
// three vertices; the sums are normalised. Vertices touched only by
// degenerate faces keep a zero normal.
func ComputeNormals(positions []float32, indices []uint32) []float32 {
	normals := make([]float32, len(positions))
	at := func(i uint32) mgl32.Vec3 {
		return mgl32.Vec3{positions[i*3], positions[i*3+1], positions[i*3+2]}
	}

	for t := 0; t+2 < len(indices); t += 3 {
		i0, i1, i2 := indices[t], indices[t+1], indices[t+2]
		p0 := at(i0)
		face := at(i1).Sub(p0).Cross(at(i2).Sub(p0))
		l := face.Len()
		if l == 0 {
			continue
		}
		face = face.Mul(1 / l)
		for _, i := range [3]uint32{i0, i1, i2} {
			normals[i*3] += face[0]
			normals[i*3+1] += face[1]
			normals[i*3+2] += face[2]
		}
	}

	for i := 0; i+2 < len(normals); i += 3 {
		n := mgl32.Vec3{normals[i], normals[i+1], normals[i+2]}
		l := n.Len()
		if l == 0 {
			continue
		}
		normals[i] = n[0] / l
		normals[i+1] = n[1] / l
		normals[i+2] = n[2] / l
	}
	return normals
}
