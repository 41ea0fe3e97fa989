package scene

// CreateGround generates a flat XZ grid centred on the origin, facing +Y.
func CreateGround(name string, width, depth float32, subdivisions int) *Mesh {
	if subdivisions < 1 {
		subdivisions = 1
	}

	n := (subdivisions + 1) * (subdivisions + 1)
	positions := make([]float32, 0, n*3)
	normals := make([]float32, 0, n*3)
	indices := make([]uint32, 0, subdivisions*subdivisions*6)

	halfW := width / 2.0
	halfD := depth / 2.0

	for z := 0; z <= subdivisions; z++ {
		for x := 0; x <= subdivisions; x++ {
			u := float32(x) / float32(subdivisions)
			v := float32(z) / float32(subdivisions)
			positions = append(positions, -halfW+u*width, 0, -halfD+v*depth)
			normals = append(normals, 0, 1, 0)
		}
	}

	for z := 0; z < subdivisions; z++ {
		for x := 0; x < subdivisions; x++ {
			topLeft := uint32(z*(subdivisions+1) + x)
			topRight := topLeft + 1
			bottomLeft := topLeft + uint32(subdivisions+1)
			bottomRight := bottomLeft + 1

			indices = append(indices, topLeft, bottomLeft, topRight)
			indices = append(indices, topRight, bottomLeft, bottomRight)
		}
	}

	return NewMesh(name, positions, normals, indices)
}
