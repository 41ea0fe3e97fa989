// Package io exports generated meshes to Wavefront OBJ and binary glTF.
package io

import (
	"bufio"
	"fmt"
	goio "io"
	"os"

	"grass-field/scene"
)

// ExportOBJ writes meshes as OBJ objects with positions, normals and
// 1-based triangle faces.
func ExportOBJ(w goio.Writer, meshes ...*scene.Mesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# Exported by grass-field")
	fmt.Fprintln(bw)

	vertexOffset := uint32(0)
	for _, mesh := range meshes {
		if err := mesh.Validate(); err != nil {
			return fmt.Errorf("export obj: %w", err)
		}
		hasNormals := len(mesh.Normals) == len(mesh.Positions) && len(mesh.Normals) > 0

		fmt.Fprintf(bw, "o %s\n", mesh.Name)
		for i := 0; i+2 < len(mesh.Positions); i += 3 {
			fmt.Fprintf(bw, "v %f %f %f\n", mesh.Positions[i], mesh.Positions[i+1], mesh.Positions[i+2])
		}
		if hasNormals {
			for i := 0; i+2 < len(mesh.Normals); i += 3 {
				fmt.Fprintf(bw, "vn %f %f %f\n", mesh.Normals[i], mesh.Normals[i+1], mesh.Normals[i+2])
			}
		}

		if mesh.Material != nil {
			fmt.Fprintf(bw, "usemtl %s\n", mesh.Material.MaterialName())
		}
		for i := 0; i+2 < len(mesh.Indices); i += 3 {
			i0 := mesh.Indices[i] + 1 + vertexOffset
			i1 := mesh.Indices[i+1] + 1 + vertexOffset
			i2 := mesh.Indices[i+2] + 1 + vertexOffset
			if hasNormals {
				fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", i0, i0, i1, i1, i2, i2)
			} else {
				fmt.Fprintf(bw, "f %d %d %d\n", i0, i1, i2)
			}
		}

		vertexOffset += uint32(mesh.VertexCount())
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}

// SaveOBJ writes meshes to an .obj file at path.
func SaveOBJ(path string, meshes ...*scene.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create OBJ file: %w", err)
	}
	if err := ExportOBJ(f, meshes...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
