package io

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"grass-field/core"
	"grass-field/scene"
)

// Shader material values baked into vertex colours on export.
const (
	gradientRoot = "color1"
	gradientTip  = "color2"
)

// ExportGLB writes meshes to a binary glTF file, one node per mesh.
// Standard materials become a matte base colour. A shader material carrying
// color1/color2 has its height gradient baked into COLOR_0.
func ExportGLB(path string, meshes ...*scene.Mesh) error {
	doc, err := BuildDocument(meshes...)
	if err != nil {
		return err
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("export glb %q: %w", path, err)
	}
	fmt.Printf("[Export] %s (%d meshes)\n", path, len(meshes))
	return nil
}

// BuildDocument converts meshes into an in-memory glTF document.
func BuildDocument(meshes ...*scene.Mesh) (*gltf.Document, error) {
	doc := gltf.NewDocument()

	for _, mesh := range meshes {
		if err := mesh.Validate(); err != nil {
			return nil, fmt.Errorf("export glb: %w", err)
		}
		if mesh.VertexCount() == 0 {
			continue
		}

		positions := toVec3(mesh.Positions)
		attrs := gltf.PrimitiveAttributes{
			"POSITION": modeler.WritePosition(doc, positions),
		}
		if len(mesh.Normals) == len(mesh.Positions) {
			attrs["NORMAL"] = modeler.WriteNormal(doc, toVec3(mesh.Normals))
		}

		prim := &gltf.Primitive{Attributes: attrs}
		if len(mesh.Indices) > 0 {
			prim.Indices = gltf.Index(modeler.WriteIndices(doc, mesh.Indices))
		}

		mat := &gltf.Material{
			Name: mesh.Name,
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &[4]float64{1, 1, 1, 1},
				MetallicFactor:  gltf.Float(0),
				RoughnessFactor: gltf.Float(1),
			},
		}
		switch m := mesh.Material.(type) {
		case *scene.StandardMaterial:
			mat.Name = m.Name
			mat.DoubleSided = !m.BackFaceCulling
			c := m.DiffuseColor
			mat.PBRMetallicRoughness.BaseColorFactor = &[4]float64{float64(c.R), float64(c.G), float64(c.B), 1}
		case *scene.ShaderMaterial:
			mat.Name = m.Name
			mat.DoubleSided = !m.BackFaceCulling
			if colors, ok := bakeGradient(m, positions); ok {
				attrs["COLOR_0"] = modeler.WriteColor(doc, colors)
			}
		}
		doc.Materials = append(doc.Materials, mat)
		prim.Material = gltf.Index(len(doc.Materials) - 1)

		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name:       mesh.Name,
			Primitives: []*gltf.Primitive{prim},
		})
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: mesh.Name,
			Mesh: gltf.Index(len(doc.Meshes) - 1),
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}
	return doc, nil
}

// bakeGradient evaluates mix(color1, color2, y) per vertex.
func bakeGradient(m *scene.ShaderMaterial, positions [][3]float32) ([][4]float32, bool) {
	rv, ok1 := m.Value(gradientRoot)
	tv, ok2 := m.Value(gradientTip)
	root, ok3 := rv.(core.Color)
	tip, ok4 := tv.(core.Color)
	if !(ok1 && ok2 && ok3 && ok4) {
		return nil, false
	}
	out := make([][4]float32, len(positions))
	for i, p := range positions {
		c := root.Lerp(tip, p[1])
		out[i] = [4]float32{c.R, c.G, c.B, 1}
	}
	return out, true
}

func toVec3(flat []float32) [][3]float32 {
	out := make([][3]float32, len(flat)/3)
	for i := range out {
		out[i] = [3]float32{flat[i*3], flat[i*3+1], flat[i*3+2]}
	}
	return out
}
