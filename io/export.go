package io

import (
	"fmt"
	"path/filepath"
	"strings"

	"grass-field/scene"
)

// Export writes meshes to path, choosing glTF binary or OBJ from the
// extension.
func Export(path string, meshes ...*scene.Mesh) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb":
		return ExportGLB(path, meshes...)
	case ".obj":
		if err := SaveOBJ(path, meshes...); err != nil {
			return err
		}
		fmt.Printf("[Export] %s (%d meshes)\n", path, len(meshes))
		return nil
	default:
		return fmt.Errorf("export %q: unsupported format (want .glb or .obj)", path)
	}
}
