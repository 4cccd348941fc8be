package scene

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"trace-engine/geometry"
	tmath "trace-engine/math"
)

// LoadGLTF opens a .glb or .gltf file and returns its geometry as
// model-space triangles, every mesh primitive flattened into one batch.
// Like the OBJ path, placement is the caller's job: wrap the result in an
// Object and set its transform. Materials, textures, and the node hierarchy
// carry no information the tracer uses and are ignored.
func LoadGLTF(path string) ([]geometry.Primitive, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}

	var prims []geometry.Primitive
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			tris, err := gltfPrimitiveTriangles(doc, *prim)
			if err != nil {
				return nil, fmt.Errorf("gltf %q: mesh %d prim %d: %w", path, mi, pi, err)
			}
			prims = append(prims, tris...)
		}
	}
	if len(prims) == 0 {
		return nil, fmt.Errorf("no geometry found in %q", path)
	}
	return prims, nil
}

func gltfPrimitiveTriangles(doc *gltf.Document, prim gltf.Primitive) ([]geometry.Primitive, error) {
	if prim.Mode != gltf.PrimitiveTriangles {
		// Lines and points have no surface to trace
		return nil, nil
	}

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	tris := make([]geometry.Primitive, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		a := positions[indices[i]]
		b := positions[indices[i+1]]
		c := positions[indices[i+2]]
		tris = append(tris, geometry.NewTriangle(
			tmath.NewPoint3(a[0], a[1], a[2]),
			tmath.NewPoint3(b[0], b[1], b[2]),
			tmath.NewPoint3(c[0], c[1], c[2]),
		))
	}
	return tris, nil
}
