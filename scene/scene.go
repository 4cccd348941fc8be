package scene

import (
	"trace-engine/geometry"
	"trace-engine/lbvh"
	tmath "trace-engine/math"
)

// Scene owns the lights and the world-space primitive sequence the tracer
// indexes. Objects are flattened into primitives at add time: the model
// transform is applied once, so tracing never touches matrices.
type Scene struct {
	Lights     []Light
	Primitives []geometry.Primitive
}

func NewScene() *Scene {
	return &Scene{}
}

// AddObject applies the object's model transform to every primitive and
// appends the results to the scene sequence.
func (s *Scene) AddObject(o *Object) *Scene {
	model := o.modelMatrix()
	for _, p := range o.prims {
		s.Primitives = append(s.Primitives, p.Transform(model))
	}
	return s
}

func (s *Scene) AddLight(l Light) *Scene {
	s.Lights = append(s.Lights, l)
	return s
}

// BuildLBVH indexes the current primitive sequence. The scene must not be
// mutated while the returned tree is in use.
func (s *Scene) BuildLBVH(leafCap int) *lbvh.Tree {
	return lbvh.BuildParallel(s.Primitives, leafCap)
}

// Object is a model-space primitive batch plus its placement in the world.
// Transform setters return the object for chaining:
//
//	scene.NewObject(prims).Scale(7, 7, 7).Rotate(30, -50, 0).Translate(5, -8, -50)
type Object struct {
	prims       []geometry.Primitive
	scale       tmath.Vec3
	rotation    tmath.Vec3 // per-axis degrees
	translation tmath.Vec3
}

func NewObject(prims []geometry.Primitive) *Object {
	return &Object{prims: prims, scale: tmath.Vec3One}
}

func (o *Object) Scale(x, y, z float32) *Object {
	o.scale = tmath.NewVec3(x, y, z)
	return o
}

func (o *Object) Rotate(x, y, z float32) *Object {
	o.rotation = tmath.NewVec3(x, y, z)
	return o
}

func (o *Object) Translate(x, y, z float32) *Object {
	o.translation = tmath.NewVec3(x, y, z)
	return o
}

// modelMatrix composes T·Rx·Ry·Rz·S: scale in model space first, then
// rotate, then place in the world.
func (o *Object) modelMatrix() tmath.Mat4 {
	return tmath.Mat4Identity().
		Translate(o.translation).
		RotateX(o.rotation.X).
		RotateY(o.rotation.Y).
		RotateZ(o.rotation.Z).
		Scale(o.scale)
}
