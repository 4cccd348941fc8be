package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"trace-engine/geometry"
	"trace-engine/lbvh"
	tmath "trace-engine/math"
	"trace-engine/preview"
	"trace-engine/render"
	"trace-engine/scene"
)

// pathList collects repeatable mesh-path flags.
type pathList []string

func (p *pathList) String() string { return strings.Join(*p, ",") }

func (p *pathList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

func parseTriple(s string) (tmath.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return tmath.Vec3{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var out [3]float32
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return tmath.Vec3{}, fmt.Errorf("component %d of %q: %w", i, s, err)
		}
		out[i] = float32(v)
	}
	return tmath.NewVec3(out[0], out[1], out[2]), nil
}

func main() {
	var objPaths, gltfPaths pathList
	flag.Var(&objPaths, "obj", "Wavefront .obj mesh to trace (repeatable)")
	flag.Var(&gltfPaths, "gltf", "glTF .gltf/.glb mesh to trace (repeatable)")
	var (
		outPath     = flag.String("o", "frame.png", "output image path")
		width       = flag.Int("width", 1280, "frame width in pixels")
		height      = flag.Int("height", 720, "frame height in pixels")
		fov         = flag.Float64("fov", 35, "vertical field of view in degrees")
		leafCap     = flag.Int("leaf", lbvh.DefaultLeafCapacity, "LBVH leaf capacity")
		scaleFlag   = flag.String("scale", "1,1,1", "model scale x,y,z")
		rotateFlag  = flag.String("rotate", "0,0,0", "model rotation in degrees x,y,z")
		transFlag   = flag.String("translate", "0,0,-30", "model translation x,y,z")
		lightFlag   = flag.String("light", "1,0,10", "light position x,y,z")
		showPreview = flag.Bool("preview", false, "display the frame in a window after rendering")
		dumpTree    = flag.Bool("dump", false, "print the LBVH arena to stdout")
	)
	flag.Parse()

	if err := run(objPaths, gltfPaths, *outPath, *width, *height, float32(*fov), *leafCap,
		*scaleFlag, *rotateFlag, *transFlag, *lightFlag, *showPreview, *dumpTree); err != nil {
		fmt.Fprintln(os.Stderr, "trace:", err)
		os.Exit(1)
	}
}

func run(objPaths, gltfPaths pathList, outPath string, width, height int, fov float32,
	leafCap int, scaleFlag, rotateFlag, transFlag, lightFlag string,
	showPreview, dumpTree bool) error {

	scaleV, err := parseTriple(scaleFlag)
	if err != nil {
		return fmt.Errorf("-scale: %w", err)
	}
	rotateV, err := parseTriple(rotateFlag)
	if err != nil {
		return fmt.Errorf("-rotate: %w", err)
	}
	transV, err := parseTriple(transFlag)
	if err != nil {
		return fmt.Errorf("-translate: %w", err)
	}
	lightV, err := parseTriple(lightFlag)
	if err != nil {
		return fmt.Errorf("-light: %w", err)
	}

	prims, err := loadMeshes(objPaths, gltfPaths)
	if err != nil {
		return err
	}
	if len(prims) == 0 {
		// No meshes given: fall back to a small demo scene
		prims = []geometry.Primitive{
			geometry.NewSphere(tmath.NewPoint3(0, 0, 10), 10),
			geometry.NewTriangle(
				tmath.NewPoint3(-25, -15, -10),
				tmath.NewPoint3(25, -15, -10),
				tmath.NewPoint3(0, 20, -10),
			),
		}
	}

	sc := scene.NewScene()
	sc.AddObject(scene.NewObject(prims).
		Scale(scaleV.X, scaleV.Y, scaleV.Z).
		Rotate(rotateV.X, rotateV.Y, rotateV.Z).
		Translate(transV.X, transV.Y, transV.Z))
	sc.AddLight(scene.NewLight(tmath.NewPoint3(lightV.X, lightV.Y, lightV.Z), 0.5))

	fmt.Printf("scene: %d primitives, %d lights\n", len(sc.Primitives), len(sc.Lights))

	start := time.Now()
	tree := sc.BuildLBVH(leafCap)
	fmt.Printf("LBVH construction took: %v (%d nodes)\n", time.Since(start), tree.NodeCount())

	if dumpTree {
		fmt.Print(tree)
	}

	start = time.Now()
	frame := render.NewRenderer(width, height).Render(sc, tree, render.NewCamera(width, height, fov), render.Phong)
	fmt.Printf("tracing took: %v\n", time.Since(start))

	if err := render.WritePNG(outPath, frame); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)

	if showPreview {
		return preview.Show(frame, "trace-engine — "+outPath)
	}
	return nil
}

// loadMeshes reads every mesh file concurrently and concatenates the
// primitives: all -obj files first, then all -gltf files, each group in
// flag order.
func loadMeshes(objPaths, gltfPaths pathList) ([]geometry.Primitive, error) {
	type job struct {
		path string
		load func(string) ([]geometry.Primitive, error)
	}
	var jobs []job
	for _, p := range objPaths {
		jobs = append(jobs, job{p, scene.LoadOBJ})
	}
	for _, p := range gltfPaths {
		jobs = append(jobs, job{p, scene.LoadGLTF})
	}

	loaded := make([][]geometry.Primitive, len(jobs))
	var g errgroup.Group
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			prims, err := j.load(j.path)
			if err != nil {
				return err
			}
			loaded[i] = prims
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var prims []geometry.Primitive
	for _, batch := range loaded {
		prims = append(prims, batch...)
	}
	return prims, nil
}
