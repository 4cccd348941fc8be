package render

import (
	"image"
	"image/color"
	"runtime"
	"sync"

	"trace-engine/lbvh"
	"trace-engine/scene"
)

// backgroundGray fills pixels whose primary ray misses everything.
const backgroundGray = 30

// Renderer traces one frame: every pixel gets a primary ray, the nearest
// hit is shaded, misses get the background. Rows are split into disjoint
// bands, one worker goroutine per band; the tree and scene are shared
// read-only, so no synchronization beyond the final join is needed.
type Renderer struct {
	Width, Height int

	// Workers caps the row-band fan-out; 0 means one band per CPU.
	Workers int
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{Width: width, Height: height}
}

// Render traces the scene through the given tree and camera into a new
// image. Pixel y counts up from the bottom of the frame; rows are written
// top-down into the image so the output is already display-oriented.
func (r *Renderer) Render(s *scene.Scene, tree *lbvh.Tree, cam *Camera, shade Shader) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	band := (r.Height + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		y0, y1 := w*band, (w+1)*band
		if y1 > r.Height {
			y1 = r.Height
		}
		if y0 >= y1 {
			continue
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			r.renderBand(img, s, tree, cam, shade, y0, y1)
		}(y0, y1)
	}
	wg.Wait()
	return img
}

func (r *Renderer) renderBand(img *image.RGBA, s *scene.Scene, tree *lbvh.Tree, cam *Camera, shade Shader, y0, y1 int) {
	for y := y0; y < y1; y++ {
		for x := 0; x < r.Width; x++ {
			v := r.tracePixel(s, tree, cam, shade, x, y)
			img.SetRGBA(x, r.Height-1-y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
}

func (r *Renderer) tracePixel(s *scene.Scene, tree *lbvh.Tree, cam *Camera, shade Shader, x, y int) uint8 {
	ray := cam.PrimaryRay(x, y)
	hit, ok := tree.Traverse(ray)
	if !ok {
		return backgroundGray
	}

	surface := ray.At(hit.Distance)
	normal := s.Primitives[hit.Index].Normal(surface)
	illumination := shade(surface, cam.Eye, normal, s.Lights)
	if illumination > 1 {
		illumination = 1
	}
	return uint8(illumination * 255)
}
