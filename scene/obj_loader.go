package scene

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"trace-engine/geometry"
	tmath "trace-engine/math"
)

// LoadOBJ parses a Wavefront .obj file into model-space triangles. Only
// vertex positions and faces matter to the tracer; normals, UVs, materials,
// and object/group structure are skipped. Faces with more than three
// vertices are fan-triangulated.
func LoadOBJ(path string) ([]geometry.Primitive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	var positions []tmath.Point3
	var prims []geometry.Primitive

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				continue
			}
			x, _ := strconv.ParseFloat(fields[1], 32)
			y, _ := strconv.ParseFloat(fields[2], 32)
			z, _ := strconv.ParseFloat(fields[3], 32)
			positions = append(positions, tmath.NewPoint3(float32(x), float32(y), float32(z)))

		case "f":
			if len(fields) < 4 {
				continue
			}
			corners := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				idx, ok := parsePositionIndex(tok, len(positions))
				if !ok {
					return nil, fmt.Errorf("obj %q: bad face vertex %q", path, tok)
				}
				corners = append(corners, idx)
			}
			// Fan triangulation: 0-1-2, 0-2-3, ...
			for i := 1; i+1 < len(corners); i++ {
				prims = append(prims, geometry.NewTriangle(
					positions[corners[0]],
					positions[corners[i]],
					positions[corners[i+1]],
				))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan obj %q: %w", path, err)
	}
	if len(prims) == 0 {
		return nil, fmt.Errorf("no geometry found in %q", path)
	}
	return prims, nil
}

// parsePositionIndex resolves one face vertex token ("v", "v/vt", "v//vn",
// "v/vt/vn") to a 0-based position index. OBJ indices are 1-based, with
// negative values counting back from the end of the position list.
func parsePositionIndex(tok string, numPositions int) (int, bool) {
	raw := tok
	if slash := strings.IndexByte(tok, '/'); slash >= 0 {
		raw = tok[:slash]
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n == 0 {
		return 0, false
	}
	idx := n - 1
	if n < 0 {
		idx = numPositions + n
	}
	if idx < 0 || idx >= numPositions {
		return 0, false
	}
	return idx, true
}
