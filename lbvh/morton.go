package lbvh

import "trace-engine/geometry"

// Item pairs a primitive's position in the scene's primitive sequence with
// the Morton key of its centroid. The key interleaves three 16-bit
// quantized coordinates into the low 48 bits, x in the most significant
// position of each triple, so sorting by key orders centroids along a
// z-order curve.
type Item struct {
	Index uint32
	Key   uint64
}

// Linearize quantizes every primitive's centroid against the overall scene
// bounds and returns one keyed item per primitive, in input order.
func Linearize(prims []geometry.Primitive) []Item {
	top := geometry.EmptyAABB()
	for _, p := range prims {
		top = top.Union(p.BoundingBox())
	}
	lo := top.Min
	r := top.Max.Sub(top.Min)

	items := make([]Item, len(prims))
	for i, p := range prims {
		c := p.Centroid()
		x := quantize(c.X-lo.X, r.X)
		y := quantize(c.Y-lo.Y, r.Y)
		z := quantize(c.Z-lo.Z, r.Z)
		items[i] = Item{Index: uint32(i), Key: encodeMorton(x, y, z)}
	}
	return items
}

// quantize maps an offset within [0, r] onto [0, 65535]. A degenerate axis
// (r = 0) quantizes to 0; the tree stays correct, just uninformative along
// that axis.
func quantize(d, r float32) uint16 {
	if r == 0 {
		return 0
	}
	v := d * 65535 / r
	if v <= 0 {
		return 0
	}
	if v >= 65535 {
		return 65535
	}
	return uint16(v)
}

func encodeMorton(x, y, z uint16) uint64 {
	return spreadBits(x)<<2 | spreadBits(y)<<1 | spreadBits(z)
}

// spreadBits distributes the 16 input bits to every third output bit.
func spreadBits(v uint16) uint64 {
	x := uint64(v)
	x = (x | x<<32) & 0x001f00000000ffff
	x = (x | x<<16) & 0x001f0000ff0000ff
	x = (x | x<<8) & 0x100f00f00f00f00f
	x = (x | x<<4) & 0x10c30c30c30c30c3
	x = (x | x<<2) & 0x1249249249249249
	return x
}
