// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry

// MakePlaneGeometry builds a flat, subdivided rectangular mesh centered at
// the origin in the XZ plane, the Go equivalent of the source's
// makePlaneGeo. heightFunc, if non-nil, perturbs each vertex's Y coordinate
// as a function of its (x, z) position; nil means flat.
func MakePlaneGeometry(width, height float32, segmentsX, segmentsZ uint32, heightFunc func(x, z float32) float32) GeometryData {
	if segmentsX == 0 {
		segmentsX = 1
	}
	if segmentsZ == 0 {
		segmentsZ = 1
	}
	if heightFunc == nil {
		heightFunc = func(float32, float32) float32 { return 0 }
	}

	var verts []Vertex
	for zi := uint32(0); zi <= segmentsZ; zi++ {
		for xi := uint32(0); xi <= segmentsX; xi++ {
			x := (float32(xi)/float32(segmentsX)-0.5)*width
			z := (float32(zi)/float32(segmentsZ)-0.5)*height
			y := heightFunc(x, z)
			verts = append(verts, Vertex{
				Position: [3]float32{x, y, z},
				Normal:   [3]float32{0, 1, 0},
				UV:       [2]float32{float32(xi) / float32(segmentsX), float32(zi) / float32(segmentsZ)},
			})
		}
	}

	var indices []uint32
	stride := segmentsX + 1
	for zi := uint32(0); zi < segmentsZ; zi++ {
		for xi := uint32(0); xi < segmentsX; xi++ {
			a := zi*stride + xi
			b := a + 1
			c := a + stride
			d := c + 1
			indices = append(indices, a, c, b, b, c, d)
		}
	}

	return GeometryData{Vertices: verts, Indices: indices}
}

// cubeFace describes one face of a unit cube: its outward normal and the
// four corner offsets (in winding order) scaled by that normal's
// perpendicular axes.
type cubeFace struct {
	normal  [3]float32
	corners [4][3]float32
}

var cubeFaces = []cubeFace{
	{normal: [3]float32{0, 0, 1}, corners: [4][3]float32{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}},
	{normal: [3]float32{0, 0, -1}, corners: [4][3]float32{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}},
	{normal: [3]float32{1, 0, 0}, corners: [4][3]float32{{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}}},
	{normal: [3]float32{-1, 0, 0}, corners: [4][3]float32{{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}}},
	{normal: [3]float32{0, 1, 0}, corners: [4][3]float32{{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}}},
	{normal: [3]float32{0, -1, 0}, corners: [4][3]float32{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}}},
}

// MakeCubeGeometry builds a unit cube centered at the origin, the Go
// equivalent of the source's makeCubeGeo. Each face gets its own four
// vertices so normals stay flat-shaded at the edges.
func MakeCubeGeometry() GeometryData {
	var verts []Vertex
	var indices []uint32
	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	for _, face := range cubeFaces {
		base := uint32(len(verts))
		for i, corner := range face.corners {
			verts = append(verts, Vertex{Position: corner, Normal: face.normal, UV: uvs[i]})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	return GeometryData{Vertices: verts, Indices: indices}
}
