package geoproc

import (
	"math"

	"github.com/xle-project/scaffoldc/internal/vmath"
)

// InstantiationOptions controls CompleteInstantiation's optional passes
//.
type InstantiationOptions struct {
	// ExcludedAttributes names vertex streams to drop before merging
	// (e.g. a UV channel with no material reference).
	ExcludedAttributes map[string]bool
	// MergeEpsilon is the per-component tolerance used when comparing
	// candidate duplicate vertices; 0 means bitwise-exact only.
	MergeEpsilon float32
	// RemoveRedundantBitangent drops a synthesized BITANGENT stream when
	// it is reconstructable as cross(NORMAL, TANGENT) * handedness, per
	// the rendering convention the scaffold assumes.
	RemoveRedundantBitangent bool
	// BuildAdjacency requests an adjacency index buffer alongside the
	// regular triangle-list index buffer, for geometry shader style
	// adjacency rendering.
	BuildAdjacency bool
	// Use16BitNative packs the native vertex layout's float components as
	// binary16 instead of binary32, halving the vertex stride at reduced
	// precision.
	Use16BitNative bool
}

// NativeVertexElement describes one packed attribute within a native
// vertex layout.
type NativeVertexElement struct {
	SemanticName  string
	SemanticIndex int
	Offset        int // bytes from the start of the vertex
	Format        NativeFormat
}

type NativeFormat uint8

const (
	FormatFloat3 NativeFormat = iota
	FormatFloat2
	FormatFloat4
	FormatR8G8B8A8Unorm
	// FormatHalf2/3/4 pack components as IEEE 754 binary16, half the size
	// of the float variants - the "16-bit packed" native layout.
	FormatHalf2
	FormatHalf3
	FormatHalf4
)

func (f NativeFormat) size() int {
	switch f {
	case FormatFloat3:
		return 12
	case FormatFloat2:
		return 8
	case FormatFloat4:
		return 16
	case FormatR8G8B8A8Unorm:
		return 4
	case FormatHalf2:
		return 4
	case FormatHalf3:
		return 6
	case FormatHalf4:
		return 8
	}
	return 0
}

// NativeVertexLayout is the result of packing a GeometryBlock's streams
// into a single interleaved vertex buffer.
type NativeVertexLayout struct {
	Elements []NativeVertexElement
	Stride   int
	Data     []byte
}

// CompleteInstantiation normalises a GeometryBlock in place: it drops
// excluded attributes, merges duplicate unified vertices, synthesizes
// missing attributes required by the shader pipeline (tangent frames),
// optionally removes a redundant bitangent stream, and optionally builds
// an adjacency index buffer. It returns the packed native
// vertex layout.
func CompleteInstantiation(geo *GeometryBlock, opts InstantiationOptions) (*NativeVertexLayout, error) {
	removeExcludedAttributes(geo, opts.ExcludedAttributes)
	synthesizeMissingAttributes(geo)
	mergeDuplicateVertices(geo, opts.MergeEpsilon)
	if opts.RemoveRedundantBitangent {
		removeBitangentStream(geo)
	}
	if opts.BuildAdjacency {
		buildAdjacencyIndexBuffer(geo)
	}
	return packNativeVertexLayout(geo, opts.Use16BitNative), nil
}

func removeExcludedAttributes(geo *GeometryBlock, excluded map[string]bool) {
	if len(excluded) == 0 {
		return
	}
	kept := geo.Streams[:0]
	for _, s := range geo.Streams {
		if excluded[s.SemanticName] {
			continue
		}
		kept = append(kept, s)
	}
	geo.Streams = kept
}

func findStream(geo *GeometryBlock, semantic string) *VertexStream {
	for i := range geo.Streams {
		if geo.Streams[i].SemanticName == semantic {
			return &geo.Streams[i]
		}
	}
	return nil
}

// synthesizeMissingAttributes derives TANGENT/BITANGENT from
// POSITION+NORMAL+TEXCOORD when the source data lacks them, and a
// default TEXCOORD(0,0) when no UV channel exists, matching the
// compiler's "shader requires an attribute the source model doesn't
// author" fallback.
func synthesizeMissingAttributes(geo *GeometryBlock) {
	pos := findStream(geo, "POSITION")
	norm := findStream(geo, "NORMAL")
	uv := findStream(geo, "TEXCOORD")
	if uv == nil && pos != nil {
		data := make([]float32, geo.UnifiedVertexCount*2)
		geo.Streams = append(geo.Streams, VertexStream{SemanticName: "TEXCOORD", Components: 2, Data: data})
		uv = &geo.Streams[len(geo.Streams)-1]
	}
	if findStream(geo, "TANGENT") != nil || pos == nil || norm == nil || uv == nil {
		return
	}
	tangents := make([]vmath.Vec3, geo.UnifiedVertexCount)
	bitangents := make([]vmath.Vec3, geo.UnifiedVertexCount)
	counts := make([]int, geo.UnifiedVertexCount)

	for _, dc := range geo.DrawCalls {
		for i := dc.FirstIndex; i+2 < dc.FirstIndex+dc.IndexCount; i += 3 {
			i0, i1, i2 := int(geo.Indices[i]), int(geo.Indices[i+1]), int(geo.Indices[i+2])
			p0, p1, p2 := pos.Vec3At(i0), pos.Vec3At(i1), pos.Vec3At(i2)
			u0, u1, u2 := uv.at(i0), uv.at(i1), uv.at(i2)

			e1, e2 := p1.Sub(p0), p2.Sub(p0)
			du1, dv1 := u1[0]-u0[0], u1[1]-u0[1]
			du2, dv2 := u2[0]-u0[0], u2[1]-u0[1]
			det := du1*dv2 - du2*dv1
			if det == 0 {
				continue
			}
			r := 1.0 / det
			t := vmath.Vec3{
				X: r * (dv2*e1.X - dv1*e2.X),
				Y: r * (dv2*e1.Y - dv1*e2.Y),
				Z: r * (dv2*e1.Z - dv1*e2.Z),
			}
			b := vmath.Vec3{
				X: r * (du1*e2.X - du2*e1.X),
				Y: r * (du1*e2.Y - du2*e1.Y),
				Z: r * (du1*e2.Z - du2*e1.Z),
			}
			for _, idx := range [3]int{i0, i1, i2} {
				tangents[idx] = tangents[idx].Add(t)
				bitangents[idx] = bitangents[idx].Add(b)
				counts[idx]++
			}
		}
	}

	tangentData := make([]float32, geo.UnifiedVertexCount*4)
	bitangentData := make([]float32, geo.UnifiedVertexCount*3)
	for i := 0; i < geo.UnifiedVertexCount; i++ {
		n := norm.Vec3At(i)
		t := tangents[i]
		if counts[i] > 0 {
			t = t.Normalize()
		}
		// Gram-Schmidt orthogonalize against the normal.
		t = t.Sub(n.Scale(n.Dot(t))).Normalize()
		b := bitangents[i]
		handedness := float32(1)
		if n.Cross(t).Dot(b) < 0 {
			handedness = -1
		}
		tangentData[i*4+0] = t.X
		tangentData[i*4+1] = t.Y
		tangentData[i*4+2] = t.Z
		tangentData[i*4+3] = handedness
		bt := n.Cross(t).Scale(handedness)
		bitangentData[i*3+0] = bt.X
		bitangentData[i*3+1] = bt.Y
		bitangentData[i*3+2] = bt.Z
	}
	geo.Streams = append(geo.Streams,
		VertexStream{SemanticName: "TANGENT", Components: 4, Data: tangentData},
		VertexStream{SemanticName: "BITANGENT", Components: 3, Data: bitangentData},
	)
}

// removeBitangentStream drops a stored BITANGENT stream once TANGENT
// (with handedness in its 4th component) and NORMAL are present, since
// the renderer reconstructs it as cross(normal, tangent)*handedness
//.
func removeBitangentStream(geo *GeometryBlock) {
	tangent := findStream(geo, "TANGENT")
	norm := findStream(geo, "NORMAL")
	if tangent == nil || tangent.Components != 4 || norm == nil {
		return
	}
	kept := geo.Streams[:0]
	for _, s := range geo.Streams {
		if s.SemanticName == "BITANGENT" {
			continue
		}
		kept = append(kept, s)
	}
	geo.Streams = kept
}

// mergeDuplicateVertices collapses unified vertices that are identical
// (bitwise, or within epsilon per float component) across every stream,
// rewriting the index buffer to reference the surviving representative.
// When any vertices merge, streams are densified (Remap cleared) as a side
// effect, since after merging every surviving index addresses its own
// unique row; when none merge, the geometry is left unchanged.
func mergeDuplicateVertices(geo *GeometryBlock, epsilon float32) {
	n := geo.UnifiedVertexCount
	if n == 0 {
		return
	}
	keyOf := func(v int) string {
		buf := make([]byte, 0, 64)
		for _, s := range geo.Streams {
			row := s.at(v)
			for _, f := range row {
				q := f
				if epsilon > 0 {
					q = float32(math.Round(float64(f/epsilon))) * epsilon
				}
				bits := math.Float32bits(q)
				buf = append(buf, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
			}
		}
		return string(buf)
	}

	remap := make([]int, n)
	firstOfKey := map[string]int{}
	survivors := 0
	for v := 0; v < n; v++ {
		k := keyOf(v)
		if s, ok := firstOfKey[k]; ok {
			remap[v] = s
			continue
		}
		firstOfKey[k] = survivors
		remap[v] = survivors
		survivors++
	}
	if survivors == n {
		return // nothing to merge; streams and indices stay as they are
	}

	densified := make([]VertexStream, len(geo.Streams))
	for si, s := range geo.Streams {
		data := make([]float32, survivors*s.Components)
		for v := 0; v < n; v++ {
			if remap[v] >= 0 {
				dst := remap[v] * s.Components
				src := v
				row := s.at(src)
				copy(data[dst:dst+s.Components], row)
			}
		}
		densified[si] = VertexStream{SemanticName: s.SemanticName, SemanticIndex: s.SemanticIndex, Components: s.Components, Data: data}
	}
	geo.Streams = densified
	geo.UnifiedVertexCount = survivors

	for i, idx := range geo.Indices {
		geo.Indices[i] = uint32(remap[int(idx)])
	}
}

// buildAdjacencyIndexBuffer constructs a second index buffer, per draw
// call, in the D3D11_PRIMITIVE_TOPOLOGY_TRIANGLELIST_ADJ convention: each
// triangle (a,b,c) is expanded to six indices (a, opposite(a,b), b,
// opposite(b,c), c, opposite(c,a)), where opposite(x,y) is the third
// vertex of the triangle sharing edge (x,y) with this one, or the
// triangle's own opposite vertex if the edge is a boundary.
func buildAdjacencyIndexBuffer(geo *GeometryBlock) {
	type edgeKey struct{ a, b uint32 }
	normalize := func(a, b uint32) edgeKey {
		if a > b {
			a, b = b, a
		}
		return edgeKey{a, b}
	}
	for dci := range geo.DrawCalls {
		dc := geo.DrawCalls[dci]
		if dc.Topology != TriangleList {
			continue
		}
		triCount := dc.IndexCount / 3
		edgeOwner := map[edgeKey][2]int{} // edge -> up to 2 triangle indices
		triAt := func(t int) (uint32, uint32, uint32) {
			base := dc.FirstIndex + t*3
			return geo.Indices[base], geo.Indices[base+1], geo.Indices[base+2]
		}
		for t := 0; t < triCount; t++ {
			a, b, c := triAt(t)
			for _, e := range [3]edgeKey{normalize(a, b), normalize(b, c), normalize(c, a)} {
				owners := edgeOwner[e]
				if owners[0] == 0 && owners[1] == 0 {
					edgeOwner[e] = [2]int{t + 1, 0}
				} else if owners[1] == 0 {
					edgeOwner[e] = [2]int{owners[0], t + 1}
				}
			}
		}
		opposite := func(self, x, y, own uint32) uint32 {
			e := normalize(x, y)
			owners := edgeOwner[e]
			var other int
			if owners[0]-1 == int(self) {
				other = owners[1] - 1
			} else {
				other = owners[0] - 1
			}
			if other < 0 {
				return own // boundary edge: no neighbour, fall back to this triangle's own opposite vertex
			}
			oa, ob, oc := triAt(other)
			for _, v := range [3]uint32{oa, ob, oc} {
				if v != x && v != y {
					return v
				}
			}
			return own
		}
		adjacency := make([]uint32, 0, triCount*6)
		for t := 0; t < triCount; t++ {
			a, b, c := triAt(t)
			adjacency = append(adjacency,
				a, opposite(uint32(t), a, b, c),
				b, opposite(uint32(t), b, c, a),
				c, opposite(uint32(t), c, a, b),
			)
		}
		geo.adjacencyBuffers = append(geo.adjacencyBuffers, adjacencyIndexBuffer{DrawCall: dci, Indices: adjacency})
	}
}

// AdjacencyFor returns the adjacency index buffer built for draw call
// index dc, if BuildAdjacency was requested.
func (g *GeometryBlock) AdjacencyFor(dc int) ([]uint32, bool) {
	for _, a := range g.adjacencyBuffers {
		if a.DrawCall == dc {
			return a.Indices, true
		}
	}
	return nil, false
}

type adjacencyIndexBuffer struct {
	DrawCall int
	Indices  []uint32
}

// packNativeVertexLayout interleaves every stream into a single
// byte buffer using a fixed semantic ordering, producing the vertex
// layout the scaffold's Model machine references. When use16Bit is set,
// components are packed as binary16 instead of binary32.
func packNativeVertexLayout(geo *GeometryBlock, use16Bit bool) *NativeVertexLayout {
	order := []string{"POSITION", "NORMAL", "TANGENT", "BITANGENT", "TEXCOORD", "COLOR"}
	var ordered []VertexStream
	for _, sem := range order {
		if s := findStream(geo, sem); s != nil {
			ordered = append(ordered, *s)
		}
	}
	for _, s := range geo.Streams {
		found := false
		for _, sem := range order {
			if s.SemanticName == sem {
				found = true
				break
			}
		}
		if !found {
			ordered = append(ordered, s)
		}
	}

	elements := make([]NativeVertexElement, len(ordered))
	stride := 0
	for i, s := range ordered {
		format := formatFor(s.Components, use16Bit)
		elements[i] = NativeVertexElement{SemanticName: s.SemanticName, SemanticIndex: s.SemanticIndex, Offset: stride, Format: format}
		stride += format.size()
	}

	data := make([]byte, geo.UnifiedVertexCount*stride)
	for v := 0; v < geo.UnifiedVertexCount; v++ {
		rowOff := v * stride
		for i, s := range ordered {
			row := s.at(v)
			dst := rowOff + elements[i].Offset
			if use16Bit {
				for _, f := range row {
					h := float32ToHalf(f)
					data[dst] = byte(h)
					data[dst+1] = byte(h >> 8)
					dst += 2
				}
				continue
			}
			for _, f := range row {
				bits := math.Float32bits(f)
				data[dst] = byte(bits)
				data[dst+1] = byte(bits >> 8)
				data[dst+2] = byte(bits >> 16)
				data[dst+3] = byte(bits >> 24)
				dst += 4
			}
		}
	}

	return &NativeVertexLayout{Elements: elements, Stride: stride, Data: data}
}

func formatFor(components int, use16Bit bool) NativeFormat {
	if use16Bit {
		switch components {
		case 2:
			return FormatHalf2
		case 4:
			return FormatHalf4
		default:
			return FormatHalf3
		}
	}
	switch components {
	case 2:
		return FormatFloat2
	case 4:
		return FormatFloat4
	default:
		return FormatFloat3
	}
}

// float32ToHalf converts f to IEEE 754 binary16, rounding to nearest and
// saturating to +-infinity on overflow.
func float32ToHalf(f float32) uint16 {
	bits := math.Float32bits(f)
	sign := uint16((bits >> 16) & 0x8000)
	exp := int32((bits>>23)&0xff) - 127 + 15
	mant := bits & 0x7fffff

	switch {
	case exp <= 0:
		return sign
	case exp >= 0x1f:
		return sign | 0x7c00
	default:
		h := sign | uint16(exp<<10) | uint16(mant>>13)
		if mant&0x1000 != 0 {
			h++ // round up; a mantissa carry moves into the exponent, up to infinity
		}
		return h
	}
}
