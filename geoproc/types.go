// Package geoproc implements the GeoProc pipeline: normalisation and
// optimisation of intermediate mesh/skeleton/animation representations
// (NascentModel, NascentSkeleton, NascentAnimationSet) prior to scaffold
// command-stream emission.
package geoproc

import "github.com/xle-project/scaffoldc/internal/vmath"

// ObjectID identifies a source-document object by (namespace, id) pair,
// matching the Collada-derived addressing scheme the compiler consumes
//.
type ObjectID struct {
	Namespace uint64
	ID        uint64
}

// IndexFormat is the element width of a raw index buffer.
type IndexFormat uint8

const (
	Index16 IndexFormat = iota
	Index32
)

// Topology is the primitive assembly mode of a draw call.
type Topology uint8

const (
	TriangleList Topology = iota
	TriangleStrip
	LineList
)

// DrawCall is one indexed draw within a GeometryBlock.
type DrawCall struct {
	FirstIndex int
	IndexCount int
	Topology   Topology
}

// VertexStream holds one named vertex attribute (POSITION, NORMAL, ...)
// as a flat float32 array plus a per-vertex remap table used when the
// attribute is authored at a different density than the unified vertex
// (e.g. shared positions, per-face normals prior to unification).
type VertexStream struct {
	SemanticName  string
	SemanticIndex int
	Components    int // 2, 3 or 4 floats per element
	Data          []float32
	// Remap maps unified-vertex index -> index into Data/Components. Nil
	// means the stream is already dense (Remap[i] == i).
	Remap []int
}

func (s VertexStream) at(unifiedVertex int) []float32 {
	idx := unifiedVertex
	if s.Remap != nil {
		idx = s.Remap[unifiedVertex]
	}
	start := idx * s.Components
	return s.Data[start : start+s.Components]
}

// Vec3At reads a 3-component value from the stream at a unified vertex
// index, regardless of Remap.
func (s VertexStream) Vec3At(unifiedVertex int) vmath.Vec3 {
	v := s.at(unifiedVertex)
	r := vmath.Vec3{}
	if len(v) > 0 {
		r.X = v[0]
	}
	if len(v) > 1 {
		r.Y = v[1]
	}
	if len(v) > 2 {
		r.Z = v[2]
	}
	return r
}

// GeometryBlock is a mesh database: streams of vertex attributes with
// per-stream remap tables, a list of draw calls, a raw index buffer, its
// format, and the geo-to-node transform.
type GeometryBlock struct {
	Streams       []VertexStream
	DrawCalls     []DrawCall
	Indices       []uint32 // always widened to uint32 in memory; narrowed at pack time per IndexFormat
	IndexFormat   IndexFormat
	GeoToNodeXform vmath.Mat4
	UnifiedVertexCount int

	adjacencyBuffers []adjacencyIndexBuffer
}

// JointInfluence is one (joint, weight) pair contributed to a vertex.
type JointInfluence struct {
	JointIndex int
	Weight     float32
}

// SkinControllerBlock is an unbound skin controller: inverse-bind
// matrices, joint names, and per-vertex influences, plus the name of the
// skeleton it binds to.
//
// Invariant: every JointInfluence.JointIndex < len(JointNames).
type SkinControllerBlock struct {
	SkeletonName     string
	JointNames       []string
	InverseBindPose  []vmath.Mat4
	Influences       [][]JointInfluence // one slice per source vertex
	BindShapeMatrix  vmath.Mat4
}

func (s SkinControllerBlock) Validate() error {
	for vi, infl := range s.Influences {
		for _, j := range infl {
			if j.JointIndex < 0 || j.JointIndex >= len(s.JointNames) {
				return &InvalidJointIndexError{Vertex: vi, JointIndex: j.JointIndex, JointCount: len(s.JointNames)}
			}
		}
	}
	return nil
}

type InvalidJointIndexError struct {
	Vertex     int
	JointIndex int
	JointCount int
}

func (e *InvalidJointIndexError) Error() string {
	return "geoproc: skin controller vertex references out-of-range joint index"
}

// ObjectKind classifies one of a NascentModel's objects: a
// GeometryBlock, SkinControllerBlock or Command.
type ObjectKind uint8

const (
	KindGeometry ObjectKind = iota
	KindSkinController
	KindCommand
)

// Command references a geometry block, optional skin controllers, a
// binding-point name, per-draw-call material symbols, and an LOD.
//
// Invariant: len(MaterialSymbols) == the referenced GeometryBlock's draw
// call count.
type Command struct {
	GeometryID       ObjectID
	SkinControllerIDs []ObjectID
	BindingPoint     string
	MaterialSymbols  []string
	Groups           []string
	LOD              int
}

// NascentModel is the mapping from object id to one of
// {GeometryBlock, SkinControllerBlock, Command}, in document order for
// commands.
type NascentModel struct {
	Geometries      map[ObjectID]*GeometryBlock
	SkinControllers map[ObjectID]*SkinControllerBlock
	Commands        []Command // document order matters
}

func NewNascentModel() *NascentModel {
	return &NascentModel{
		Geometries:      map[ObjectID]*GeometryBlock{},
		SkinControllers: map[ObjectID]*SkinControllerBlock{},
	}
}

// Validate checks the cross-object invariants before the model is handed
// to CompleteInstantiation/command emission.
func (m *NascentModel) Validate() error {
	for _, c := range m.Commands {
		geo, ok := m.Geometries[c.GeometryID]
		if !ok {
			return &MissingGeometryError{ID: c.GeometryID}
		}
		if len(c.MaterialSymbols) != len(geo.DrawCalls) {
			return &MaterialSymbolCountError{
				Got: len(c.MaterialSymbols), Want: len(geo.DrawCalls), GeometryID: c.GeometryID,
			}
		}
		for _, scID := range c.SkinControllerIDs {
			sc, ok := m.SkinControllers[scID]
			if !ok {
				return &MissingSkinControllerError{ID: scID}
			}
			if err := sc.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

type MissingGeometryError struct{ ID ObjectID }

func (e *MissingGeometryError) Error() string { return "geoproc: command references missing geometry" }

type MissingSkinControllerError struct{ ID ObjectID }

func (e *MissingSkinControllerError) Error() string {
	return "geoproc: command references missing skin controller"
}

type MaterialSymbolCountError struct {
	Got, Want  int
	GeometryID ObjectID
}

func (e *MaterialSymbolCountError) Error() string {
	return "geoproc: material symbol count does not match draw call count"
}
