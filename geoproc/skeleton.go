package geoproc

import (
	"fmt"

	"github.com/xle-project/scaffoldc/assets/scaffold"
	"github.com/xle-project/scaffoldc/internal/vmath"
)

// JointDesc is one joint in a NascentSkeleton's authoring order.
type JointDesc struct {
	Name           string
	ParentIndex    int // -1 for root joints
	LocalTransform vmath.Mat4
	// IsOutputMarker requests that this joint's final world transform be
	// exposed via a numbered output marker (referenced by skin
	// controllers and the top-level model's input interface).
	IsOutputMarker bool
}

// NascentSkeleton is the intermediate skeleton representation: an
// ordered joint list forming a tree (by ParentIndex), from which a
// transformation-machine command stream is compiled.
type NascentSkeleton struct {
	Joints []JointDesc
}

// CompileTransformMachine lowers the joint tree into a TransformProgram:
// a depth-first walk that pushes each joint's local transform, emits an
// output marker for joints flagged IsOutputMarker, recurses into
// children, then pops, mirroring the Transform* command set in
// assets/scaffold.
func (s *NascentSkeleton) CompileTransformMachine() (*scaffold.TransformProgram, []uint32, error) {
	children := make([][]int, len(s.Joints))
	var roots []int
	for i, j := range s.Joints {
		if j.ParentIndex < 0 {
			roots = append(roots, i)
			continue
		}
		if j.ParentIndex >= len(s.Joints) {
			return nil, nil, fmt.Errorf("geoproc: joint %d has out-of-range parent %d", i, j.ParentIndex)
		}
		children[j.ParentIndex] = append(children[j.ParentIndex], i)
	}

	prog := scaffold.NewTransformProgram()
	var markerForJoint []uint32 // joint index -> output marker index, or ^0
	nextMarker := uint32(0)
	markerForJoint = make([]uint32, len(s.Joints))
	for i := range markerForJoint {
		markerForJoint[i] = ^uint32(0)
	}

	var visit func(idx int)
	visit = func(idx int) {
		j := s.Joints[idx]
		prog.PushLocalToWorld()
		prog.Float4x4Static(j.LocalTransform)
		if j.IsOutputMarker {
			prog.WriteOutputMatrix(nextMarker)
			markerForJoint[idx] = nextMarker
			nextMarker++
		}
		for _, c := range children[idx] {
			visit(c)
		}
		prog.PopLocalToWorld(1)
	}
	for _, r := range roots {
		visit(r)
	}
	return prog, markerForJoint, nil
}

// JointNames returns the joint names in authoring order, matching what
// SkeletonJointNames emits into the command stream.
func (s *NascentSkeleton) JointNames() []string {
	names := make([]string, len(s.Joints))
	for i, j := range s.Joints {
		names[i] = j.Name
	}
	return names
}

// OutputInterfaceCount returns how many joints are flagged as output
// markers, i.e. the size of the skeleton's output transform array
//.
func (s *NascentSkeleton) OutputInterfaceCount() int {
	n := 0
	for _, j := range s.Joints {
		if j.IsOutputMarker {
			n++
		}
	}
	return n
}

// OptimizeSkeleton strips output markers from joints that neither a skin
// controller nor the model's input interface ever reference, reducing
// the output transform array to exactly the set of needed joints. This
// is a size-only optimisation: parent/child relationships and local
// transforms are unchanged, so CompileTransformMachine's tree walk still
// produces correct composed world transforms for the retained markers
//.
func (s *NascentSkeleton) OptimizeSkeleton(neededJointNames map[string]bool) {
	for i := range s.Joints {
		if s.Joints[i].IsOutputMarker && !neededJointNames[s.Joints[i].Name] {
			s.Joints[i].IsOutputMarker = false
		}
	}
}

// AnimationDriver binds one animation curve to a transformation-machine
// parameter slot.
type AnimationDriver struct {
	ParameterIndex uint32
	Curve          Curve
	SamplerType    SamplerType
}

type SamplerType uint8

const (
	SamplerFloat1 SamplerType = iota
	SamplerFloat3
	SamplerFloat4x4
	SamplerQuaternion
)

// Curve is a keyframe curve: parallel time/value arrays. Values are
// stored flat (stride components per key) to keep the type generic over
// float1/float3/quaternion/float4x4 curves.
type Curve struct {
	Times      []float32
	Values     []float32
	Stride     int
	Interpolation InterpolationType
}

type InterpolationType uint8

const (
	InterpLinear InterpolationType = iota
	InterpStep
	InterpBezier
)

// NamedAnimation groups drivers under a name with an explicit time
// range, as authored by the source document's animation clips.
type NamedAnimation struct {
	Name     string
	Drivers  []AnimationDriver
	Begin    float32
	End      float32
}

// NascentAnimationSet is the compiled collection of named animations and
// the constant (non-curve) driver values for parameters no animation
// touches.
type NascentAnimationSet struct {
	Animations      []NamedAnimation
	ConstantDrivers map[uint32][]float32 // parameter index -> constant value
}

func NewNascentAnimationSet() *NascentAnimationSet {
	return &NascentAnimationSet{ConstantDrivers: map[uint32][]float32{}}
}

// Find returns the named animation, or ok=false.
func (a *NascentAnimationSet) Find(name string) (NamedAnimation, bool) {
	for _, anim := range a.Animations {
		if anim.Name == name {
			return anim, true
		}
	}
	return NamedAnimation{}, false
}
