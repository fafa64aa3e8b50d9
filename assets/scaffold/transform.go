package scaffold

import (
	"fmt"
	"math"

	"github.com/xle-project/scaffoldc/internal/vmath"
)

// TransformCommand is a single opcode in a transformation machine's
// command stream, grounded on RenderCore/Assets/TransformationCommands.h's
// TransformCommand enum. Unlike Tag, this value is
// stored as a raw uint32 word within the transform program itself, not as
// a framed Record - the transformation machine is a flat array of uint32
// words (opcode, operands, opcode, operands, ...), matching the source's
// `IteratorRange<const uint32_t*>` representation exactly.
type TransformCommand uint32

const (
	CmdPushLocalToWorld TransformCommand = iota
	CmdPopLocalToWorld
	CmdFloat4x4Static
	CmdTranslateStatic
	CmdRotateXStatic
	CmdRotateYStatic
	CmdRotateZStatic
	CmdRotateAxisAngleStatic
	CmdRotateQuaternionStatic
	CmdUniformScaleStatic
	CmdArbitraryScaleStatic
	CmdFloat4x4Parameter
	CmdTranslateParameter
	CmdRotateXParameter
	CmdRotateYParameter
	CmdRotateZParameter
	CmdRotateAxisAngleParameter
	CmdRotateQuaternionParameter
	CmdUniformScaleParameter
	CmdArbitraryScaleParameter
	CmdBindingPoint0
	CmdWriteOutputMatrix
	CmdComment
)

// TransformProgram is a builder for a flat transformation-machine command
// stream.
type TransformProgram struct{ words []uint32 }

func NewTransformProgram() *TransformProgram { return &TransformProgram{} }

func (p *TransformProgram) Words() []uint32 { return p.words }

func f32bits(v float32) uint32 { return math.Float32bits(v) }

func (p *TransformProgram) emit(cmd TransformCommand, operands ...uint32) {
	p.words = append(p.words, uint32(cmd))
	p.words = append(p.words, operands...)
}

func (p *TransformProgram) PushLocalToWorld() { p.emit(CmdPushLocalToWorld) }
func (p *TransformProgram) PopLocalToWorld(count uint32) {
	p.emit(CmdPopLocalToWorld, count)
}

func (p *TransformProgram) TranslateStatic(v vmath.Vec3) {
	p.emit(CmdTranslateStatic, f32bits(v.X), f32bits(v.Y), f32bits(v.Z))
}
func (p *TransformProgram) RotateXStatic(radians float32) { p.emit(CmdRotateXStatic, f32bits(radians)) }
func (p *TransformProgram) RotateYStatic(radians float32) { p.emit(CmdRotateYStatic, f32bits(radians)) }
func (p *TransformProgram) RotateZStatic(radians float32) { p.emit(CmdRotateZStatic, f32bits(radians)) }
func (p *TransformProgram) RotateAxisAngleStatic(axis vmath.Vec3, radians float32) {
	p.emit(CmdRotateAxisAngleStatic, f32bits(axis.X), f32bits(axis.Y), f32bits(axis.Z), f32bits(radians))
}
func (p *TransformProgram) RotateQuaternionStatic(q vmath.Quaternion) {
	p.emit(CmdRotateQuaternionStatic, f32bits(q.X), f32bits(q.Y), f32bits(q.Z), f32bits(q.W))
}
func (p *TransformProgram) UniformScaleStatic(s float32) { p.emit(CmdUniformScaleStatic, f32bits(s)) }
func (p *TransformProgram) ArbitraryScaleStatic(v vmath.Vec3) {
	p.emit(CmdArbitraryScaleStatic, f32bits(v.X), f32bits(v.Y), f32bits(v.Z))
}
func (p *TransformProgram) Float4x4Static(m vmath.Mat4) {
	operands := make([]uint32, 16)
	for i, f := range m.Data {
		operands[i] = f32bits(f)
	}
	p.emit(CmdFloat4x4Static, operands...)
}

// WriteOutputMatrix records the current top-of-stack transform into the
// output interface slot markerIndex.
func (p *TransformProgram) WriteOutputMatrix(markerIndex uint32) {
	p.emit(CmdWriteOutputMatrix, markerIndex)
}

// BindingPoint marks a slot that is resolved externally (skin/animation
// binding); GenerateOutputTransforms treats it as an identity contribution
// since resolving the bound parameter is the animation system's job, not
// the transformation machine's.
func (p *TransformProgram) BindingPoint(paramIndex uint32) {
	p.emit(CmdBindingPoint0, paramIndex)
}

func (p *TransformProgram) Comment(text string) {
	words := []uint32{uint32(len(text))}
	padded := text
	for len(padded)%4 != 0 {
		padded += "\x00"
	}
	for i := 0; i < len(padded); i += 4 {
		var w uint32
		for b := 0; b < 4; b++ {
			w |= uint32(padded[i+b]) << (8 * b)
		}
		words = append(words, w)
	}
	p.emit(CmdComment, words...)
}

func operandCount(cmd TransformCommand, words []uint32, at int) (int, error) {
	switch cmd {
	case CmdPushLocalToWorld:
		return 0, nil
	case CmdPopLocalToWorld:
		return 1, nil
	case CmdTranslateStatic, CmdArbitraryScaleStatic:
		return 3, nil
	case CmdRotateXStatic, CmdRotateYStatic, CmdRotateZStatic, CmdUniformScaleStatic:
		return 1, nil
	case CmdRotateAxisAngleStatic:
		return 4, nil
	case CmdRotateQuaternionStatic:
		return 4, nil
	case CmdFloat4x4Static:
		return 16, nil
	case CmdFloat4x4Parameter:
		return 1, nil
	case CmdTranslateParameter, CmdArbitraryScaleParameter:
		return 1, nil
	case CmdRotateXParameter, CmdRotateYParameter, CmdRotateZParameter, CmdUniformScaleParameter:
		return 1, nil
	case CmdRotateAxisAngleParameter, CmdRotateQuaternionParameter:
		return 1, nil
	case CmdBindingPoint0:
		return 1, nil
	case CmdWriteOutputMatrix:
		return 1, nil
	case CmdComment:
		if at >= len(words) {
			return 0, fmt.Errorf("scaffold: truncated comment command")
		}
		n := int(words[at])
		return 1 + (n+3)/4, nil
	default:
		return 0, fmt.Errorf("scaffold: unknown transform command %d", cmd)
	}
}

// NextTransformationCommand returns the index of the word following the
// command starting at i, skipping over its operands without interpreting
// them - used by tracing/optimisation passes that only need to walk the
// structure.
func NextTransformationCommand(words []uint32, i int) (int, error) {
	cmd := TransformCommand(words[i])
	n, err := operandCount(cmd, words, i+1)
	if err != nil {
		return 0, err
	}
	return i + 1 + n, nil
}

// GenerateOutputTransforms executes a transformation machine's command
// stream and writes the resulting absolute transforms into result, one
// per output marker referenced by a WriteOutputMatrix command.
func GenerateOutputTransforms(result []vmath.Mat4, parameterBlock []float32, commandStream []uint32) error {
	stack := []vmath.Mat4{vmath.Identity()}
	top := func() vmath.Mat4 { return stack[len(stack)-1] }
	setTop := func(m vmath.Mat4) { stack[len(stack)-1] = m }

	i := 0
	for i < len(commandStream) {
		cmd := TransformCommand(commandStream[i])
		opStart := i + 1
		n, err := operandCount(cmd, commandStream, opStart)
		if err != nil {
			return err
		}
		ops := commandStream[opStart : opStart+n]
		switch cmd {
		case CmdPushLocalToWorld:
			stack = append(stack, top())
		case CmdPopLocalToWorld:
			count := int(ops[0])
			if count > len(stack)-1 {
				return fmt.Errorf("scaffold: transform pop underflow")
			}
			stack = stack[:len(stack)-count]
		case CmdTranslateStatic:
			setTop(top().Mul(vmath.Translation(vmath.Vec3{math.Float32frombits(ops[0]), math.Float32frombits(ops[1]), math.Float32frombits(ops[2])})))
		case CmdRotateXStatic:
			setTop(top().Mul(vmath.RotateX(math.Float32frombits(ops[0]))))
		case CmdRotateYStatic:
			setTop(top().Mul(vmath.RotateY(math.Float32frombits(ops[0]))))
		case CmdRotateZStatic:
			setTop(top().Mul(vmath.RotateZ(math.Float32frombits(ops[0]))))
		case CmdRotateAxisAngleStatic:
			axis := vmath.Vec3{math.Float32frombits(ops[0]), math.Float32frombits(ops[1]), math.Float32frombits(ops[2])}
			setTop(top().Mul(vmath.RotateAxisAngle(axis, math.Float32frombits(ops[3]))))
		case CmdRotateQuaternionStatic:
			q := vmath.Quaternion{math.Float32frombits(ops[0]), math.Float32frombits(ops[1]), math.Float32frombits(ops[2]), math.Float32frombits(ops[3])}
			setTop(top().Mul(vmath.FromQuaternion(q)))
		case CmdUniformScaleStatic:
			setTop(top().Mul(vmath.UniformScale(math.Float32frombits(ops[0]))))
		case CmdArbitraryScaleStatic:
			setTop(top().Mul(vmath.Scale(vmath.Vec3{math.Float32frombits(ops[0]), math.Float32frombits(ops[1]), math.Float32frombits(ops[2])})))
		case CmdFloat4x4Static:
			var m vmath.Mat4
			for k := 0; k < 16; k++ {
				m.Data[k] = math.Float32frombits(ops[k])
			}
			setTop(top().Mul(m))
		case CmdFloat4x4Parameter, CmdTranslateParameter, CmdRotateXParameter, CmdRotateYParameter,
			CmdRotateZParameter, CmdRotateAxisAngleParameter, CmdRotateQuaternionParameter,
			CmdUniformScaleParameter, CmdArbitraryScaleParameter:
			// Parameter-driven transforms pull their value from
			// parameterBlock at the given float index; animation drivers
			// overwrite parameterBlock before a re-evaluation. The default
			// pose evaluation calls this with a
			// parameterBlock of each driver's rest value.
			idx := int(ops[0])
			if idx >= 0 && idx < len(parameterBlock) {
				// For the default pose, parameter-driven nodes behave like
				// their corresponding static op seeded from the parameter
				// block; only translation is modelled as a full op here,
				// matching the single case the writer emits (bind-pose
				// parameter nodes are always simple translations in this
				// pipeline's skeletons).
				setTop(top().Mul(vmath.Translation(vmath.Vec3{parameterBlock[idx], 0, 0})))
			}
		case CmdBindingPoint0:
			// identity contribution; see BindingPoint doc comment.
		case CmdWriteOutputMatrix:
			idx := int(ops[0])
			if idx >= 0 && idx < len(result) {
				result[idx] = top()
			}
		case CmdComment:
			// no-op for evaluation.
		default:
			return fmt.Errorf("scaffold: unhandled transform command %d", cmd)
		}
		i = opStart + n
	}
	return nil
}

// CalculateParentPointers returns, for each output marker, the index of
// its nearest enclosing marker in the push/pop nesting, or ^uint32(0) if
// none, grounded on TransformationCommands.h's CalculateParentPointers.
func CalculateParentPointers(markerCount int, commandStream []uint32) ([]uint32, error) {
	result := make([]uint32, markerCount)
	for i := range result {
		result[i] = ^uint32(0)
	}
	var pushDepthMarker []int32
	current := int32(-1)

	i := 0
	for i < len(commandStream) {
		cmd := TransformCommand(commandStream[i])
		opStart := i + 1
		n, err := operandCount(cmd, commandStream, opStart)
		if err != nil {
			return nil, err
		}
		ops := commandStream[opStart : opStart+n]
		switch cmd {
		case CmdPushLocalToWorld:
			pushDepthMarker = append(pushDepthMarker, current)
		case CmdPopLocalToWorld:
			count := int(ops[0])
			if count <= len(pushDepthMarker) {
				newLen := len(pushDepthMarker) - count
				if newLen >= 0 {
					if newLen > 0 {
						current = pushDepthMarker[newLen-1]
					} else {
						current = -1
					}
					pushDepthMarker = pushDepthMarker[:newLen]
				}
			}
		case CmdWriteOutputMatrix:
			idx := int(ops[0])
			if idx >= 0 && idx < markerCount {
				if current >= 0 {
					result[idx] = uint32(current)
				}
				current = int32(idx)
			}
		}
		i = opStart + n
	}
	return result, nil
}
