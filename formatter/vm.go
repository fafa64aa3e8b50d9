package formatter

import (
	"fmt"

	"github.com/xle-project/scaffoldc/core/fault"
	"github.com/xle-project/scaffoldc/formatter/schema"
)

// Value is a decoded node: a scalar (int64/float64), a raw byte run
// ([]byte), a nested block (map[string]Value), or an array ([]Value).
type Value any

// Reader is the pull side of the BinaryFormatter: it drives an
// EvaluationContext through a compiled Program, exposing the same
// vocabulary the schema compiler emits instructions for - a block is
// entered/exited, an array is entered/exited, a keyed (variant) item is
// chosen, and individual value members are read.
//
// Two read styles share the same cursor: BeginBlock decodes a whole
// block in one eager, recursive call; PushPattern plus the Try*/Skip*
// methods walk the same instruction stream one blob at a time, letting
// a caller decide - without committing - whether to descend, read, or
// skip each member as it is encountered.
type Reader struct {
	ctx *EvaluationContext

	pullStack []*pullFrame
	pending   *Blob
}

func NewReader(schemata *schema.BinarySchemata, data []byte) *Reader {
	return &Reader{ctx: NewEvaluationContext(schemata, data)}
}

// Context exposes the underlying EvaluationContext, e.g. to set globals
// before decoding (array counts supplied out of band by the caller).
func (r *Reader) Context() *EvaluationContext { return r.ctx }

// BeginBlock decodes blockName at the reader's current cursor and
// returns its fields as a Value tree. It is the entry point a caller
// uses for each top-level scaffold record payload.
func (r *Reader) BeginBlock(blockName string) (Value, error) {
	return r.ctx.decodeBlock(blockName)
}

// decodeBlock is the opcode interpreter's core loop: it resolves
// (compiling and caching) blockName's Program, then executes its
// instructions against the current cursor, producing a
// map[string]Value keyed by member name.
func (c *EvaluationContext) decodeBlock(blockName string) (Value, error) {
	tok, err := c.lookupToken(blockName)
	if err != nil {
		return nil, err
	}
	block, ok := c.schemata.Resolve(blockName)
	if !ok {
		return nil, fmt.Errorf("formatter: unknown block %q", blockName)
	}

	result := map[string]Value{}
	locals := map[string]int64{}
	c.localsStack = append(c.localsStack, locals)
	c.blockStack = append(c.blockStack, blockName)
	defer func() {
		c.localsStack = c.localsStack[:len(c.localsStack)-1]
		c.blockStack = c.blockStack[:len(c.blockStack)-1]
	}()

	var valueStack []int64
	push := func(v int64) { valueStack = append(valueStack, v) }
	pop := func() (int64, error) {
		if len(valueStack) == 0 {
			return 0, fault.NewDecodeError(c.blockContext(), uint64(c.pos), fmt.Errorf("formatter: value stack underflow"))
		}
		v := valueStack[len(valueStack)-1]
		valueStack = valueStack[:len(valueStack)-1]
		return v, nil
	}

	instrs := tok.prog.Instrs
	pc := 0
	for pc < len(instrs) {
		instr := instrs[pc]
		switch instr.Op {
		case OpEvaluateExpression:
			m := block.Members[instr.MemberIdx]
			switch m.Kind {
			case schema.KindScalar:
				v, err := c.EvaluateExpression(m.ByteSize)
				if err != nil {
					return nil, err
				}
				push(v)
			case schema.KindArray:
				v, err := c.EvaluateExpression(m.Count)
				if err != nil {
					return nil, err
				}
				push(v)
			case schema.KindVariant:
				discriminant := block.Members[instr.MemberIdx-1]
				cur, ok := locals[discriminant.Name]
				if !ok {
					return nil, fault.NewDecodeError(c.blockContext(), uint64(c.pos),
						fmt.Errorf("formatter: variant discriminant %q not yet read", discriminant.Name))
				}
				if cur == int64(instr.Jump) {
					push(1)
				} else {
					push(0)
				}
			}
			pc++

		case OpInlineIndividualMember:
			m := block.Members[instr.MemberIdx]
			if m.Scalar == schema.ScalarBytes {
				n, err := pop()
				if err != nil {
					return nil, err
				}
				if c.pos+int(n) > len(c.data) {
					return nil, fault.NewDecodeError(c.blockContext(), uint64(c.pos), fmt.Errorf("formatter: truncated byte run for %q", m.Name))
				}
				raw := c.data[c.pos : c.pos+int(n)]
				c.pos += int(n)
				result[m.Name] = append([]byte(nil), raw...)
			} else {
				v, err := c.readScalar(m.Scalar)
				if err != nil {
					return nil, err
				}
				result[m.Name] = v
				if iv, ok := v.(int64); ok {
					locals[m.Name] = iv
				}
			}
			pc++

		case OpInlineArrayMember:
			m := block.Members[instr.MemberIdx]
			count, err := pop()
			if err != nil {
				return nil, err
			}
			elemSize, err := c.EvaluateExpression(m.ElementSize)
			if err != nil {
				return nil, err
			}
			total := int(count) * int(elemSize)
			if c.pos+total > len(c.data) {
				return nil, fault.NewDecodeError(c.blockContext(), uint64(c.pos), fmt.Errorf("formatter: truncated array for %q", m.Name))
			}
			raw := c.data[c.pos : c.pos+total]
			c.pos += total
			result[m.Name] = append([]byte(nil), raw...)
			locals[m.Name] = count
			pc++

		case OpLookupType:
			nested, err := c.decodeBlock(instr.TypeName)
			if err != nil {
				return nil, err
			}
			m := block.Members[instr.MemberIdx]
			result[m.Name] = nested
			pc++

		case OpPopTypeStack:
			pc++

		case OpIfFalseThenJump:
			flag, err := pop()
			if err != nil {
				return nil, err
			}
			if flag == 0 {
				pc = instr.Jump
			} else {
				pc++
			}

		case OpJump:
			pc = instr.Jump

		case OpThrow:
			return nil, fault.NewDecodeError(c.blockContext(), uint64(c.pos), fmt.Errorf("%s", instr.Message))

		default:
			return nil, fault.NewDecodeError(c.blockContext(), uint64(c.pos), fmt.Errorf("formatter: unknown opcode %d", instr.Op))
		}
	}
	return result, nil
}

// Pos returns the reader's current byte cursor, for callers that
// interleave formatter reads with raw-block reads (e.g. a scaffold
// record payload that embeds a BlockSerializer sub-block after a
// formatter-described header).
func (r *Reader) Pos() int { return r.ctx.pos }
