package formatter

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/xle-project/scaffoldc/core/fault"
	"github.com/xle-project/scaffoldc/formatter/schema"
)

// EvaluatedTypeToken is an opaque handle to a compiled Program, cached by
// block name so repeated reads of the same type (e.g. every element of
// an array of structs) skip recompilation.
type EvaluatedTypeToken struct {
	prog *Program
}

// EvaluationContext drives one BinaryFormatter read: it owns the raw
// byte cursor, the compiled-program cache, and the three-tier symbol
// resolution order (locals, then template parameters, then globals) that
// OpEvaluateExpression's sibling-reference case consults.
type EvaluationContext struct {
	schemata *schema.BinarySchemata
	data     []byte
	pos      int

	programCache map[string]*EvaluatedTypeToken

	// locals holds decoded sibling-member values for the block
	// currently being read, keyed by member name; reset on BeginBlock.
	localsStack []map[string]int64
	blockStack  []string
	templateParams map[string]int64
	globals        map[string]int64

	// fixedSizeCache memoises TryCalculateFixedSize results, keyed by
	// block name; invalidated whenever a global changes, since a fixed
	// size may depend on a global-resolved array count.
	fixedSizeCache map[string]fixedSizeResult
}

type fixedSizeResult struct {
	size  int
	fixed bool
}

func NewEvaluationContext(schemata *schema.BinarySchemata, data []byte) *EvaluationContext {
	return &EvaluationContext{
		schemata:       schemata,
		data:           data,
		programCache:   map[string]*EvaluatedTypeToken{},
		templateParams: map[string]int64{},
		globals:        map[string]int64{},
		fixedSizeCache: map[string]fixedSizeResult{},
	}
}

// SetGlobal assigns a named global symbol; any cached fixed-size result
// is invalidated since it may have depended on the prior value.
func (c *EvaluationContext) SetGlobal(name string, v int64) {
	c.globals[name] = v
	c.fixedSizeCache = map[string]fixedSizeResult{}
}

func (c *EvaluationContext) SetTemplateParam(name string, v int64) { c.templateParams[name] = v }

// lookupToken resolves (and caches) the compiled Program for blockName.
func (c *EvaluationContext) lookupToken(blockName string) (*EvaluatedTypeToken, error) {
	if tok, ok := c.programCache[blockName]; ok {
		return tok, nil
	}
	prog, err := Compile(c.schemata, blockName)
	if err != nil {
		return nil, err
	}
	tok := &EvaluatedTypeToken{prog: prog}
	c.programCache[blockName] = tok
	return tok, nil
}

// resolveSymbol looks up name in locals (current block), then template
// params, then globals, in that order.
func (c *EvaluationContext) resolveSymbol(name string) (int64, bool) {
	if len(c.localsStack) > 0 {
		if v, ok := c.localsStack[len(c.localsStack)-1][name]; ok {
			return v, true
		}
	}
	if v, ok := c.templateParams[name]; ok {
		return v, true
	}
	v, ok := c.globals[name]
	return v, ok
}

// EvaluateExpression resolves a schema.Expr against the current
// evaluation state.
func (c *EvaluationContext) EvaluateExpression(e schema.Expr) (int64, error) {
	switch {
	case e.IsConst:
		return e.Const, nil
	case e.IsRef:
		v, ok := c.resolveSymbol(e.RefName)
		if !ok {
			return 0, fault.NewDecodeError(c.blockContext(), uint64(c.pos), fmt.Errorf("formatter: unresolved symbol %q", e.RefName))
		}
		return v, nil
	case e.IsSymbol:
		return c.evaluateSystemSymbol(e.Symbol)
	default:
		return 0, fault.NewDecodeError(c.blockContext(), uint64(c.pos), fmt.Errorf("formatter: empty expression"))
	}
}

func (c *EvaluationContext) evaluateSystemSymbol(s schema.SystemSymbol) (int64, error) {
	switch s {
	case schema.SymbolAlign2:
		return int64(alignPadding(c.pos, 2)), nil
	case schema.SymbolAlign4:
		return int64(alignPadding(c.pos, 4)), nil
	case schema.SymbolAlign8:
		return int64(alignPadding(c.pos, 8)), nil
	case schema.SymbolNullTerminated:
		for i := c.pos; i < len(c.data); i++ {
			if c.data[i] == 0 {
				return int64(i - c.pos + 1), nil
			}
		}
		return 0, fault.NewDecodeError(c.blockContext(), uint64(c.pos), fmt.Errorf("formatter: unterminated null-terminated run"))
	case schema.SymbolRemainingBytes:
		return int64(len(c.data) - c.pos), nil
	default:
		return 0, fault.NewDecodeError(c.blockContext(), uint64(c.pos), fmt.Errorf("formatter: unknown system symbol %d", s))
	}
}

// blockContext joins the current block-nesting path (e.g.
// "ModelScaffold/Geometries[3]/Streams") for DecodeError breadcrumbs.
func (c *EvaluationContext) blockContext() string {
	out := ""
	for i, b := range c.blockStack {
		if i > 0 {
			out += "/"
		}
		out += b
	}
	return out
}

func alignPadding(pos, align int) int {
	rem := pos % align
	if rem == 0 {
		return 0
	}
	return align - rem
}

// TryCalculateFixedSize returns the byte size of blockName when every
// member's size is resolvable without reading data (no SymbolRemainingBytes,
// no sibling-ref array counts, no variant dispatch) - used to skip whole
// arrays of fixed-size structs without walking each element.
func (c *EvaluationContext) TryCalculateFixedSize(blockName string) (size int, ok bool) {
	if cached, hit := c.fixedSizeCache[blockName]; hit {
		return cached.size, cached.fixed
	}
	block, found := c.schemata.Resolve(blockName)
	if !found {
		c.fixedSizeCache[blockName] = fixedSizeResult{}
		return 0, false
	}
	total := 0
	for _, m := range block.Members {
		switch m.Kind {
		case schema.KindVariant:
			c.fixedSizeCache[blockName] = fixedSizeResult{}
			return 0, false
		case schema.KindScalar:
			if m.Scalar == schema.ScalarBytes {
				if !m.ByteSize.IsConst {
					c.fixedSizeCache[blockName] = fixedSizeResult{}
					return 0, false
				}
				total += int(m.ByteSize.Const)
			} else {
				total += scalarSize(m.Scalar)
			}
		case schema.KindArray:
			if !m.Count.IsConst || !m.ElementSize.IsConst {
				c.fixedSizeCache[blockName] = fixedSizeResult{}
				return 0, false
			}
			total += int(m.Count.Const) * int(m.ElementSize.Const)
		case schema.KindBlock:
			sub, subOK := c.TryCalculateFixedSize(m.BlockName)
			if !subOK {
				c.fixedSizeCache[blockName] = fixedSizeResult{}
				return 0, false
			}
			total += sub
		}
	}
	c.fixedSizeCache[blockName] = fixedSizeResult{size: total, fixed: true}
	return total, true
}

func scalarSize(s schema.ScalarType) int {
	switch s {
	case schema.ScalarUint8, schema.ScalarInt8:
		return 1
	case schema.ScalarUint16, schema.ScalarInt16:
		return 2
	case schema.ScalarUint32, schema.ScalarInt32, schema.ScalarFloat32:
		return 4
	case schema.ScalarUint64, schema.ScalarInt64, schema.ScalarFloat64:
		return 8
	default:
		return 0
	}
}

// readScalar reads one scalar member and returns its decoded value: an
// int64 for every integer ScalarType, or a float64 for both
// floating-point types (float32 members are widened). Integer values (and only those) are additionally
// usable as locals for sibling-reference expressions (array counts,
// variant discriminants) - the schema format never drives a count or
// discriminant off a floating-point member.
func (c *EvaluationContext) readScalar(s schema.ScalarType) (Value, error) {
	n := scalarSize(s)
	if n == 0 || c.pos+n > len(c.data) {
		return nil, fault.NewDecodeError(c.blockContext(), uint64(c.pos), fmt.Errorf("formatter: truncated scalar read"))
	}
	raw := c.data[c.pos : c.pos+n]
	c.pos += n
	switch s {
	case schema.ScalarUint8:
		return int64(raw[0]), nil
	case schema.ScalarInt8:
		return int64(int8(raw[0])), nil
	case schema.ScalarUint16:
		return int64(binary.LittleEndian.Uint16(raw)), nil
	case schema.ScalarInt16:
		return int64(int16(binary.LittleEndian.Uint16(raw))), nil
	case schema.ScalarUint32:
		return int64(binary.LittleEndian.Uint32(raw)), nil
	case schema.ScalarInt32:
		return int64(int32(binary.LittleEndian.Uint32(raw))), nil
	case schema.ScalarFloat32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(raw))), nil
	case schema.ScalarUint64:
		return int64(binary.LittleEndian.Uint64(raw)), nil
	case schema.ScalarInt64:
		return int64(binary.LittleEndian.Uint64(raw)), nil
	case schema.ScalarFloat64:
		return math.Float64frombits(binary.LittleEndian.Uint64(raw)), nil
	default:
		return nil, fault.NewDecodeError(c.blockContext(), uint64(c.pos), fmt.Errorf("formatter: unsupported scalar type %d", s))
	}
}
