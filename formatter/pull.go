package formatter

import (
	"fmt"
	"hash/fnv"

	"github.com/xle-project/scaffoldc/core/fault"
	"github.com/xle-project/scaffoldc/formatter/schema"
)

// BlobKind classifies one token PeekNext surfaces: a block or array
// boundary, a member awaiting a read decision, or the end of the
// current pattern.
type BlobKind uint8

const (
	BlobNone BlobKind = iota
	BlobBeginBlock
	BlobEndBlock
	BlobBeginArray
	BlobEndArray
	BlobKeyedItem
	BlobValueMember
)

func (k BlobKind) String() string {
	switch k {
	case BlobBeginBlock:
		return "BeginBlock"
	case BlobEndBlock:
		return "EndBlock"
	case BlobBeginArray:
		return "BeginArray"
	case BlobEndArray:
		return "EndArray"
	case BlobKeyedItem:
		return "KeyedItem"
	case BlobValueMember:
		return "ValueMember"
	default:
		return "None"
	}
}

// Blob is one token PeekNext surfaces without consuming it - enough
// for a caller to decide whether to descend (TryBeginBlock /
// TryBeginArray), read a raw value (TryRawValue), or skip past it
// (SkipNextBlob) without committing to any of them.
type Blob struct {
	Kind BlobKind
	Name string
	Hash uint64
}

func blobNameHash(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// pullFrame is one block walked one instruction at a time, in contrast
// to decodeBlock's single-shot recursive walk: every Try* call
// advances its program counter by exactly the amount it consumes, so a
// caller can stop, skip, or descend between any two members.
type pullFrame struct {
	blockName string
	block     *schema.Block
	prog      *Program
	pc        int
	locals    map[string]int64

	valueStack []int64

	// returnPC is the parent frame's pc to resume at once this frame's
	// EndBlock is consumed; -1 for a frame with no parent (the one
	// PushPattern started).
	returnPC int

	// openArray tracks an array member whose count/element size have
	// been evaluated and whose elements are now read one at a time via
	// TryRawValue rather than materialized in one step.
	openArray      bool
	arrayMemberIdx int
	arrayLeft      int64
	arrayElemSize  int64
}

func (f *pullFrame) push(v int64) { f.valueStack = append(f.valueStack, v) }

func (f *pullFrame) pop() (int64, bool) {
	if len(f.valueStack) == 0 {
		return 0, false
	}
	v := f.valueStack[len(f.valueStack)-1]
	f.valueStack = f.valueStack[:len(f.valueStack)-1]
	return v, true
}

// PushPattern begins a pull read of blockName at the reader's current
// cursor. It becomes the frame PeekNext and the Try* methods operate
// against until its EndBlock blob is consumed with TryEndBlock.
func (r *Reader) PushPattern(blockName string) error {
	tok, err := r.ctx.lookupToken(blockName)
	if err != nil {
		return err
	}
	block, ok := r.ctx.schemata.Resolve(blockName)
	if !ok {
		return fmt.Errorf("formatter: unknown block %q", blockName)
	}
	r.pushFrame(blockName, block, tok.prog, -1)
	return nil
}

func (r *Reader) pushFrame(blockName string, block *schema.Block, prog *Program, returnPC int) {
	f := &pullFrame{
		blockName: blockName,
		block:     block,
		prog:      prog,
		locals:    map[string]int64{},
		returnPC:  returnPC,
	}
	r.pullStack = append(r.pullStack, f)
	r.ctx.blockStack = append(r.ctx.blockStack, blockName)
	r.ctx.localsStack = append(r.ctx.localsStack, f.locals)
	r.pending = nil
}

func (r *Reader) top() *pullFrame {
	if len(r.pullStack) == 0 {
		return nil
	}
	return r.pullStack[len(r.pullStack)-1]
}

func (r *Reader) popFrame() {
	n := len(r.pullStack)
	r.pullStack = r.pullStack[:n-1]
	r.ctx.blockStack = r.ctx.blockStack[:len(r.ctx.blockStack)-1]
	r.ctx.localsStack = r.ctx.localsStack[:len(r.ctx.localsStack)-1]
}

// PeekNext returns the next observable Blob of the current pattern
// without consuming it. Calling PeekNext again before a Try*/Skip*
// call returns the same Blob; BlobNone means no pattern is active.
func (r *Reader) PeekNext() (Blob, error) {
	if r.pending != nil {
		return *r.pending, nil
	}
	b, err := r.advance()
	if err != nil {
		return Blob{}, err
	}
	r.pending = &b
	return b, nil
}

func (r *Reader) advance() (Blob, error) {
	f := r.top()
	if f == nil {
		return Blob{}, nil
	}
	if f.openArray {
		m := f.block.Members[f.arrayMemberIdx]
		if f.arrayLeft > 0 {
			return Blob{Kind: BlobValueMember, Name: m.Name, Hash: blobNameHash(m.Name)}, nil
		}
		return Blob{Kind: BlobEndArray, Name: m.Name, Hash: blobNameHash(m.Name)}, nil
	}

	instrs := f.prog.Instrs
	for f.pc < len(instrs) {
		instr := instrs[f.pc]
		switch instr.Op {
		case OpEvaluateExpression:
			v, err := r.evalMember(f, instr)
			if err != nil {
				return Blob{}, err
			}
			f.push(v)
			f.pc++

		case OpIfFalseThenJump:
			flag, ok := f.pop()
			if !ok {
				return Blob{}, r.stackUnderflow()
			}
			if flag == 0 {
				f.pc = instr.Jump
			} else {
				f.pc++
			}

		case OpJump:
			f.pc = instr.Jump

		case OpThrow:
			return Blob{}, fault.NewDecodeError(r.ctx.blockContext(), uint64(r.ctx.pos), fmt.Errorf("%s", instr.Message))

		case OpPopTypeStack:
			f.pc++

		case OpInlineIndividualMember:
			m := f.block.Members[instr.MemberIdx]
			return Blob{Kind: BlobValueMember, Name: m.Name, Hash: blobNameHash(m.Name)}, nil

		case OpInlineArrayMember:
			m := f.block.Members[instr.MemberIdx]
			return Blob{Kind: BlobBeginArray, Name: m.Name, Hash: blobNameHash(m.Name)}, nil

		case OpLookupType:
			m := f.block.Members[instr.MemberIdx]
			return Blob{Kind: BlobBeginBlock, Name: m.Name, Hash: blobNameHash(m.Name)}, nil

		default:
			return Blob{}, fault.NewDecodeError(r.ctx.blockContext(), uint64(r.ctx.pos), fmt.Errorf("formatter: unknown opcode %d", instr.Op))
		}
	}
	return Blob{Kind: BlobEndBlock, Name: f.blockName, Hash: blobNameHash(f.blockName)}, nil
}

func (r *Reader) evalMember(f *pullFrame, instr Instr) (int64, error) {
	m := f.block.Members[instr.MemberIdx]
	switch m.Kind {
	case schema.KindScalar:
		return r.ctx.EvaluateExpression(m.ByteSize)
	case schema.KindArray:
		return r.ctx.EvaluateExpression(m.Count)
	case schema.KindVariant:
		discriminant := f.block.Members[instr.MemberIdx-1]
		cur, ok := f.locals[discriminant.Name]
		if !ok {
			return 0, fault.NewDecodeError(r.ctx.blockContext(), uint64(r.ctx.pos),
				fmt.Errorf("formatter: variant discriminant %q not yet read", discriminant.Name))
		}
		if cur == int64(instr.Jump) {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, nil
	}
}

func (r *Reader) stackUnderflow() error {
	return fault.NewDecodeError(r.ctx.blockContext(), uint64(r.ctx.pos), fmt.Errorf("formatter: value stack underflow"))
}

// TryBeginBlock consumes a pending BeginBlock blob, descending into
// the nested block as a new frame. It returns false without consuming
// anything if the next blob is not a BeginBlock.
func (r *Reader) TryBeginBlock() (bool, error) {
	b, err := r.PeekNext()
	if err != nil {
		return false, err
	}
	if b.Kind != BlobBeginBlock {
		return false, nil
	}
	f := r.top()
	instr := f.prog.Instrs[f.pc]
	tok, err := r.ctx.lookupToken(instr.TypeName)
	if err != nil {
		return false, err
	}
	block, ok := r.ctx.schemata.Resolve(instr.TypeName)
	if !ok {
		return false, fmt.Errorf("formatter: unknown block %q", instr.TypeName)
	}
	r.pushFrame(instr.TypeName, block, tok.prog, f.pc+2) // past OpLookupType + its paired OpPopTypeStack
	return true, nil
}

// TryEndBlock consumes a pending EndBlock blob, returning control to
// the enclosing frame (or ending the pull read entirely at the root).
// It returns false without consuming anything if more members remain.
func (r *Reader) TryEndBlock() (bool, error) {
	b, err := r.PeekNext()
	if err != nil {
		return false, err
	}
	if b.Kind != BlobEndBlock {
		return false, nil
	}
	f := r.top()
	returnPC := f.returnPC
	r.popFrame()
	if parent := r.top(); parent != nil && returnPC >= 0 {
		parent.pc = returnPC
	}
	r.pending = nil
	return true, nil
}

// TryBeginArray consumes a pending BeginArray blob, evaluating its
// element count and per-element size so the caller can drive
// TryRawValue or SkipArrayElements over count elements before calling
// TryEndArray. It returns false without consuming anything if the
// next blob is not a BeginArray.
func (r *Reader) TryBeginArray() (count int, ok bool, err error) {
	b, err := r.PeekNext()
	if err != nil {
		return 0, false, err
	}
	if b.Kind != BlobBeginArray {
		return 0, false, nil
	}
	f := r.top()
	instr := f.prog.Instrs[f.pc]
	m := f.block.Members[instr.MemberIdx]
	n, popOK := f.pop()
	if !popOK {
		return 0, false, r.stackUnderflow()
	}
	elemSize, err := r.ctx.EvaluateExpression(m.ElementSize)
	if err != nil {
		return 0, false, err
	}
	f.openArray = true
	f.arrayMemberIdx = instr.MemberIdx
	f.arrayLeft = n
	f.arrayElemSize = elemSize
	f.pc++
	r.pending = nil
	return int(n), true, nil
}

// TryEndArray consumes a pending EndArray blob, surfaced once every
// element of the array opened by TryBeginArray has been read or
// skipped. It returns false without consuming anything if elements
// remain.
func (r *Reader) TryEndArray() (bool, error) {
	b, err := r.PeekNext()
	if err != nil {
		return false, err
	}
	if b.Kind != BlobEndArray {
		return false, nil
	}
	f := r.top()
	f.openArray = false
	r.pending = nil
	return true, nil
}

// TryKeyedItem reports the name of the pending member without
// consuming it, for callers that branch on member identity before
// deciding how to consume it (TryBeginBlock/TryBeginArray/TryRawValue
// all still apply afterward). It returns false if no named member is
// pending (the pattern is at an EndBlock/EndArray boundary).
func (r *Reader) TryKeyedItem() (name string, hash uint64, ok bool, err error) {
	b, err := r.PeekNext()
	if err != nil {
		return "", 0, false, err
	}
	switch b.Kind {
	case BlobBeginBlock, BlobBeginArray, BlobValueMember:
		return b.Name, b.Hash, true, nil
	default:
		return "", 0, false, nil
	}
}

// TryRawValue consumes a pending scalar, byte-run, or array-element
// member, returning its raw bytes and scalar type without building a
// Value tree around it. It returns false without consuming anything
// if the next blob is not a value member.
func (r *Reader) TryRawValue() (raw []byte, scalar schema.ScalarType, ok bool, err error) {
	f := r.top()
	if f == nil {
		return nil, 0, false, fmt.Errorf("formatter: TryRawValue: no active pattern")
	}

	if f.openArray {
		if f.arrayLeft <= 0 {
			return nil, 0, false, nil
		}
		n := int(f.arrayElemSize)
		if r.ctx.pos+n > len(r.ctx.data) {
			return nil, 0, false, fault.NewDecodeError(r.ctx.blockContext(), uint64(r.ctx.pos), fmt.Errorf("formatter: truncated array element"))
		}
		raw = append([]byte(nil), r.ctx.data[r.ctx.pos:r.ctx.pos+n]...)
		r.ctx.pos += n
		f.arrayLeft--
		r.pending = nil
		return raw, schema.ScalarBytes, true, nil
	}

	b, err := r.PeekNext()
	if err != nil {
		return nil, 0, false, err
	}
	if b.Kind != BlobValueMember {
		return nil, 0, false, nil
	}
	instr := f.prog.Instrs[f.pc]
	m := f.block.Members[instr.MemberIdx]

	if m.Scalar == schema.ScalarBytes {
		n, popOK := f.pop()
		if !popOK {
			return nil, 0, false, r.stackUnderflow()
		}
		if r.ctx.pos+int(n) > len(r.ctx.data) {
			return nil, 0, false, fault.NewDecodeError(r.ctx.blockContext(), uint64(r.ctx.pos), fmt.Errorf("formatter: truncated byte run for %q", m.Name))
		}
		raw = append([]byte(nil), r.ctx.data[r.ctx.pos:r.ctx.pos+int(n)]...)
		r.ctx.pos += int(n)
	} else {
		n := scalarSize(m.Scalar)
		if r.ctx.pos+n > len(r.ctx.data) {
			return nil, 0, false, fault.NewDecodeError(r.ctx.blockContext(), uint64(r.ctx.pos), fmt.Errorf("formatter: truncated scalar read"))
		}
		raw = append([]byte(nil), r.ctx.data[r.ctx.pos:r.ctx.pos+n]...)
		v, verr := r.ctx.readScalar(m.Scalar)
		if verr != nil {
			return nil, 0, false, verr
		}
		if iv, isInt := v.(int64); isInt {
			f.locals[m.Name] = iv
		}
	}
	f.pc++
	r.pending = nil
	return raw, m.Scalar, true, nil
}

// SkipBytes advances the cursor by n bytes without interpreting them,
// for callers that know out of band how much raw data follows.
func (r *Reader) SkipBytes(n int) error {
	if n < 0 || r.ctx.pos+n > len(r.ctx.data) {
		return fault.NewDecodeError(r.ctx.blockContext(), uint64(r.ctx.pos), fmt.Errorf("formatter: SkipBytes(%d) past end of data", n))
	}
	r.ctx.pos += n
	return nil
}

// SkipNextBlob advances past whatever the cursor currently points at -
// a block, an array, or a scalar member - without materializing a
// Value for it, returning the number of bytes consumed.
func (r *Reader) SkipNextBlob() (int, error) {
	start := r.ctx.pos
	f := r.top()
	if f == nil {
		return 0, nil
	}

	if f.openArray {
		if f.arrayLeft <= 0 {
			if _, err := r.TryEndArray(); err != nil {
				return 0, err
			}
			return 0, nil
		}
		if _, _, ok, err := r.TryRawValue(); err != nil {
			return 0, err
		} else if !ok {
			return 0, fmt.Errorf("formatter: SkipNextBlob: expected array element")
		}
		return r.ctx.pos - start, nil
	}

	b, err := r.PeekNext()
	if err != nil {
		return 0, err
	}
	switch b.Kind {
	case BlobBeginBlock:
		if ok, err := r.TryBeginBlock(); err != nil || !ok {
			return 0, err
		}
		for {
			done, err := r.TryEndBlock()
			if err != nil {
				return 0, err
			}
			if done {
				break
			}
			if _, err := r.SkipNextBlob(); err != nil {
				return 0, err
			}
		}

	case BlobBeginArray:
		count, ok, err := r.TryBeginArray()
		if err != nil || !ok {
			return 0, err
		}
		for i := 0; i < count; i++ {
			if _, _, ok, err := r.TryRawValue(); err != nil {
				return 0, err
			} else if !ok {
				break
			}
		}
		if _, err := r.TryEndArray(); err != nil {
			return 0, err
		}

	case BlobValueMember:
		if _, _, ok, err := r.TryRawValue(); err != nil {
			return 0, err
		} else if !ok {
			return 0, fmt.Errorf("formatter: SkipNextBlob: expected value member")
		}

	case BlobEndBlock:
		if _, err := r.TryEndBlock(); err != nil {
			return 0, err
		}
	}
	return r.ctx.pos - start, nil
}

// SkipArrayElements advances past count elements of elemBlockName
// without decoding them. When elemBlockName has a statically known
// size (TryCalculateFixedSize), it bulk-advances the cursor by
// size*count in one step instead of walking each element; otherwise it
// falls back to pushing and skipping each element's pattern in turn.
func (r *Reader) SkipArrayElements(elemBlockName string, count int) (int, error) {
	if count <= 0 {
		return 0, nil
	}
	if size, ok := r.ctx.TryCalculateFixedSize(elemBlockName); ok {
		total := size * count
		if err := r.SkipBytes(total); err != nil {
			return 0, err
		}
		return total, nil
	}

	consumed := 0
	for i := 0; i < count; i++ {
		if err := r.PushPattern(elemBlockName); err != nil {
			return consumed, err
		}
		before := r.ctx.pos
		for {
			done, err := r.TryEndBlock()
			if err != nil {
				return consumed, err
			}
			if done {
				break
			}
			if _, err := r.SkipNextBlob(); err != nil {
				return consumed, err
			}
		}
		consumed += r.ctx.pos - before
	}
	return consumed, nil
}
