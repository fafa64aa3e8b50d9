package formatter

import (
	"fmt"

	"github.com/xle-project/scaffoldc/formatter/schema"
)

// Program is a compiled instruction stream for one named block,
// produced once per block name and cached by EvaluatedTypeToken.
type Program struct {
	BlockName string
	Instrs    []Instr
}

// compiler lowers a schema.Block into a flat Instr stream. A scalar
// member becomes OpInlineIndividualMember (preceded by an
// OpEvaluateExpression for its ByteSize when it is a ScalarBytes run), an
// array member becomes OpEvaluateExpression + OpInlineArrayMember, and a
// nested block member becomes OpLookupType + OpPopTypeStack; a
// KindVariant member becomes one 5-instruction group per tag
// (OpEvaluateExpression, OpIfFalseThenJump, OpLookupType,
// OpPopTypeStack, OpJump) followed by a closing OpThrow.
type compiler struct {
	schemata *schema.BinarySchemata
}

// Compile produces a Program for the named block. It does not recurse
// into nested block members eagerly - OpLookupType defers that to
// evaluation time, so mutually-recursive schemas compile without
// special-casing cycles.
func Compile(schemata *schema.BinarySchemata, blockName string) (*Program, error) {
	c := &compiler{schemata: schemata}
	block, ok := schemata.Resolve(blockName)
	if !ok {
		return nil, fmt.Errorf("formatter: unknown block %q", blockName)
	}
	prog := &Program{BlockName: blockName}
	for idx, m := range block.Members {
		c.compileMember(prog, idx, m)
	}
	return prog, nil
}

func (c *compiler) compileMember(prog *Program, idx int, m schema.Member) {
	switch m.Kind {
	case schema.KindScalar:
		if m.Scalar == schema.ScalarBytes {
			prog.Instrs = append(prog.Instrs, Instr{Op: OpEvaluateExpression, MemberIdx: idx})
		}
		prog.Instrs = append(prog.Instrs, Instr{Op: OpInlineIndividualMember, MemberIdx: idx})
	case schema.KindArray:
		prog.Instrs = append(prog.Instrs, Instr{Op: OpEvaluateExpression, MemberIdx: idx})
		prog.Instrs = append(prog.Instrs, Instr{Op: OpInlineArrayMember, MemberIdx: idx})
	case schema.KindBlock:
		prog.Instrs = append(prog.Instrs, Instr{Op: OpLookupType, TypeName: m.BlockName, MemberIdx: idx})
		prog.Instrs = append(prog.Instrs, Instr{Op: OpPopTypeStack})
	case schema.KindVariant:
		// The discriminant was the previous scalar member; each tag
		// value gets its own 5-instruction test/dispatch/skip group:
		// evaluate-equality, jump-past-branch-if-false, decode, pop,
		// jump-past-every-remaining-branch-if-matched.
		type pendingSkip struct{ instrIdx int }
		var skips []pendingSkip
		for tagValue, blockName := range m.VariantTags {
			base := len(prog.Instrs)
			prog.Instrs = append(prog.Instrs,
				Instr{Op: OpEvaluateExpression, MemberIdx: idx, Jump: int(tagValue)},
				Instr{Op: OpIfFalseThenJump, Jump: base + 5},
				Instr{Op: OpLookupType, TypeName: blockName, MemberIdx: idx},
				Instr{Op: OpPopTypeStack},
				Instr{Op: OpJump}, // operand patched once the dispatch's end is known
			)
			skips = append(skips, pendingSkip{instrIdx: base + 4})
		}
		prog.Instrs = append(prog.Instrs, Instr{
			Op: OpThrow, MemberIdx: idx,
			Message: fmt.Sprintf("no variant tag matched for member %q", m.Name),
		})
		end := len(prog.Instrs)
		for _, s := range skips {
			prog.Instrs[s.instrIdx].Jump = end
		}
	}
}
