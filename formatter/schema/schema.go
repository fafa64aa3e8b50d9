// Package schema describes the compiled type layout a BinaryFormatter
// walks: named blocks made of members, where a member's size may be a
// fixed constant, a reference to a previously-read sibling member (an
// "expression"), or a system symbol such as alignment padding or a
// null-terminated run.
package schema

// SystemSymbol names a value the evaluator can resolve without
// consulting member data - alignment padding, the byte count still
// remaining in the input after the cursor, or a null-terminator scan.
type SystemSymbol uint8

const (
	SymbolNone SystemSymbol = iota
	SymbolAlign2
	SymbolAlign4
	SymbolAlign8
	SymbolNullTerminated
	SymbolRemainingBytes
)

// MemberKind distinguishes a plain scalar/array member from a nested
// block or a polymorphic (tagged-union) member.
type MemberKind uint8

const (
	KindScalar MemberKind = iota
	KindArray
	KindBlock
	KindVariant
)

// ScalarType is the primitive type of a leaf member.
type ScalarType uint8

const (
	ScalarUint8 ScalarType = iota
	ScalarUint16
	ScalarUint32
	ScalarUint64
	ScalarInt8
	ScalarInt16
	ScalarInt32
	ScalarInt64
	ScalarFloat32
	ScalarFloat64
	ScalarBytes // opaque byte run; size resolved via Expr or Symbol
)

// Expr is a member-size expression: either a literal constant, a
// reference to an earlier sibling member's decoded value (by name), or a
// system symbol.
type Expr struct {
	Const    int64
	RefName  string
	Symbol   SystemSymbol
	IsConst  bool
	IsRef    bool
	IsSymbol bool
}

func ConstExpr(v int64) Expr          { return Expr{Const: v, IsConst: true} }
func RefExpr(name string) Expr        { return Expr{RefName: name, IsRef: true} }
func SymbolExpr(s SystemSymbol) Expr  { return Expr{Symbol: s, IsSymbol: true} }

// Member is one field of a Block: its wire name, kind, and (depending on
// kind) scalar type, nested block name, array element type, or variant
// tag table.
type Member struct {
	Name       string
	Kind       MemberKind
	Scalar     ScalarType
	BlockName  string // for KindBlock members
	ElementSize Expr   // for KindArray: size of one element, in bytes
	Count      Expr    // for KindArray: element count expression
	ByteSize   Expr    // for KindScalar ScalarBytes: explicit byte length, if not self-describing
	// VariantTags maps a discriminant value (read as the immediately
	// preceding sibling member) to the block name to dispatch into.
	VariantTags map[int64]string
}

// Block is a named record type: an ordered member list. Blocks may
// reference other blocks by name (KindBlock/KindVariant members),
// forming the schema graph a BinarySchemata resolves.
type Block struct {
	Name    string
	Members []Member
}

// BinarySchemata is the full set of named block definitions a
// BinaryFormatter compiles against, plus literal/alias tables shared
// across blocks.
type BinarySchemata struct {
	Blocks  map[string]*Block
	Aliases map[string]string // alias name -> canonical block name
	Literals map[string]int64 // named compile-time constants
}

func NewBinarySchemata() *BinarySchemata {
	return &BinarySchemata{Blocks: map[string]*Block{}, Aliases: map[string]string{}, Literals: map[string]int64{}}
}

func (s *BinarySchemata) AddBlock(b *Block) { s.Blocks[b.Name] = b }

// Resolve follows aliases to the canonical block definition.
func (s *BinarySchemata) Resolve(name string) (*Block, bool) {
	for i := 0; i < 8; i++ { // bounded: aliases never chain this deep in practice
		if b, ok := s.Blocks[name]; ok {
			return b, true
		}
		canon, ok := s.Aliases[name]
		if !ok {
			return nil, false
		}
		name = canon
	}
	return nil, false
}
