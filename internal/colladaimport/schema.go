// Package colladaimport is the compile-operation front end this repo
// substitutes for a DLL-hosted Collada/FBX scene importer - Collada XML
// parsing itself is out of scope here, so this package starts one stage
// later, from an already-built geoproc.NascentModel, and owns everything
// a ColladaConversion.cpp/ConversionConfig.cpp-style layer does around
// that: sidecar config loading, per-target compilation, and chunk
// artifact assembly.
package colladaimport

import "github.com/xle-project/scaffoldc/formatter/schema"

// geoRuleRecordSize is the fixed byte width of one packed GeoRule record
// within a compiled CompileConfig's GeoRules blob: a NUL-padded
// name-glob pattern in bytes 0-58, a 4-byte float32 epsilon override in
// bytes 59-62, and a 1-byte flags field (bit 0: HasEpsilon, bit 1: Deny)
// in byte 63.
const geoRuleRecordSize = 64

const (
	geoRuleFlagHasEpsilon = 1 << 0
	geoRuleFlagDeny       = 1 << 1
)

// compileConfigSchemata builds the BinarySchemata a <basename>.model
// sidecar is decoded against: a single "CompileConfig" block whose
// members are read by the formatter's opcode VM exactly like any
// scaffold record payload, so the config-load path exercises the same
// machinery as the scaffold reader.
func compileConfigSchemata() *schema.BinarySchemata {
	s := schema.NewBinarySchemata()
	s.AddBlock(&schema.Block{
		Name: "CompileConfig",
		Members: []schema.Member{
			{Name: "Epsilon", Kind: schema.KindScalar, Scalar: schema.ScalarFloat32},
			{Name: "Use16BitIndices", Kind: schema.KindScalar, Scalar: schema.ScalarUint8},
			{Name: "RemoveRedundantBitangent", Kind: schema.KindScalar, Scalar: schema.ScalarUint8},
			{Name: "BuildAdjacency", Kind: schema.KindScalar, Scalar: schema.ScalarUint8},
			{Name: "ExcludedAttributesLen", Kind: schema.KindScalar, Scalar: schema.ScalarUint32},
			{
				Name: "ExcludedAttributesBlob", Kind: schema.KindArray,
				ElementSize: schema.ConstExpr(1),
				Count:       schema.RefExpr("ExcludedAttributesLen"),
			},
			{Name: "GeoRuleCount", Kind: schema.KindScalar, Scalar: schema.ScalarUint32},
			{
				Name: "GeoRulesBlob", Kind: schema.KindArray,
				ElementSize: schema.ConstExpr(geoRuleRecordSize),
				Count:       schema.RefExpr("GeoRuleCount"),
			},
		},
	})
	return s
}
