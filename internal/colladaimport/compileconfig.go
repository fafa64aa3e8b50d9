package colladaimport

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/xle-project/scaffoldc/formatter"
	"github.com/xle-project/scaffoldc/geoproc"
)

// DecodeCompileConfig decodes a <basename>.model sidecar's raw bytes into
// a geoproc.CompileConfig, via the schema-driven BinaryFormatter rather
// than a bespoke parser.
func DecodeCompileConfig(data []byte) (*geoproc.CompileConfig, error) {
	r := formatter.NewReader(compileConfigSchemata(), data)
	v, err := r.BeginBlock("CompileConfig")
	if err != nil {
		return nil, err
	}
	fields, ok := v.(map[string]formatter.Value)
	if !ok {
		return nil, fmt.Errorf("colladaimport: CompileConfig decoded to unexpected type %T", v)
	}

	epsilon, err := floatField(fields, "Epsilon")
	if err != nil {
		return nil, err
	}

	cfg := &geoproc.CompileConfig{
		Base: geoproc.InstantiationOptions{
			MergeEpsilon:             float32(epsilon),
			RemoveRedundantBitangent: boolField(fields, "RemoveRedundantBitangent"),
			BuildAdjacency:           boolField(fields, "BuildAdjacency"),
		},
		Use16BitIndices: boolField(fields, "Use16BitIndices"),
	}

	excludedBlob, _ := fields["ExcludedAttributesBlob"].([]byte)
	if names := splitNulTerminated(excludedBlob); len(names) > 0 {
		cfg.Base.ExcludedAttributes = map[string]bool{}
		for _, n := range names {
			cfg.Base.ExcludedAttributes[n] = true
		}
	}

	rulesBlob, _ := fields["GeoRulesBlob"].([]byte)
	rules, err := decodeGeoRules(rulesBlob)
	if err != nil {
		return nil, err
	}
	cfg.GeoRules = rules
	return cfg, nil
}

func floatField(fields map[string]formatter.Value, name string) (float64, error) {
	switch v := fields[name].(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("colladaimport: field %q missing or wrong type (%T)", name, fields[name])
	}
}

func boolField(fields map[string]formatter.Value, name string) bool {
	if v, ok := fields[name].(int64); ok {
		return v != 0
	}
	return false
}

func splitNulTerminated(blob []byte) []string {
	var out []string
	start := 0
	for i, b := range blob {
		if b == 0 {
			if i > start {
				out = append(out, string(blob[start:i]))
			}
			start = i + 1
		}
	}
	if start < len(blob) {
		out = append(out, string(blob[start:]))
	}
	return out
}

func decodeGeoRules(blob []byte) ([]geoproc.GeoRule, error) {
	if len(blob)%geoRuleRecordSize != 0 {
		return nil, fmt.Errorf("colladaimport: GeoRules blob length %d is not a multiple of %d", len(blob), geoRuleRecordSize)
	}
	count := len(blob) / geoRuleRecordSize
	rules := make([]geoproc.GeoRule, 0, count)
	for i := 0; i < count; i++ {
		rec := blob[i*geoRuleRecordSize : (i+1)*geoRuleRecordSize]
		nameEnd := bytes.IndexByte(rec, 0)
		if nameEnd < 0 {
			nameEnd = geoRuleRecordSize - 5
		}
		name := string(rec[:nameEnd])
		epsilon := math.Float32frombits(binary.LittleEndian.Uint32(rec[geoRuleRecordSize-5 : geoRuleRecordSize-1]))
		flags := rec[geoRuleRecordSize-1]
		rules = append(rules, geoproc.GeoRule{
			NamePattern: name,
			Epsilon:     epsilon,
			HasEpsilon:  flags&geoRuleFlagHasEpsilon != 0,
			Deny:        flags&geoRuleFlagDeny != 0,
		})
	}
	return rules, nil
}

// EncodeCompileConfig packs cfg as a <basename>.model sidecar blob,
// matching the layout DecodeCompileConfig expects. The package tests use
// it to exercise the round trip.
func EncodeCompileConfig(cfg *geoproc.CompileConfig) []byte {
	var buf bytes.Buffer

	var f32 [4]byte
	binary.LittleEndian.PutUint32(f32[:], math.Float32bits(cfg.Base.MergeEpsilon))
	buf.Write(f32[:])
	buf.WriteByte(boolByte(cfg.Use16BitIndices))
	buf.WriteByte(boolByte(cfg.Base.RemoveRedundantBitangent))
	buf.WriteByte(boolByte(cfg.Base.BuildAdjacency))

	var names []byte
	for n := range cfg.Base.ExcludedAttributes {
		names = append(names, n...)
		names = append(names, 0)
	}
	var u32 [4]byte
	binary.LittleEndian.PutUint32(u32[:], uint32(len(names)))
	buf.Write(u32[:])
	buf.Write(names)

	binary.LittleEndian.PutUint32(u32[:], uint32(len(cfg.GeoRules)))
	buf.Write(u32[:])
	for _, r := range cfg.GeoRules {
		rec := make([]byte, geoRuleRecordSize)
		copy(rec, r.NamePattern)
		binary.LittleEndian.PutUint32(rec[geoRuleRecordSize-5:geoRuleRecordSize-1], math.Float32bits(r.Epsilon))
		var flags byte
		if r.HasEpsilon {
			flags |= geoRuleFlagHasEpsilon
		}
		if r.Deny {
			flags |= geoRuleFlagDeny
		}
		rec[geoRuleRecordSize-1] = flags
		buf.Write(rec)
	}

	return buf.Bytes()
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
