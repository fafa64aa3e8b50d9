package colladaimport_test

import (
	"testing"

	"github.com/xle-project/scaffoldc/geoproc"
	"github.com/xle-project/scaffoldc/internal/colladaimport"
)

func TestCompileConfigRoundTrip(t *testing.T) {
	original := &geoproc.CompileConfig{
		Base: geoproc.InstantiationOptions{
			MergeEpsilon:             0.001,
			RemoveRedundantBitangent: true,
			BuildAdjacency:           true,
			ExcludedAttributes:       map[string]bool{"COLOR": true},
		},
		Use16BitIndices: true,
		GeoRules: []geoproc.GeoRule{
			{NamePattern: "prop_*", Epsilon: 0.01, HasEpsilon: true},
			{NamePattern: "debug_*", Deny: true},
		},
	}

	data := colladaimport.EncodeCompileConfig(original)
	decoded, err := colladaimport.DecodeCompileConfig(data)
	if err != nil {
		t.Fatalf("DecodeCompileConfig: %v", err)
	}

	if decoded.Use16BitIndices != true {
		t.Fatalf("Use16BitIndices = %v, want true", decoded.Use16BitIndices)
	}
	if decoded.Base.RemoveRedundantBitangent != true || decoded.Base.BuildAdjacency != true {
		t.Fatalf("base flags not round-tripped: %+v", decoded.Base)
	}
	if !decoded.Base.ExcludedAttributes["COLOR"] {
		t.Fatalf("expected COLOR in ExcludedAttributes, got %v", decoded.Base.ExcludedAttributes)
	}
	if len(decoded.GeoRules) != 2 {
		t.Fatalf("GeoRules count = %d, want 2", len(decoded.GeoRules))
	}
	if !decoded.IsDenied("debug_gizmo") {
		t.Fatalf("expected debug_gizmo to be denied after round trip")
	}
	if decoded.OptionsFor("prop_barrel").MergeEpsilon != float32(0.01) {
		t.Fatalf("expected prop_* epsilon override to survive round trip, got %v", decoded.OptionsFor("prop_barrel").MergeEpsilon)
	}
}

func TestCompileConfigRoundTripEmpty(t *testing.T) {
	data := colladaimport.EncodeCompileConfig(&geoproc.CompileConfig{})
	decoded, err := colladaimport.DecodeCompileConfig(data)
	if err != nil {
		t.Fatalf("DecodeCompileConfig: %v", err)
	}
	if len(decoded.GeoRules) != 0 {
		t.Fatalf("expected no geo rules, got %d", len(decoded.GeoRules))
	}
	if decoded.Use16BitIndices {
		t.Fatalf("expected Use16BitIndices to default false")
	}
}
