package geoproc_test

import (
	"testing"

	"github.com/xle-project/scaffoldc/geoproc"
)

func TestCompileConfigOptionsForAppliesMatchingEpsilon(t *testing.T) {
	cfg := &geoproc.CompileConfig{
		Base: geoproc.InstantiationOptions{MergeEpsilon: 0},
		GeoRules: []geoproc.GeoRule{
			{NamePattern: "prop_*", Epsilon: 0.01, HasEpsilon: true},
		},
	}
	got := cfg.OptionsFor("prop_barrel")
	if got.MergeEpsilon != 0.01 {
		t.Fatalf("MergeEpsilon = %v, want 0.01", got.MergeEpsilon)
	}
	other := cfg.OptionsFor("character_hero")
	if other.MergeEpsilon != 0 {
		t.Fatalf("MergeEpsilon = %v, want 0 (no matching rule)", other.MergeEpsilon)
	}
}

func TestCompileConfigFilterDeniedDropsMatchingCommands(t *testing.T) {
	cfg := &geoproc.CompileConfig{
		GeoRules: []geoproc.GeoRule{{NamePattern: "debug_*", Deny: true}},
	}
	cmds := []geoproc.Command{
		{BindingPoint: "debug_gizmo"},
		{BindingPoint: "hero_mesh"},
	}
	kept := cfg.FilterDenied(cmds)
	if len(kept) != 1 || kept[0].BindingPoint != "hero_mesh" {
		t.Fatalf("FilterDenied kept %+v, want only hero_mesh", kept)
	}
}

func TestCompileConfigIsDenied(t *testing.T) {
	cfg := &geoproc.CompileConfig{GeoRules: []geoproc.GeoRule{{NamePattern: "lod2_*", Deny: true}}}
	if !cfg.IsDenied("lod2_tree") {
		t.Fatalf("expected lod2_tree to be denied")
	}
	if cfg.IsDenied("lod0_tree") {
		t.Fatalf("did not expect lod0_tree to be denied")
	}
}
