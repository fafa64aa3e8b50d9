package colladaimport_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/xle-project/scaffoldc/internal/colladaimport"
)

const sampleImportConfig = `
resources:
  rename:
    DiffuseColor: DiffuseTexture
  suppress:
    - LightmapTexture
constants:
  rename:
    Shininess: SpecularPower
vertexSemantics:
  suppress:
    - COLOR1
`

func TestLoadImportConfiguration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "colladaimport.dat")
	if err := os.WriteFile(path, []byte(sampleImportConfig), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, fs, err := colladaimport.LoadImportConfiguration(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadImportConfiguration: %v", err)
	}
	defer fs.Close()

	if got := cfg.Resources.AsNative("DiffuseColor"); got != "DiffuseTexture" {
		t.Fatalf("AsNative(DiffuseColor) = %q, want DiffuseTexture", got)
	}
	if !cfg.Resources.IsSuppressed("LightmapTexture") {
		t.Fatalf("expected LightmapTexture to be suppressed")
	}
	if got := cfg.Constants.AsNative("Shininess"); got != "SpecularPower" {
		t.Fatalf("AsNative(Shininess) = %q, want SpecularPower", got)
	}
	if !cfg.VertexSemantics.IsSuppressed("COLOR1") {
		t.Fatalf("expected COLOR1 to be suppressed")
	}
	if got := cfg.VertexSemantics.AsNative("TEXCOORD0"); got != "TEXCOORD0" {
		t.Fatalf("AsNative with no rename should pass through unchanged, got %q", got)
	}
	if fs.Validate() != "" {
		t.Fatalf("expected freshly loaded FileSet to be valid")
	}
}

func TestLoadImportConfigurationMissingFile(t *testing.T) {
	if _, _, err := colladaimport.LoadImportConfiguration(context.Background(), filepath.Join(t.TempDir(), "missing.dat")); err == nil {
		t.Fatalf("expected an error for a missing sidecar file")
	}
}
