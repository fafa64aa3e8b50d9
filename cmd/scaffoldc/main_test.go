package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/xle-project/scaffoldc/assets/chunk"
)

func TestRunCompileWritesReadableContainer(t *testing.T) {
	scenePath := writeSceneFixture(t)
	outPath := filepath.Join(t.TempDir(), "out.scaffold")

	if err := runCompile(context.Background(), scenePath, outPath, 2); err != nil {
		t.Fatalf("runCompile: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	artifacts, err := chunk.ReadContainer(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadContainer: %v", err)
	}
	if _, ok := chunk.Find(artifacts, chunk.TypeModelScaffold); !ok {
		t.Fatalf("expected a ModelScaffold artifact in the compiled container")
	}
	if _, ok := chunk.Find(artifacts, chunk.TypeMaterialScaffold); !ok {
		t.Fatalf("expected a MaterialScaffold artifact in the compiled container")
	}
	if _, ok := chunk.Find(artifacts, chunk.TypeSkeletonScaffold); !ok {
		t.Fatalf("expected a SkeletonScaffold artifact in the compiled container")
	}
}

func TestRunDumpReadsCompiledContainer(t *testing.T) {
	scenePath := writeSceneFixture(t)
	outPath := filepath.Join(t.TempDir(), "out.scaffold")
	if err := runCompile(context.Background(), scenePath, outPath, 1); err != nil {
		t.Fatalf("runCompile: %v", err)
	}
	if err := runDump(outPath); err != nil {
		t.Fatalf("runDump: %v", err)
	}
}
