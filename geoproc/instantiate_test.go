package geoproc_test

import (
	"testing"

	"github.com/xle-project/scaffoldc/geoproc"
)

func quad() *geoproc.GeometryBlock {
	// Two triangles sharing an edge, authored as 6 independent vertices
	// (duplicated corners) so merging has something to collapse.
	positions := []float32{
		0, 0, 0, 1, 0, 0, 1, 1, 0, // tri 0
		0, 0, 0, 1, 1, 0, 0, 1, 0, // tri 1
	}
	normals := make([]float32, 6*3)
	for i := range normals {
		if i%3 == 2 {
			normals[i] = 1
		}
	}
	return &geoproc.GeometryBlock{
		Streams: []geoproc.VertexStream{
			{SemanticName: "POSITION", Components: 3, Data: positions},
			{SemanticName: "NORMAL", Components: 3, Data: normals},
		},
		Indices:            []uint32{0, 1, 2, 3, 4, 5},
		UnifiedVertexCount:  6,
		DrawCalls:           []geoproc.DrawCall{{FirstIndex: 0, IndexCount: 6, Topology: geoproc.TriangleList}},
	}
}

func TestCompleteInstantiationMergesDuplicateVertices(t *testing.T) {
	geo := quad()
	layout, err := geoproc.CompleteInstantiation(geo, geoproc.InstantiationOptions{})
	if err != nil {
		t.Fatalf("CompleteInstantiation: %v", err)
	}
	if geo.UnifiedVertexCount != 4 {
		t.Fatalf("UnifiedVertexCount = %d, want 4 (two shared corners merged)", geo.UnifiedVertexCount)
	}
	if layout.Stride == 0 || len(layout.Data) == 0 {
		t.Fatalf("expected a non-empty packed layout")
	}
	wantBytesPerVertex := layout.Stride
	if len(layout.Data) != wantBytesPerVertex*geo.UnifiedVertexCount {
		t.Fatalf("layout.Data length = %d, want %d", len(layout.Data), wantBytesPerVertex*geo.UnifiedVertexCount)
	}
}

func TestCompleteInstantiationSynthesizesTangents(t *testing.T) {
	geo := quad()
	if _, err := geoproc.CompleteInstantiation(geo, geoproc.InstantiationOptions{}); err != nil {
		t.Fatalf("CompleteInstantiation: %v", err)
	}
	found := false
	for _, s := range geo.Streams {
		if s.SemanticName == "TANGENT" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a synthesized TANGENT stream")
	}
}

func TestCompleteInstantiationBuildsAdjacency(t *testing.T) {
	geo := quad()
	if _, err := geoproc.CompleteInstantiation(geo, geoproc.InstantiationOptions{BuildAdjacency: true}); err != nil {
		t.Fatalf("CompleteInstantiation: %v", err)
	}
	adj, ok := geo.AdjacencyFor(0)
	if !ok {
		t.Fatalf("expected an adjacency buffer for draw call 0")
	}
	if len(adj) != 12 { // 2 triangles * 6 indices
		t.Fatalf("adjacency buffer length = %d, want 12", len(adj))
	}
}

func TestExcludedAttributesAreDropped(t *testing.T) {
	geo := quad()
	geo.Streams = append(geo.Streams, geoproc.VertexStream{SemanticName: "COLOR", Components: 3, Data: make([]float32, 18)})
	_, err := geoproc.CompleteInstantiation(geo, geoproc.InstantiationOptions{ExcludedAttributes: map[string]bool{"COLOR": true}})
	if err != nil {
		t.Fatalf("CompleteInstantiation: %v", err)
	}
	for _, s := range geo.Streams {
		if s.SemanticName == "COLOR" {
			t.Fatalf("COLOR stream should have been excluded")
		}
	}
}
