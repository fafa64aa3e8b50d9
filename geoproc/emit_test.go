package geoproc_test

import (
	"encoding/binary"
	"hash/fnv"
	"sort"
	"testing"

	"github.com/xle-project/scaffoldc/assets/scaffold"
	"github.com/xle-project/scaffoldc/geoproc"
)

func TestEmitCommandStreamRoundTrip(t *testing.T) {
	model := geoproc.NewNascentModel()
	geoID := geoproc.ObjectID{Namespace: 1, ID: 1}
	model.Geometries[geoID] = quad()
	model.Commands = []geoproc.Command{
		{
			GeometryID:      geoID,
			BindingPoint:    "root",
			MaterialSymbols: []string{"mat/default"},
		},
	}

	out, err := geoproc.EmitCommandStream(model, nil, geoproc.EmitOptions{})
	if err != nil {
		t.Fatalf("EmitCommandStream: %v", err)
	}
	if len(out.GeoLayouts) != 1 {
		t.Fatalf("GeoLayouts count = %d, want 1", len(out.GeoLayouts))
	}

	r := scaffold.NewReader(out.CommandStream)
	recs, err := r.All()
	if err != nil {
		t.Fatalf("reading emitted stream: %v", err)
	}
	var sawGeoCall, sawMaterials bool
	for _, rec := range recs {
		switch rec.Tag {
		case scaffold.ModelGeoCall:
			sawGeoCall = true
		case scaffold.ModelSetMaterialAssignments:
			sawMaterials = true
		}
	}
	if !sawGeoCall {
		t.Fatalf("expected a ModelGeoCall record")
	}
	if !sawMaterials {
		t.Fatalf("expected a ModelSetMaterialAssignments record")
	}
	if out.MaterialDehash[hashString("mat/default")] != "mat/default" {
		t.Fatalf("expected material symbol to be recoverable via dehash table")
	}
}

// hashString mirrors geoproc's internal hashName for assertions; kept
// local to the test since the production hash function is unexported.
func hashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// TestEmitCommandStreamPreservesDocumentOrder feeds commands whose
// geometry ids sort the opposite way from their document order, and
// checks the emitted GeoCall sequence follows the commands, not the
// geometry ids.
func TestEmitCommandStreamPreservesDocumentOrder(t *testing.T) {
	model := geoproc.NewNascentModel()
	firstGeo := geoproc.ObjectID{Namespace: 1, ID: 9}
	secondGeo := geoproc.ObjectID{Namespace: 1, ID: 1}
	model.Geometries[firstGeo] = quad()
	model.Geometries[secondGeo] = quad()
	model.Commands = []geoproc.Command{
		{GeometryID: firstGeo, BindingPoint: "a", MaterialSymbols: []string{"mat/a"}},
		{GeometryID: secondGeo, BindingPoint: "b", MaterialSymbols: []string{"mat/b"}},
	}

	out, err := geoproc.EmitCommandStream(model, nil, geoproc.EmitOptions{})
	if err != nil {
		t.Fatalf("EmitCommandStream: %v", err)
	}

	var geoIDs []uint32
	r := scaffold.NewReader(out.CommandStream)
	recs, err := r.All()
	if err != nil {
		t.Fatalf("reading emitted stream: %v", err)
	}
	for _, rec := range recs {
		if rec.Tag == scaffold.ModelGeoCall {
			if len(rec.Payload) != 4 {
				t.Fatalf("ModelGeoCall payload length = %d, want 4 (dense u32 id)", len(rec.Payload))
			}
			geoIDs = append(geoIDs, binary.LittleEndian.Uint32(rec.Payload))
		}
	}
	if len(geoIDs) != 2 || geoIDs[0] == geoIDs[1] {
		t.Fatalf("geoIDs = %v, want two distinct dense ids in document order", geoIDs)
	}
	if geoIDs[0] != 0 || geoIDs[1] != 1 {
		t.Fatalf("geoIDs = %v, want [0 1] assigned in first-reference (document) order", geoIDs)
	}
}

// TestEmitCommandStreamDedupsUnchangedState checks that a run of
// commands sharing the same binding point, materials, and groups only
// re-emits the corresponding state-change record once.
func TestEmitCommandStreamDedupsUnchangedState(t *testing.T) {
	model := geoproc.NewNascentModel()
	geoID := geoproc.ObjectID{Namespace: 1, ID: 1}
	model.Geometries[geoID] = quad()
	cmd := geoproc.Command{
		GeometryID:      geoID,
		BindingPoint:    "root",
		MaterialSymbols: []string{"mat/default"},
		Groups:          []string{"lod0"},
	}
	model.Commands = []geoproc.Command{cmd, cmd, cmd}

	out, err := geoproc.EmitCommandStream(model, nil, geoproc.EmitOptions{})
	if err != nil {
		t.Fatalf("EmitCommandStream: %v", err)
	}

	var markerCount, materialCount, groupCount, geoCallCount int
	r := scaffold.NewReader(out.CommandStream)
	recs, err := r.All()
	if err != nil {
		t.Fatalf("reading emitted stream: %v", err)
	}
	for _, rec := range recs {
		switch rec.Tag {
		case scaffold.ModelSetTransformMarker:
			markerCount++
		case scaffold.ModelSetMaterialAssignments:
			materialCount++
		case scaffold.ModelSetGroups:
			groupCount++
		case scaffold.ModelGeoCall:
			geoCallCount++
		}
	}
	if markerCount != 1 || materialCount != 1 || groupCount != 1 {
		t.Fatalf("marker=%d materials=%d groups=%d, want 1 each (unchanged state coalesced)", markerCount, materialCount, groupCount)
	}
	if geoCallCount != 3 {
		t.Fatalf("geoCallCount = %d, want 3 (one per command)", geoCallCount)
	}
}

// TestEmitCommandStreamDedupsAndSortsGroups checks SetGroups carries a
// deduplicated, ascending-sorted hash list regardless of authoring
// order or repetition.
func TestEmitCommandStreamDedupsAndSortsGroups(t *testing.T) {
	model := geoproc.NewNascentModel()
	geoID := geoproc.ObjectID{Namespace: 1, ID: 1}
	model.Geometries[geoID] = quad()
	model.Commands = []geoproc.Command{{
		GeometryID:      geoID,
		BindingPoint:    "root",
		MaterialSymbols: []string{"mat/default"},
		Groups:          []string{"zeta", "alpha", "alpha", "mid"},
	}}

	out, err := geoproc.EmitCommandStream(model, nil, geoproc.EmitOptions{})
	if err != nil {
		t.Fatalf("EmitCommandStream: %v", err)
	}

	r := scaffold.NewReader(out.CommandStream)
	recs, err := r.All()
	if err != nil {
		t.Fatalf("reading emitted stream: %v", err)
	}
	var groups []uint64
	for _, rec := range recs {
		if rec.Tag == scaffold.ModelSetGroups {
			groups = decodeU64Array(rec.Payload)
		}
	}
	want := []uint64{hashString("alpha"), hashString("mid"), hashString("zeta")}
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
	if len(groups) != 3 {
		t.Fatalf("groups = %v, want 3 deduplicated entries", groups)
	}
	for i := range want {
		if groups[i] != want[i] {
			t.Fatalf("groups = %v, want sorted %v", groups, want)
		}
	}
}

// TestEmitCommandStreamBindsSkinnedGeometryAndInterface checks that a
// skin-controller-bound command produces a distinct geo entry from an
// unskinned reference to the same geometry, and that the trailing
// InputInterface record lists the skeleton/joint pairs it bound.
func TestEmitCommandStreamBindsSkinnedGeometryAndInterface(t *testing.T) {
	model := geoproc.NewNascentModel()
	geoID := geoproc.ObjectID{Namespace: 1, ID: 1}
	scID := geoproc.ObjectID{Namespace: 2, ID: 1}
	model.Geometries[geoID] = quad()
	model.SkinControllers[scID] = &geoproc.SkinControllerBlock{
		SkeletonName: "skinning",
		JointNames:   []string{"bone-0", "bone-1"},
		Influences:   make([][]geoproc.JointInfluence, 4),
	}
	model.Commands = []geoproc.Command{
		{GeometryID: geoID, BindingPoint: "unskinned", MaterialSymbols: []string{"mat/a"}},
		{GeometryID: geoID, SkinControllerIDs: []geoproc.ObjectID{scID}, BindingPoint: "skinned", MaterialSymbols: []string{"mat/a"}},
	}

	out, err := geoproc.EmitCommandStream(model, nil, geoproc.EmitOptions{})
	if err != nil {
		t.Fatalf("EmitCommandStream: %v", err)
	}
	if len(out.GeoLayouts) != 2 {
		t.Fatalf("GeoLayouts count = %d, want 2 (unskinned and bound-skinned entries are distinct)", len(out.GeoLayouts))
	}

	r := scaffold.NewReader(out.CommandStream)
	recs, err := r.All()
	if err != nil {
		t.Fatalf("reading emitted stream: %v", err)
	}
	var iface []uint64
	for _, rec := range recs {
		if rec.Tag == scaffold.ModelInputInterface {
			iface = decodeU64Array(rec.Payload)
		}
	}
	if len(iface) != 2 {
		t.Fatalf("InputInterface = %v, want 2 hashed (skinning, bone-N) pairs", iface)
	}
	want := map[uint64]bool{
		hashString("skinning/bone-0"): true,
		hashString("skinning/bone-1"): true,
	}
	for _, h := range iface {
		if !want[h] {
			t.Fatalf("InputInterface entry %x not among expected skeleton/joint pairs", h)
		}
	}
}

func decodeU64Array(payload []byte) []uint64 {
	n := binary.LittleEndian.Uint32(payload[0:4])
	out := make([]uint64, n)
	for i := uint32(0); i < n; i++ {
		out[i] = binary.LittleEndian.Uint64(payload[4+i*8:])
	}
	return out
}
