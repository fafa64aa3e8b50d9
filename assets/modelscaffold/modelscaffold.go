// Package modelscaffold implements the reader side of a compiled model
// scaffold: the geo/material machine lookup tables, the shader patch
// collection, the material dehash table, and the embedded skeleton,
// built over the fixed-up Block produced by assets/block and the record
// stream read by assets/scaffold.
package modelscaffold

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/xle-project/scaffoldc/assets/scaffold"
	"github.com/xle-project/scaffoldc/internal/vmath"
)

// geoEntry is one sorted (geoID, payload) pair from the model command
// stream, enabling GetGeoMachine/GetMaterialMachine to binary search
// instead of scanning linearly.
type geoEntry struct {
	geoID           uint32
	transformMarker uint32
	materials       []uint64
	groups          []uint64
}

// ModelScaffold is the read side of a compiled model: the assembled
// per-call geo/material state plus the shader patch collection, material
// name dehash table, static bounding box, and (optional) embedded
// skeleton.
type ModelScaffold struct {
	entries           []geoEntry
	dehash            map[uint64]string
	staticBoundingBox vmath.BoundingBox
	maxLOD            int
	skeleton          []byte // raw skeleton machine sub-stream, if embedded
	hasSkeleton       bool
}

// Load parses a model command stream (as emitted by
// geoproc.EmitCommandStream) into a queryable ModelScaffold.
func Load(commandStream []byte, dehash map[uint64]string, bbox vmath.BoundingBox, maxLOD int) (*ModelScaffold, error) {
	r := scaffold.NewReader(commandStream)
	ms := &ModelScaffold{dehash: dehash, staticBoundingBox: bbox, maxLOD: maxLOD}

	var cur *geoEntry
	flush := func() {
		if cur != nil {
			ms.entries = append(ms.entries, *cur)
			cur = nil
		}
	}
	for {
		rec, ok, err := r.Next()
		if err != nil {
			return nil, fmt.Errorf("modelscaffold: %w", err)
		}
		if !ok {
			break
		}
		switch rec.Tag {
		case scaffold.ModelSetTransformMarker:
			flush()
			cur = &geoEntry{transformMarker: binary.LittleEndian.Uint32(rec.Payload)}
		case scaffold.ModelGeoCall:
			if cur == nil {
				return nil, fmt.Errorf("modelscaffold: GeoCall record before SetTransformMarker")
			}
			cur.geoID = binary.LittleEndian.Uint32(rec.Payload)
		case scaffold.ModelSetMaterialAssignments:
			if cur == nil {
				return nil, fmt.Errorf("modelscaffold: SetMaterialAssignments record before SetTransformMarker")
			}
			n := binary.LittleEndian.Uint32(rec.Payload[0:4])
			cur.materials = make([]uint64, n)
			for i := uint32(0); i < n; i++ {
				cur.materials[i] = binary.LittleEndian.Uint64(rec.Payload[4+i*8:])
			}
		case scaffold.ModelSetGroups:
			if cur == nil {
				return nil, fmt.Errorf("modelscaffold: SetGroups record before SetTransformMarker")
			}
			n := binary.LittleEndian.Uint32(rec.Payload[0:4])
			cur.groups = make([]uint64, n)
			for i := uint32(0); i < n; i++ {
				cur.groups[i] = binary.LittleEndian.Uint64(rec.Payload[4+i*8:])
			}
		}
	}
	flush()

	sort.Slice(ms.entries, func(i, j int) bool { return ms.entries[i].geoID < ms.entries[j].geoID })
	return ms, nil
}

// GetGeoMachine binary searches the sorted geo call table for geoIdx and
// returns its transform marker index.
func (ms *ModelScaffold) GetGeoMachine(geoIdx uint32) (transformMarker uint32, ok bool) {
	i := sort.Search(len(ms.entries), func(i int) bool { return ms.entries[i].geoID >= geoIdx })
	if i < len(ms.entries) && ms.entries[i].geoID == geoIdx {
		return ms.entries[i].transformMarker, true
	}
	return 0, false
}

// GetMaterialMachine returns the dehashed material symbols attached to
// the geo call identified by geoIdx.
func (ms *ModelScaffold) GetMaterialMachine(geoIdx uint32) ([]string, bool) {
	i := sort.Search(len(ms.entries), func(i int) bool { return ms.entries[i].geoID >= geoIdx })
	if i >= len(ms.entries) || ms.entries[i].geoID != geoIdx {
		return nil, false
	}
	out := make([]string, len(ms.entries[i].materials))
	for j, h := range ms.entries[i].materials {
		out[j] = ms.DehashMaterialName(h)
	}
	return out, true
}

// GetMaterials returns the distinct, dehashed material symbols used
// across every geo call in the scaffold.
func (ms *ModelScaffold) GetMaterials() []string {
	seen := map[uint64]bool{}
	var out []string
	for _, e := range ms.entries {
		for _, h := range e.materials {
			if !seen[h] {
				seen[h] = true
				out = append(out, ms.DehashMaterialName(h))
			}
		}
	}
	sort.Strings(out)
	return out
}

// DehashMaterialName resolves a hashed material symbol back to its
// source string, or returns a synthetic placeholder if the table has no
// entry (a schema-version mismatch that should not occur for a stream
// produced by this compiler, but is tolerated rather than panicking).
func (ms *ModelScaffold) DehashMaterialName(hash uint64) string {
	if name, ok := ms.dehash[hash]; ok {
		return name
	}
	return fmt.Sprintf("<unknown:%016x>", hash)
}

// GetStaticBoundingBox returns the model's authoring-space bounding box.
func (ms *ModelScaffold) GetStaticBoundingBox() vmath.BoundingBox { return ms.staticBoundingBox }

// GetMaxLOD returns the highest LOD index present in the scaffold.
func (ms *ModelScaffold) GetMaxLOD() int { return ms.maxLOD }

// SetEmbeddedSkeleton attaches a raw skeleton machine sub-stream, for
// models compiled with their skeleton inlined rather than referencing an
// external .skin/.skeleton artifact.
func (ms *ModelScaffold) SetEmbeddedSkeleton(raw []byte) {
	ms.skeleton = raw
	ms.hasSkeleton = true
}

// EmbeddedSkeleton returns the raw skeleton machine sub-stream and
// whether one is present.
func (ms *ModelScaffold) EmbeddedSkeleton() ([]byte, bool) { return ms.skeleton, ms.hasSkeleton }
