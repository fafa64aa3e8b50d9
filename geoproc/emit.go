package geoproc

import (
	"encoding/binary"
	"hash/fnv"
	"sort"

	"github.com/xle-project/scaffoldc/assets/scaffold"
)

// EmitOptions controls how a NascentModel is lowered to a model command
// stream.
type EmitOptions struct {
	Instantiation InstantiationOptions
	// PerGeometry, when set, overrides Instantiation for the geometry
	// referenced by a given binding point - the typed form of a
	// <basename>.model sidecar's per-geo rule list. It is consulted once
	// per distinct geo hash, keyed by the first command that references
	// it.
	PerGeometry func(bindingPoint string) InstantiationOptions
}

// EmittedModel is the result of lowering a NascentModel: the model
// command stream bytes plus the packed native vertex layouts for each
// referenced geometry, keyed by the dense id referenced from GeoCall
// records.
type EmittedModel struct {
	CommandStream []byte
	GeoLayouts    map[uint32]*NativeVertexLayout
	// MaterialDehash maps the hashed material symbol back to its source
	// string, mirroring DehashMaterialName on the reader side.
	MaterialDehash map[uint64]string
}

// hashName produces the deterministic 64-bit symbol hash the scaffold's
// reader-side dehash table and O(log n) machine lookups key on.
func hashName(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// geoEntry is one dense-id-assigned geometry reference: either an
// unskinned NascentRawGeometry keyed on its source geo id, or a
// NascentBoundSkinnedGeometry keyed on a hash combining the geo and
// controller ids it is bound against.
type geoEntry struct {
	id     uint32
	layout *NativeVertexLayout
}

// interfaceRegistry accumulates the distinct (skeletonName, jointName)
// pairs a command stream references, in first-use order, producing the
// stream's InputInterface hash list.
type interfaceRegistry struct {
	seen  map[uint64]bool
	pairs []uint64
}

func (r *interfaceRegistry) register(skeletonName, jointName string) {
	if r.seen == nil {
		r.seen = map[uint64]bool{}
	}
	h := hashName(skeletonName + "/" + jointName)
	if r.seen[h] {
		return
	}
	r.seen[h] = true
	r.pairs = append(r.pairs, h)
}

// EmitCommandStream converts a validated NascentModel into a model
// command stream. For each Command, in document order, it emits the
// state-change records that differ from the previous command's
// (SetTransformMarker, SetMaterialAssignments, SetGroups) followed by a
// GeoCall referencing a dense geometry id, then closes the stream with
// an InputInterface record listing every (skeletonName, jointName) pair
// the stream's transform markers and skin bindings referenced.
func EmitCommandStream(model *NascentModel, skeleton *NascentSkeleton, opts EmitOptions) (*EmittedModel, error) {
	if err := model.Validate(); err != nil {
		return nil, err
	}

	if skeleton != nil {
		if _, _, err := skeleton.CompileTransformMachine(); err != nil {
			return nil, err
		}
	}

	jointMarker := map[string]uint32{}
	if skeleton != nil {
		next := uint32(0)
		for _, j := range skeleton.Joints {
			if j.IsOutputMarker {
				jointMarker[j.Name] = next
				next++
			}
		}
	}

	entries := map[uint64]*geoEntry{}
	var nextGeoID uint32
	dehash := map[uint64]string{}
	var iface interfaceRegistry

	resolveGeo := func(cmd Command) (uint32, error) {
		var key uint64
		if len(cmd.SkinControllerIDs) == 0 {
			key = geoObjectHash(cmd.GeometryID)
		} else {
			key = boundSkinnedHash(cmd.GeometryID, cmd.SkinControllerIDs)
		}
		if e, ok := entries[key]; ok {
			return e.id, nil
		}

		geo := model.Geometries[cmd.GeometryID]
		instOpts := opts.Instantiation
		if opts.PerGeometry != nil {
			instOpts = opts.PerGeometry(cmd.BindingPoint)
		}
		layout, err := CompleteInstantiation(geo, instOpts)
		if err != nil {
			return 0, err
		}

		for _, scID := range cmd.SkinControllerIDs {
			sc, ok := model.SkinControllers[scID]
			if !ok {
				continue
			}
			for _, jn := range sc.JointNames {
				iface.register(sc.SkeletonName, jn)
			}
		}

		id := nextGeoID
		nextGeoID++
		entries[key] = &geoEntry{id: id, layout: layout}
		return id, nil
	}

	w := scaffold.NewWriter()
	var prevMarker uint32
	var haveMarker bool
	var prevMaterials []uint64
	var haveMaterials bool
	var prevGroups []uint64
	var haveGroups bool

	for _, cmd := range model.Commands {
		marker, boundToJoint := jointMarker[cmd.BindingPoint]
		if boundToJoint {
			iface.register("model", cmd.BindingPoint)
		}

		materials := make([]uint64, len(cmd.MaterialSymbols))
		for i, sym := range cmd.MaterialSymbols {
			h := hashName(sym)
			materials[i] = h
			dehash[h] = sym
		}
		groups := dedupSortedHashes(cmd.Groups, dehash)

		if !haveMarker || marker != prevMarker {
			w.WriteRecord(scaffold.ModelSetTransformMarker, u32Payload(marker))
			prevMarker, haveMarker = marker, true
		}
		if !haveMaterials || !uint64SliceEqual(materials, prevMaterials) {
			w.WriteRecord(scaffold.ModelSetMaterialAssignments, encodeU64Array(materials))
			prevMaterials, haveMaterials = materials, true
		}
		if !haveGroups || !uint64SliceEqual(groups, prevGroups) {
			if len(groups) > 0 {
				w.WriteRecord(scaffold.ModelSetGroups, encodeU64Array(groups))
			}
			prevGroups, haveGroups = groups, true
		}

		id, err := resolveGeo(cmd)
		if err != nil {
			return nil, err
		}
		w.WriteRecord(scaffold.ModelGeoCall, u32Payload(id))
	}

	w.WriteRecord(scaffold.ModelInputInterface, encodeU64Array(iface.pairs))

	geoLayouts := make(map[uint32]*NativeVertexLayout, len(entries))
	for _, e := range entries {
		geoLayouts[e.id] = e.layout
	}

	return &EmittedModel{
		CommandStream:  w.Bytes(),
		GeoLayouts:     geoLayouts,
		MaterialDehash: dehash,
	}, nil
}

// dedupSortedHashes hashes names, removing duplicates and sorting the
// result ascending, registering every hash in dehash.
func dedupSortedHashes(names []string, dehash map[uint64]string) []uint64 {
	if len(names) == 0 {
		return nil
	}
	seen := map[uint64]bool{}
	hashes := make([]uint64, 0, len(names))
	for _, n := range names {
		h := hashName(n)
		dehash[h] = n
		if seen[h] {
			continue
		}
		seen[h] = true
		hashes = append(hashes, h)
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })
	return hashes
}

func uint64SliceEqual(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func encodeU64Array(vals []uint64) []byte {
	payload := make([]byte, 4+8*len(vals))
	binary.LittleEndian.PutUint32(payload[0:4], uint32(len(vals)))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(payload[4+i*8:], v)
	}
	return payload
}

func geoObjectHash(id ObjectID) uint64 {
	h := fnv.New64a()
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], id.Namespace)
	binary.LittleEndian.PutUint64(buf[8:16], id.ID)
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

// boundSkinnedHash combines a geometry id with the ordered set of skin
// controller ids it is bound against, so the same geometry bound to a
// different controller set gets its own NascentBoundSkinnedGeometry
// entry.
func boundSkinnedHash(geomID ObjectID, controllerIDs []ObjectID) uint64 {
	h := fnv.New64a()
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], geomID.Namespace)
	binary.LittleEndian.PutUint64(buf[8:16], geomID.ID)
	_, _ = h.Write(buf[:])
	for _, c := range controllerIDs {
		binary.LittleEndian.PutUint64(buf[0:8], c.Namespace)
		binary.LittleEndian.PutUint64(buf[8:16], c.ID)
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

func u32Payload(v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return b[:]
}
