package materialscaffold

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/xle-project/scaffoldc/assets/scaffold"
)

// EmitMaterialMachine writes a resolved Setting's bindings as a sequence
// of material machine records, using the MaterialAttach* tag set.
// Omitted fields (nil maps, no state set) emit no record, matching the
// writer's "absent means inherit/default" convention.
func EmitMaterialMachine(w *scaffold.Writer, s *Setting) {
	if len(s.ShaderResourceBindings) > 0 {
		w.WriteRecord(scaffold.MaterialAttachShaderResourceBindings, encodeStringMap(s.ShaderResourceBindings))
	}
	if len(s.Selectors) > 0 {
		w.WriteRecord(scaffold.MaterialAttachSelectors, encodeStringMap(s.Selectors))
	}
	if s.StateSet != nil {
		w.WriteRecord(scaffold.MaterialAttachStateSet, encodeStateSet(s.StateSet))
	}
	if len(s.Constants) > 0 {
		w.WriteRecord(scaffold.MaterialAttachConstants, encodeFloatMap(s.Constants))
	}
	if len(s.SamplerBindings) > 0 {
		w.WriteRecord(scaffold.MaterialAttachSamplerBindings, encodeStringMap(s.SamplerBindings))
	}
	if s.HasPatchCollectionID {
		var payload [8]byte
		binary.LittleEndian.PutUint64(payload[:], uint64(s.PatchCollectionID))
		w.WriteRecord(scaffold.MaterialAttachPatchCollectionID, payload[:])
	}
}

func encodeStateSet(s *StateSet) []byte {
	var flags byte
	if s.DepthWriteEnable {
		flags |= 1 << 0
	}
	if s.DepthTestEnable {
		flags |= 1 << 1
	}
	if s.BlendEnable {
		flags |= 1 << 2
	}
	if s.DoubleSided {
		flags |= 1 << 3
	}
	return []byte{flags}
}

func encodeStringMap(m map[string]string) []byte {
	keys := sortedKeys(m)
	var out []byte
	out = appendU32(out, uint32(len(keys)))
	for _, k := range keys {
		out = appendString(out, k)
		out = appendString(out, m[k])
	}
	return out
}

func encodeFloatMap(m map[string]float32) []byte {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var out []byte
	out = appendU32(out, uint32(len(keys)))
	for _, k := range keys {
		out = appendString(out, k)
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(m[k]))
		out = append(out, b[:]...)
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func appendU32(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendString(b []byte, s string) []byte {
	b = appendU32(b, uint32(len(s)))
	return append(b, s...)
}
