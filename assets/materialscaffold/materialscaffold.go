// Package materialscaffold implements material resolution: merging a
// named material's settings with its BaseSetting chain and any wildcard
// ("*") default, and attaching the result's shader resource bindings,
// selectors, state set, constants and sampler bindings via the material
// machine's tag set.
package materialscaffold

import "sort"

// ShaderPatchCollectionID identifies a compiled shader-patch collection
// a material references.
type ShaderPatchCollectionID uint64

// Setting is one authored material definition: bindings/selectors/state
// overlaid on top of whatever BaseSetting names, with "*" reserved as
// the document-wide default applied before any named material.
type Setting struct {
	Name                    string
	BaseSetting             string // "" if this setting has no explicit parent
	ShaderResourceBindings  map[string]string
	Selectors               map[string]string
	StateSet                *StateSet
	Constants                map[string]float32
	SamplerBindings          map[string]string
	PatchCollectionID        ShaderPatchCollectionID
	HasPatchCollectionID     bool
}

// StateSet is the fixed-function render state a material attaches.
type StateSet struct {
	DepthWriteEnable bool
	DepthTestEnable  bool
	BlendEnable      bool
	DoubleSided      bool
}

// Library is the full set of authored Settings for one document, keyed
// by name, plus the reserved wildcard default.
type Library struct {
	Settings map[string]*Setting
}

func NewLibrary() *Library { return &Library{Settings: map[string]*Setting{}} }

const wildcardName = "*"

// Resolve builds the fully merged material for name: starting from the
// wildcard default (if present), then the BaseSetting chain from root to
// name (each later entry overriding fields the earlier ones set), then
// name's own Setting: wildcard, then inheritance via BaseSetting.
//
// A BaseSetting cycle is an authoring error; Resolve detects it and
// returns a *CyclicInheritanceError rather than looping forever.
func (lib *Library) Resolve(name string) (*Setting, error) {
	chain, err := lib.chainFor(name)
	if err != nil {
		return nil, err
	}
	merged := &Setting{Name: name}
	if wc, ok := lib.Settings[wildcardName]; ok {
		merged = mergeInto(merged, wc)
	}
	for _, s := range chain {
		merged = mergeInto(merged, s)
	}
	merged.Name = name
	return merged, nil
}

func (lib *Library) chainFor(name string) ([]*Setting, error) {
	var chain []*Setting
	seen := map[string]bool{}
	cur := name
	for cur != "" {
		if seen[cur] {
			return nil, &CyclicInheritanceError{Name: name, RepeatedAt: cur}
		}
		seen[cur] = true
		s, ok := lib.Settings[cur]
		if !ok {
			return nil, &MissingMaterialError{Name: cur}
		}
		chain = append([]*Setting{s}, chain...)
		cur = s.BaseSetting
	}
	return chain, nil
}

func mergeInto(dst, src *Setting) *Setting {
	out := &Setting{
		Name:                 dst.Name,
		ShaderResourceBindings: mergeStringMaps(dst.ShaderResourceBindings, src.ShaderResourceBindings),
		Selectors:              mergeStringMaps(dst.Selectors, src.Selectors),
		Constants:              mergeFloatMaps(dst.Constants, src.Constants),
		SamplerBindings:        mergeStringMaps(dst.SamplerBindings, src.SamplerBindings),
		StateSet:               dst.StateSet,
		PatchCollectionID:      dst.PatchCollectionID,
		HasPatchCollectionID:   dst.HasPatchCollectionID,
	}
	if src.StateSet != nil {
		out.StateSet = src.StateSet
	}
	if src.HasPatchCollectionID {
		out.PatchCollectionID = src.PatchCollectionID
		out.HasPatchCollectionID = true
	}
	return out
}

func mergeStringMaps(a, b map[string]string) map[string]string {
	out := map[string]string{}
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func mergeFloatMaps(a, b map[string]float32) map[string]float32 {
	out := map[string]float32{}
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// SortedNames returns the library's material names in deterministic
// order, excluding the wildcard default.
func (lib *Library) SortedNames() []string {
	names := make([]string, 0, len(lib.Settings))
	for n := range lib.Settings {
		if n == wildcardName {
			continue
		}
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

type MissingMaterialError struct{ Name string }

func (e *MissingMaterialError) Error() string { return "materialscaffold: unknown material " + e.Name }

type CyclicInheritanceError struct {
	Name       string
	RepeatedAt string
}

func (e *CyclicInheritanceError) Error() string {
	return "materialscaffold: cyclic BaseSetting inheritance resolving " + e.Name
}
