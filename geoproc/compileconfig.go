package geoproc

import "path"

// GeoRule is one per-geometry override from a <basename>.model sidecar:
// a binding-point glob pattern, an epsilon override, and a deny flag that
// drops the matching command from the emitted model entirely, mirroring
// ColladaConversion's per-element deny/override lists.
type GeoRule struct {
	NamePattern string
	Epsilon     float32
	HasEpsilon  bool
	Deny        bool
}

func (r GeoRule) matches(bindingPoint string) bool {
	ok, err := path.Match(r.NamePattern, bindingPoint)
	return err == nil && ok
}

// CompileConfig is the typed form of a <basename>.model sidecar: the base
// InstantiationOptions to apply everywhere, a native-index-width flag, and
// an ordered list of per-geo rules consulted by binding point.
type CompileConfig struct {
	Base            InstantiationOptions
	Use16BitIndices bool
	GeoRules        []GeoRule
}

// ruleFor returns the first rule whose NamePattern matches bindingPoint,
// in authoring order (earlier rules take precedence, matching the
// original's first-match binding lookup).
func (c *CompileConfig) ruleFor(bindingPoint string) (GeoRule, bool) {
	for _, r := range c.GeoRules {
		if r.matches(bindingPoint) {
			return r, true
		}
	}
	return GeoRule{}, false
}

// IsDenied reports whether bindingPoint is excluded from compilation by a
// matching deny rule.
func (c *CompileConfig) IsDenied(bindingPoint string) bool {
	r, ok := c.ruleFor(bindingPoint)
	return ok && r.Deny
}

// OptionsFor resolves the InstantiationOptions to use for bindingPoint:
// Base, with Epsilon replaced by the first matching rule's override, if
// any. Suitable as an EmitOptions.PerGeometry callback.
func (c *CompileConfig) OptionsFor(bindingPoint string) InstantiationOptions {
	opts := c.Base
	if r, ok := c.ruleFor(bindingPoint); ok && r.HasEpsilon {
		opts.MergeEpsilon = r.Epsilon
	}
	return opts
}

// FilterDenied returns model's Commands with every binding point
// IsDenied drops removed, preserving document order.
func (c *CompileConfig) FilterDenied(commands []Command) []Command {
	kept := make([]Command, 0, len(commands))
	for _, cmd := range commands {
		if c.IsDenied(cmd.BindingPoint) {
			continue
		}
		kept = append(kept, cmd)
	}
	return kept
}
