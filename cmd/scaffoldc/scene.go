package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/xle-project/scaffoldc/assets/chunk"
	"github.com/xle-project/scaffoldc/assets/materialscaffold"
	"github.com/xle-project/scaffoldc/geoproc"
	"github.com/xle-project/scaffoldc/internal/colladaimport"
)

// sceneFile is the declarative YAML front end this CLI compiles: a
// already-lowered GeoProc scene (geometries, commands, materials,
// skeleton, animation). Parsing a source document (Collada/FBX) into
// this shape is out of scope here, same as for the library;
// sceneFile is simply a text format for the NascentModel/NascentSkeleton/
// materialscaffold.Library triple the pipeline actually consumes.
type sceneFile struct {
	Name          string                   `yaml:"name"`
	Geometries    []sceneGeometry          `yaml:"geometries"`
	Commands      []sceneCommand           `yaml:"commands"`
	Materials     map[string]sceneMaterial `yaml:"materials"`
	Skeleton      []sceneJoint             `yaml:"skeleton"`
	Animations    []sceneAnimation         `yaml:"animations"`
	CompileConfig sceneCompileConfig       `yaml:"compileConfig"`
}

type sceneGeometry struct {
	ID        uint64        `yaml:"id"`
	Namespace uint64        `yaml:"namespace"`
	Streams   []sceneStream `yaml:"streams"`
	Indices   []uint32      `yaml:"indices"`
}

type sceneStream struct {
	Semantic   string    `yaml:"semantic"`
	Components int       `yaml:"components"`
	Data       []float32 `yaml:"data"`
}

type sceneCommand struct {
	GeometryID        uint64   `yaml:"geometryId"`
	GeometryNamespace uint64   `yaml:"geometryNamespace"`
	BindingPoint      string   `yaml:"bindingPoint"`
	MaterialSymbols   []string `yaml:"materialSymbols"`
}

type sceneMaterial struct {
	BaseSetting            string            `yaml:"baseSetting"`
	ShaderResourceBindings map[string]string `yaml:"shaderResourceBindings"`
	Selectors              map[string]string `yaml:"selectors"`
	Constants              map[string]float32 `yaml:"constants"`
	SamplerBindings        map[string]string `yaml:"samplerBindings"`
}

type sceneJoint struct {
	Name           string `yaml:"name"`
	ParentIndex    int    `yaml:"parentIndex"`
	IsOutputMarker bool   `yaml:"isOutputMarker"`
}

type sceneAnimation struct {
	Name    string             `yaml:"name"`
	Begin   float32            `yaml:"begin"`
	End     float32            `yaml:"end"`
	Drivers []sceneAnimDriver  `yaml:"drivers"`
}

type sceneAnimDriver struct {
	ParameterIndex uint32    `yaml:"parameterIndex"`
	Times          []float32 `yaml:"times"`
	Values         []float32 `yaml:"values"`
}

type sceneCompileConfig struct {
	MergeEpsilon    float32        `yaml:"mergeEpsilon"`
	Use16BitIndices bool           `yaml:"use16BitIndices"`
	GeoRules        []sceneGeoRule `yaml:"geoRules"`
}

type sceneGeoRule struct {
	NamePattern string  `yaml:"namePattern"`
	Epsilon     float32 `yaml:"epsilon"`
	HasEpsilon  bool    `yaml:"hasEpsilon"`
	Deny        bool    `yaml:"deny"`
}

func loadScene(path string) (*sceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var scene sceneFile
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &scene, nil
}

// toInput converts a parsed scene into the Input a CompileOperation needs,
// grounded directly on the geoproc/materialscaffold/colladaimport types
// the library defines.
func (s *sceneFile) toInput() (colladaimport.Input, error) {
	model := geoproc.NewNascentModel()
	for _, g := range s.Geometries {
		block := &geoproc.GeometryBlock{Indices: g.Indices}
		for _, st := range g.Streams {
			block.Streams = append(block.Streams, geoproc.VertexStream{
				SemanticName: st.Semantic,
				Components:   st.Components,
				Data:         st.Data,
			})
		}
		if len(block.Streams) > 0 && block.Streams[0].Components > 0 {
			block.UnifiedVertexCount = len(block.Streams[0].Data) / block.Streams[0].Components
		}
		block.DrawCalls = []geoproc.DrawCall{{FirstIndex: 0, IndexCount: len(g.Indices), Topology: geoproc.TriangleList}}
		model.Geometries[geoproc.ObjectID{Namespace: g.Namespace, ID: g.ID}] = block
	}
	for _, c := range s.Commands {
		model.Commands = append(model.Commands, geoproc.Command{
			GeometryID:      geoproc.ObjectID{Namespace: c.GeometryNamespace, ID: c.GeometryID},
			BindingPoint:    c.BindingPoint,
			MaterialSymbols: c.MaterialSymbols,
		})
	}

	var materials *materialscaffold.Library
	if len(s.Materials) > 0 {
		materials = materialscaffold.NewLibrary()
		for name, m := range s.Materials {
			materials.Settings[name] = &materialscaffold.Setting{
				Name:                   name,
				BaseSetting:            m.BaseSetting,
				ShaderResourceBindings: m.ShaderResourceBindings,
				Selectors:              m.Selectors,
				Constants:              m.Constants,
				SamplerBindings:        m.SamplerBindings,
			}
		}
	}

	var skeleton *geoproc.NascentSkeleton
	if len(s.Skeleton) > 0 {
		skeleton = &geoproc.NascentSkeleton{}
		for _, j := range s.Skeleton {
			skeleton.Joints = append(skeleton.Joints, geoproc.JointDesc{
				Name:           j.Name,
				ParentIndex:    j.ParentIndex,
				IsOutputMarker: j.IsOutputMarker,
			})
		}
	}

	var animSet *geoproc.NascentAnimationSet
	if len(s.Animations) > 0 {
		animSet = geoproc.NewNascentAnimationSet()
		for _, a := range s.Animations {
			anim := geoproc.NamedAnimation{Name: a.Name, Begin: a.Begin, End: a.End}
			for _, d := range a.Drivers {
				anim.Drivers = append(anim.Drivers, geoproc.AnimationDriver{
					ParameterIndex: d.ParameterIndex,
					SamplerType:    geoproc.SamplerFloat1,
					Curve: geoproc.Curve{
						Times:         d.Times,
						Values:        d.Values,
						Stride:        1,
						Interpolation: geoproc.InterpLinear,
					},
				})
			}
			animSet.Animations = append(animSet.Animations, anim)
		}
	}

	cfg := &geoproc.CompileConfig{
		Base:            geoproc.InstantiationOptions{MergeEpsilon: s.CompileConfig.MergeEpsilon},
		Use16BitIndices: s.CompileConfig.Use16BitIndices,
	}
	for _, r := range s.CompileConfig.GeoRules {
		cfg.GeoRules = append(cfg.GeoRules, geoproc.GeoRule{
			NamePattern: r.NamePattern,
			Epsilon:     r.Epsilon,
			HasEpsilon:  r.HasEpsilon,
			Deny:        r.Deny,
		})
	}

	return colladaimport.Input{
		Name:          s.Name,
		Model:         model,
		Skeleton:      skeleton,
		Materials:     materials,
		AnimationSet:  animSet,
		CompileConfig: cfg,
		DepVal:        noopDepVal{},
	}, nil
}

// noopDepVal is a DepVal whose dependency is always fresh, for inputs
// loaded directly from a scene file rather than watched sidecars.
type noopDepVal struct{}

func (noopDepVal) Validate() string { return "" }

var _ chunk.DepVal = noopDepVal{}
