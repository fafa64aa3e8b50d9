package colladaimport

import (
	"context"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"sort"

	"github.com/xle-project/scaffoldc/assets/chunk"
	"github.com/xle-project/scaffoldc/assets/materialscaffold"
	"github.com/xle-project/scaffoldc/assets/scaffold"
	"github.com/xle-project/scaffoldc/core/fault"
	"github.com/xle-project/scaffoldc/core/log"
	"github.com/xle-project/scaffoldc/core/task"
	"github.com/xle-project/scaffoldc/geoproc"
)

// TargetCode identifies one of the artifact sets a CompileOperation can
// produce, matching ICompileOperation::GetTargets' {targetCode, name}
// pairs.
type TargetCode uint64

const (
	TargetModel TargetCode = iota + 1
	TargetRawMat
	TargetSkeleton
	TargetAnimationSet
)

// TargetDesc is one entry of ICompileOperation::GetTargets.
type TargetDesc struct {
	TargetCode TargetCode
	Name       string
}

// SerializedTarget is the result of one SerializeTarget call: a set of
// chunk artifacts plus the dependency validation in effect when they
// were built.
type SerializedTarget struct {
	Artifacts []chunk.Artifact
	DepVal    chunk.DepVal
}

// CompileOperation is this repo's equivalent of Assets::ICompileOperation:
// it reports the targets it can produce from its already-bound inputs and
// materialises any one of them on demand.
type CompileOperation interface {
	GetTargets() []TargetDesc
	SerializeTarget(idx int) (SerializedTarget, error)
	GetDependencyValidation() chunk.DepVal
}

// Input gathers everything a compile operation needs: the already-parsed
// GeoProc objects (Collada/FBX scene parsing is out of scope here, see
// the package doc) plus the sidecar configuration that shapes how they
// are lowered.
type Input struct {
	Name          string
	Model         *geoproc.NascentModel
	Skeleton      *geoproc.NascentSkeleton
	Materials     *materialscaffold.Library
	AnimationSet  *geoproc.NascentAnimationSet
	CompileConfig *geoproc.CompileConfig
	DepVal        chunk.DepVal
}

type modelCompileOperation struct {
	in Input
}

// NewCompileOperation binds in and returns the ICompileOperation-style
// front end for it. CreateCompileOperation in the original engine is a
// factory keyed off an InitializerPack; here the caller assembles the
// Input directly, since there is no DLL-hosted scene importer to
// interrogate for initializer arity.
func NewCompileOperation(in Input) CompileOperation {
	if in.CompileConfig == nil {
		in.CompileConfig = &geoproc.CompileConfig{}
	}
	return &modelCompileOperation{in: in}
}

func (op *modelCompileOperation) GetDependencyValidation() chunk.DepVal { return op.in.DepVal }

func (op *modelCompileOperation) GetTargets() []TargetDesc {
	targets := []TargetDesc{{TargetCode: TargetModel, Name: "Model"}}
	if op.in.Materials != nil {
		targets = append(targets, TargetDesc{TargetCode: TargetRawMat, Name: "RawMat"})
	}
	if op.in.Skeleton != nil {
		targets = append(targets, TargetDesc{TargetCode: TargetSkeleton, Name: "Skeleton"})
	}
	if op.in.AnimationSet != nil {
		targets = append(targets, TargetDesc{TargetCode: TargetAnimationSet, Name: "AnimationSet"})
	}
	return targets
}

func (op *modelCompileOperation) SerializeTarget(idx int) (SerializedTarget, error) {
	targets := op.GetTargets()
	if idx < 0 || idx >= len(targets) {
		return SerializedTarget{}, fmt.Errorf("colladaimport: target index %d out of range (have %d)", idx, len(targets))
	}
	switch targets[idx].TargetCode {
	case TargetModel:
		return op.serializeModel()
	case TargetRawMat:
		return op.serializeMaterials()
	case TargetSkeleton:
		return op.serializeSkeleton()
	case TargetAnimationSet:
		return op.serializeAnimationSet()
	default:
		return SerializedTarget{}, fmt.Errorf("colladaimport: unhandled target code %d", targets[idx].TargetCode)
	}
}

// CompileAll runs every target of op on pool, one SerializeTarget call per
// worker, and returns their artifacts in GetTargets order: a bounded
// goroutine pool runs one CompileOperation.SerializeTarget per worker.
// Handles are waited on in GetTargets order and the first error found
// that way is returned, with no results.
func CompileAll(ctx context.Context, op CompileOperation, pool *task.Pool) ([]SerializedTarget, error) {
	targets := op.GetTargets()
	results := make([]SerializedTarget, len(targets))
	errs := make([]error, len(targets))

	handles := make([]*task.Handle, len(targets))
	for i := range targets {
		idx := i
		handles[i] = pool.Submit(ctx, func(ctx context.Context) error {
			st, err := op.SerializeTarget(idx)
			results[idx] = st
			errs[idx] = err
			return err
		})
	}
	for i, h := range handles {
		if err := h.Wait(ctx); err != nil {
			return nil, fmt.Errorf("colladaimport: compiling target %q: %w", targets[i].Name, err)
		}
	}
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("colladaimport: compiling target %q: %w", targets[i].Name, err)
		}
	}
	return results, nil
}

// serializeModel runs the GeoProc emission pipeline and packages its
// three artifacts: the ModelScaffold chunk (the command stream itself -
// this repo keeps the BlockSerializer primary/trailing buffers internal
// to assets/block, so the chunk's data here is the schema-free scaffold
// record stream, not yet wrapped in a BlockSerializer container), the
// large-blocks chunk (packed native vertex layouts, concatenated), and a
// metrics chunk.
func (op *modelCompileOperation) serializeModel() (SerializedTarget, error) {
	ctx := context.Background()
	logger := log.From(ctx).With("model", op.in.Name)

	model := *op.in.Model
	model.Commands = op.in.CompileConfig.FilterDenied(model.Commands)

	emitted, err := geoproc.EmitCommandStream(&model, op.in.Skeleton, geoproc.EmitOptions{
		Instantiation: op.in.CompileConfig.Base,
		PerGeometry:   op.in.CompileConfig.OptionsFor,
	})
	if err != nil {
		return SerializedTarget{}, fault.Wrap(err, op.in.DepVal)
	}

	large, offsets := packLargeBlocks(emitted.GeoLayouts)
	metrics := buildMetrics(op.in.Name, &model, emitted, offsets)

	artifacts := []chunk.Artifact{
		{ChunkTypeCode: chunk.TypeModelScaffold, Version: chunk.VersionModelScaffold, Name: op.in.Name, Data: emitted.CommandStream, DepVal: op.in.DepVal},
		{ChunkTypeCode: chunk.TypeModelScaffoldLargeBlocks, Version: chunk.VersionModelScaffoldLargeBlocks, Name: op.in.Name, Data: large, DepVal: op.in.DepVal},
		{ChunkTypeCode: chunk.TypeMetrics, Version: 0, Name: op.in.Name, Data: metrics, DepVal: op.in.DepVal},
	}
	logger.Infof("serialized model target: %d draw calls, %d bytes of large blocks", len(model.Commands), len(large))
	return SerializedTarget{Artifacts: artifacts, DepVal: op.in.DepVal}, nil
}

// packLargeBlocks concatenates every geo id's packed native vertex
// layout into one flat byte stream, ordered by id - a scaffold only ever
// holds relative offsets into this stream, never an owning copy.
func packLargeBlocks(layouts map[uint32]*geoproc.NativeVertexLayout) (data []byte, offsets map[uint32]uint64) {
	offsets = map[uint32]uint64{}
	ids := make([]uint32, 0, len(layouts))
	for id := range layouts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		offsets[id] = uint64(len(data))
		data = append(data, layouts[id].Data...)
	}
	return data, offsets
}

func buildMetrics(name string, model *geoproc.NascentModel, emitted *geoproc.EmittedModel, offsets map[uint32]uint64) []byte {
	s := fmt.Sprintf("model %q: %d commands, %d distinct geometries, %d bytes command stream\n",
		name, len(model.Commands), len(emitted.GeoLayouts), len(emitted.CommandStream))
	ids := make([]uint32, 0, len(offsets))
	for id := range offsets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		s += fmt.Sprintf("  geo %d @ large-block offset %d\n", id, offsets[id])
	}
	return []byte(s)
}

// serializeMaterials resolves every named material in the library and
// packages the resulting material machines as a single RawMat chunk, one
// TagMaterial record per material plus a closing TagMaterialNameDehash
// table.
func (op *modelCompileOperation) serializeMaterials() (SerializedTarget, error) {
	w := scaffold.NewWriter()
	dehash := map[uint64]string{}
	for _, name := range op.in.Materials.SortedNames() {
		resolved, err := op.in.Materials.Resolve(name)
		if err != nil {
			return SerializedTarget{}, fault.Wrap(err, op.in.DepVal)
		}
		inner := scaffold.NewWriter()
		materialscaffold.EmitMaterialMachine(inner, resolved)
		h := hashMaterialName(name)
		dehash[h] = name
		payload := make([]byte, 8+len(inner.Bytes()))
		binary.LittleEndian.PutUint64(payload[0:8], h)
		copy(payload[8:], inner.Bytes())
		w.WriteRecord(scaffold.TagMaterial, payload)
	}
	w.WriteRecord(scaffold.TagMaterialNameDehash, encodeDehash(dehash))

	artifacts := []chunk.Artifact{
		{ChunkTypeCode: chunk.TypeMaterialScaffold, Version: chunk.VersionMaterialScaffold, Name: op.in.Name, Data: w.Bytes(), DepVal: op.in.DepVal},
	}
	return SerializedTarget{Artifacts: artifacts, DepVal: op.in.DepVal}, nil
}

// serializeSkeleton compiles the skeleton's transformation machine and
// packages its words, joint names, and output-interface count as the
// Skeleton chunk target.
func (op *modelCompileOperation) serializeSkeleton() (SerializedTarget, error) {
	prog, _, err := op.in.Skeleton.CompileTransformMachine()
	if err != nil {
		return SerializedTarget{}, fault.Wrap(err, op.in.DepVal)
	}

	w := scaffold.NewWriter()
	w.WriteRecord(scaffold.SkeletonMachine, wordsToBytes(prog.Words()))
	w.WriteRecord(scaffold.SkeletonJointNames, encodeStringList(op.in.Skeleton.JointNames()))
	var countPayload [4]byte
	binary.LittleEndian.PutUint32(countPayload[:], uint32(op.in.Skeleton.OutputInterfaceCount()))
	w.WriteRecord(scaffold.SkeletonOutputInterface, countPayload[:])

	artifacts := []chunk.Artifact{
		{ChunkTypeCode: chunk.TypeSkeletonScaffold, Version: chunk.VersionSkeletonScaffold, Name: op.in.Name, Data: w.Bytes(), DepVal: op.in.DepVal},
	}
	return SerializedTarget{Artifacts: artifacts, DepVal: op.in.DepVal}, nil
}

// serializeAnimationSet packages every named clip as an AnimationClip
// record (name, time range, driver curves inline) plus a trailing
// AnimationConstantDrivers record for parameters no clip touches
//.
func (op *modelCompileOperation) serializeAnimationSet() (SerializedTarget, error) {
	w := scaffold.NewWriter()
	for _, anim := range op.in.AnimationSet.Animations {
		w.WriteRecord(scaffold.AnimationClip, encodeAnimationClip(anim))
	}
	w.WriteRecord(scaffold.AnimationConstantDrivers, encodeConstantDrivers(op.in.AnimationSet.ConstantDrivers))

	artifacts := []chunk.Artifact{
		{ChunkTypeCode: chunk.TypeAnimationSet, Version: chunk.VersionAnimationSet, Name: op.in.Name, Data: w.Bytes(), DepVal: op.in.DepVal},
	}
	return SerializedTarget{Artifacts: artifacts, DepVal: op.in.DepVal}, nil
}

func encodeAnimationClip(anim geoproc.NamedAnimation) []byte {
	var out []byte
	var u32 [4]byte
	binary.LittleEndian.PutUint32(u32[:], uint32(len(anim.Name)))
	out = append(out, u32[:]...)
	out = append(out, anim.Name...)

	out = append(out, f32Bytes(anim.Begin)...)
	out = append(out, f32Bytes(anim.End)...)

	binary.LittleEndian.PutUint32(u32[:], uint32(len(anim.Drivers)))
	out = append(out, u32[:]...)
	for _, d := range anim.Drivers {
		binary.LittleEndian.PutUint32(u32[:], d.ParameterIndex)
		out = append(out, u32[:]...)
		out = append(out, byte(d.SamplerType))
		binary.LittleEndian.PutUint32(u32[:], uint32(d.Curve.Stride))
		out = append(out, u32[:]...)
		out = append(out, byte(d.Curve.Interpolation))
		binary.LittleEndian.PutUint32(u32[:], uint32(len(d.Curve.Times)))
		out = append(out, u32[:]...)
		for _, t := range d.Curve.Times {
			out = append(out, f32Bytes(t)...)
		}
		for _, v := range d.Curve.Values {
			out = append(out, f32Bytes(v)...)
		}
	}
	return out
}

func encodeConstantDrivers(drivers map[uint32][]float32) []byte {
	params := make([]uint32, 0, len(drivers))
	for p := range drivers {
		params = append(params, p)
	}
	sort.Slice(params, func(i, j int) bool { return params[i] < params[j] })

	var out []byte
	var u32 [4]byte
	binary.LittleEndian.PutUint32(u32[:], uint32(len(params)))
	out = append(out, u32[:]...)
	for _, p := range params {
		binary.LittleEndian.PutUint32(u32[:], p)
		out = append(out, u32[:]...)
		values := drivers[p]
		binary.LittleEndian.PutUint32(u32[:], uint32(len(values)))
		out = append(out, u32[:]...)
		for _, v := range values {
			out = append(out, f32Bytes(v)...)
		}
	}
	return out
}

func f32Bytes(f float32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(f))
	return b[:]
}

// wordsToBytes packs a TransformProgram's uint32 word stream into the
// little-endian byte payload a scaffold record carries.
func wordsToBytes(words []uint32) []byte {
	out := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}

func hashMaterialName(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

func encodeDehash(m map[uint64]string) []byte {
	hashes := make([]uint64, 0, len(m))
	for h := range m {
		hashes = append(hashes, h)
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })
	var out []byte
	var u32 [4]byte
	binary.LittleEndian.PutUint32(u32[:], uint32(len(hashes)))
	out = append(out, u32[:]...)
	for _, h := range hashes {
		var u64 [8]byte
		binary.LittleEndian.PutUint64(u64[:], h)
		out = append(out, u64[:]...)
		name := m[h]
		binary.LittleEndian.PutUint32(u32[:], uint32(len(name)))
		out = append(out, u32[:]...)
		out = append(out, name...)
	}
	return out
}

func encodeStringList(names []string) []byte {
	var out []byte
	var u32 [4]byte
	binary.LittleEndian.PutUint32(u32[:], uint32(len(names)))
	out = append(out, u32[:]...)
	for _, n := range names {
		binary.LittleEndian.PutUint32(u32[:], uint32(len(n)))
		out = append(out, u32[:]...)
		out = append(out, n...)
	}
	return out
}
