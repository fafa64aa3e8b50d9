// Package block implements BlockSerializer: a pointer-preserving binary
// serializer that produces a single relocatable memory block with embedded
// self-relative pointers, suitable for zero-parse loading (grounded on
// Assets/BlockSerializer.h).
//
// Rather than fixing up raw pointers in place (unsafe in Go), a fixed-up
// Block stores absolute byte offsets from the block's own start at each
// pointer cell; a View resolves those offsets with ordinary slicing. This
// gives the same "zero-parse, directly usable" property without leaving
// the memory-safe subset of the language.
package block

import (
	"encoding/binary"
	"fmt"
	"math"
)

// SpecialBuffer tags a sub-block with the container convention a reader
// should use to reconstitute it.
type SpecialBuffer uint8

const (
	Unknown SpecialBuffer = iota
	Vector
	String
	UniquePtr
	IteratorRange
	StringSection
)

// wordSize is the width, in bytes, of every internal-pointer cell and
// every recall slot created via SerializeValue(uint64)-sized reservations.
// Fixed at 8 regardless of host architecture so that scaffolds are
// portable between 32- and 64-bit readers.
const wordSize = 8

// ptrFlagBit is the high bit of a pointer cell: set when the target lives
// in the trailing sub-block region, clear when it lives in the primary
// block.
const ptrFlagBit = uint64(1) << 63

// region identifies which buffer an offset is measured against.
type region uint8

const (
	regionPrimary region = iota
	regionTrailing
)

type internalPointer struct {
	cellRegion   region
	cellOffset   uint64 // local offset within cellRegion
	targetRegion region
	targetOffset uint64 // local offset within targetRegion
}

type pendingRecall struct {
	offset    uint64 // local offset within primary
	size      uint64
	consumed  bool
}

// Serializer accumulates primitive values, raw ranges, sub-blocks and
// internal pointers into a growing primary buffer and a growing trailing
// buffer. It has a single owner: exclusive mutation while writing, and the
// produced Block is immutable and shareable once returned.
type Serializer struct {
	primary         []byte
	trailing        []byte
	internalPointers []internalPointer
	recalls         []pendingRecall
}

// New returns an empty Serializer.
func New() *Serializer { return &Serializer{} }

// SizePrimaryBlock returns the number of bytes written to the primary
// block, excluding the trailing sub-block region.
func (s *Serializer) SizePrimaryBlock() int { return len(s.primary) }

// Size returns the total number of bytes that would be written by
// AsMemoryBlock, including header, pointer table, primary and trailing
// regions.
func (s *Serializer) Size() int {
	return headerSize + len(s.internalPointers)*wordSize + len(s.primary) + len(s.trailing)
}

// --- scalar & raw writes ---------------------------------------------------

// SerializeValue appends a fixed-width primitive at the current primary
// cursor. T is restricted to the POD scalar kinds the format supports.
func SerializeValue[T uint8 | uint16 | uint32 | uint64 | int8 | int16 | int32 | int64 | float32 | float64](s *Serializer, v T) {
	var buf [8]byte
	switch x := any(v).(type) {
	case uint8:
		s.primary = append(s.primary, x)
		return
	case int8:
		s.primary = append(s.primary, uint8(x))
		return
	case uint16:
		binary.LittleEndian.PutUint16(buf[:2], x)
		s.primary = append(s.primary, buf[:2]...)
		return
	case int16:
		binary.LittleEndian.PutUint16(buf[:2], uint16(x))
		s.primary = append(s.primary, buf[:2]...)
		return
	case uint32:
		binary.LittleEndian.PutUint32(buf[:4], x)
		s.primary = append(s.primary, buf[:4]...)
		return
	case int32:
		binary.LittleEndian.PutUint32(buf[:4], uint32(x))
		s.primary = append(s.primary, buf[:4]...)
		return
	case uint64:
		binary.LittleEndian.PutUint64(buf[:8], x)
		s.primary = append(s.primary, buf[:8]...)
		return
	case int64:
		binary.LittleEndian.PutUint64(buf[:8], uint64(x))
		s.primary = append(s.primary, buf[:8]...)
		return
	case float32:
		binary.LittleEndian.PutUint32(buf[:4], math.Float32bits(x))
		s.primary = append(s.primary, buf[:4]...)
		return
	case float64:
		binary.LittleEndian.PutUint64(buf[:8], math.Float64bits(x))
		s.primary = append(s.primary, buf[:8]...)
		return
	}
}

// SerializeRaw appends bytes verbatim to the primary block, with no
// pointer semantics attached; the caller vouches that data contains no
// pointers of its own.
func (s *Serializer) SerializeRaw(data []byte) {
	s.primary = append(s.primary, data...)
}

// AddPadding appends n zero bytes to the primary block, e.g. to align a
// following sub-block pointer.
func (s *Serializer) AddPadding(n int) {
	for i := 0; i < n; i++ {
		s.primary = append(s.primary, 0)
	}
}

// --- sub-blocks --------------------------------------------------------

// SerializeSubBlockRaw appends data (the already-encoded bytes of count
// POD elements) to the trailing region, and writes a pointer cell plus the
// element count into the primary block: POD-element iterators copy their
// bytes verbatim.
func (s *Serializer) SerializeSubBlockRaw(data []byte, count uint64, tag SpecialBuffer) {
	targetOffset := uint64(len(s.trailing))
	s.trailing = append(s.trailing, data...)
	s.pushPointerCell(regionTrailing, targetOffset)
	SerializeValue(s, count)
}

// SerializeSubBlockFunc serialises count non-POD elements by invoking
// write(elemSerializer, i) for each index into a transient Serializer,
// whose finished block is then embedded into the trailing region: each
// non-POD element is re-serialised into a transient BlockSerializer whose
// resulting block is embedded, so transitive pointers become nested.
func (s *Serializer) SerializeSubBlockFunc(count int, tag SpecialBuffer, write func(elem *Serializer, index int)) {
	nested := New()
	for i := 0; i < count; i++ {
		write(nested, i)
	}
	s.SerializeSubBlockNested(nested, tag)
	// The element count follows the pointer cell, matching the raw path.
	SerializeValue(s, uint64(count))
}

// SerializeSubBlockNested embeds a finished nested Serializer's primary
// and trailing regions into this Serializer's trailing region, rebasing
// all of the nested serializer's own internal-pointer cells into the
// host's frame, and writes a pointer cell targeting the embedded blob's
// start. It does not write a following element count; callers that need one
// (e.g. SerializeSubBlockFunc) add it themselves.
func (s *Serializer) SerializeSubBlockNested(nested *Serializer, tag SpecialBuffer) {
	blobOffset := uint64(len(s.trailing))
	nestedPrimarySize := uint64(len(nested.primary))
	s.trailing = append(s.trailing, nested.primary...)
	s.trailing = append(s.trailing, nested.trailing...)

	for _, np := range nested.internalPointers {
		cellAbsInBlob := localToBlobOffset(np.cellRegion, np.cellOffset, nestedPrimarySize)
		targetAbsInBlob := localToBlobOffset(np.targetRegion, np.targetOffset, nestedPrimarySize)
		s.internalPointers = append(s.internalPointers, internalPointer{
			cellRegion:   regionTrailing,
			cellOffset:   blobOffset + cellAbsInBlob,
			targetRegion: regionTrailing,
			targetOffset: blobOffset + targetAbsInBlob,
		})
	}

	s.pushPointerCell(regionTrailing, blobOffset)
}

func localToBlobOffset(r region, local uint64, primarySize uint64) uint64 {
	if r == regionPrimary {
		return local
	}
	return primarySize + local
}

// pushPointerCell reserves a word in the primary block at the current
// cursor and records it as an internal pointer targeting (targetRegion,
// targetOffset). The cell's own offset is recorded as a primary-region
// offset since all pointer cells in this implementation are written into
// the primary block (nested cells are re-homed into the trailing region by
// SerializeSubBlockNested, which appends internalPointers directly without
// going through pushPointerCell).
func (s *Serializer) pushPointerCell(targetRegion region, targetOffset uint64) {
	cellOffset := uint64(len(s.primary))
	s.internalPointers = append(s.internalPointers, internalPointer{
		cellRegion:   regionPrimary,
		cellOffset:   cellOffset,
		targetRegion: targetRegion,
		targetOffset: targetOffset,
	})
	var zero [wordSize]byte
	s.primary = append(s.primary, zero[:]...)
}

// --- recalls -------------------------------------------------------------

// CreateRecall reserves sizeBytes of zero-padded space at the current
// primary cursor and returns a monotonically increasing recall id to be
// consumed exactly once by PushAtRecall or PushSizeValueAtRecall.
func (s *Serializer) CreateRecall(sizeBytes int) int {
	id := len(s.recalls)
	s.recalls = append(s.recalls, pendingRecall{offset: uint64(len(s.primary)), size: uint64(sizeBytes)})
	s.AddPadding(sizeBytes)
	return id
}

// PushAtRecall overwrites a previously reserved slot with raw bytes. len(v)
// must equal the slot's reserved size.
func (s *Serializer) PushAtRecall(id int, v []byte) {
	r := s.recallFor(id)
	if uint64(len(v)) != r.size {
		panic(fmt.Sprintf("block: PushAtRecall size mismatch: slot is %d bytes, got %d", r.size, len(v)))
	}
	copy(s.primary[r.offset:r.offset+r.size], v)
}

// PushSizeValueAtRecall overwrites the reserved slot with the number of
// bytes appended to the primary block since the recall was created,
// expressed as an unsigned little-endian integer of the slot's width.
func (s *Serializer) PushSizeValueAtRecall(id int) {
	r := s.recallFor(id)
	written := uint64(len(s.primary)) - r.offset - r.size
	buf := make([]byte, r.size)
	switch r.size {
	case 4:
		binary.LittleEndian.PutUint32(buf, uint32(written))
	case 8:
		binary.LittleEndian.PutUint64(buf, written)
	default:
		panic(fmt.Sprintf("block: unsupported recall width %d", r.size))
	}
	copy(s.primary[r.offset:r.offset+r.size], buf)
}

func (s *Serializer) recallFor(id int) *pendingRecall {
	if id < 0 || id >= len(s.recalls) {
		panic(fmt.Sprintf("block: invalid recall id %d", id))
	}
	r := &s.recalls[id]
	if r.consumed {
		panic(fmt.Sprintf("block: recall %d already consumed", id))
	}
	r.consumed = true
	return r
}
