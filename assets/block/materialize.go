package block

import "encoding/binary"

// headerSize is the fixed, word-aligned header written at the start of
// every memory block: total size, primary-block size, count of internal
// pointers, offset to the internal-pointer table.
const headerSize = 4 * wordSize

// Block is the relocatable byte buffer produced by AsMemoryBlock: a
// header, a pointer table, the primary region and the trailing region,
// concatenated. Pointer cells still hold encoded self-relative offsets
// until Initialize is called.
type Block struct {
	Data []byte
}

// AsMemoryBlock returns an owned buffer containing a header, the pointer
// table, and the concatenation of the primary and trailing regions, with
// every internal-pointer cell rewritten as a self-relative offset bit-
// tagged by region.
func (s *Serializer) AsMemoryBlock() Block {
	primarySize := uint64(len(s.primary))
	pointerCount := uint64(len(s.internalPointers))
	pointerTableOffset := uint64(headerSize)
	primaryRegionStart := pointerTableOffset + pointerCount*wordSize
	totalSize := primaryRegionStart + primarySize + uint64(len(s.trailing))

	buf := make([]byte, totalSize)
	binary.LittleEndian.PutUint64(buf[0:8], totalSize)
	binary.LittleEndian.PutUint64(buf[8:16], primarySize)
	binary.LittleEndian.PutUint64(buf[16:24], pointerCount)
	binary.LittleEndian.PutUint64(buf[24:32], pointerTableOffset)

	copy(buf[primaryRegionStart:], s.primary)
	copy(buf[primaryRegionStart+primarySize:], s.trailing)

	for i, ip := range s.internalPointers {
		cellAbs := regionAbs(ip.cellRegion, ip.cellOffset, primaryRegionStart, primarySize)
		targetAbs := regionAbs(ip.targetRegion, ip.targetOffset, primaryRegionStart, primarySize)

		tableEntryOffset := pointerTableOffset + uint64(i)*wordSize
		binary.LittleEndian.PutUint64(buf[tableEntryOffset:tableEntryOffset+wordSize], cellAbs)

		selfRel := targetAbs - cellAbs // uint64 wraparound for negative deltas, as in the source.
		if ip.targetRegion == regionTrailing {
			selfRel |= ptrFlagBit
		}
		binary.LittleEndian.PutUint64(buf[cellAbs:cellAbs+wordSize], selfRel)
	}

	return Block{Data: buf}
}

func regionAbs(r region, local, primaryRegionStart, primarySize uint64) uint64 {
	if r == regionPrimary {
		return primaryRegionStart + local
	}
	return primaryRegionStart + primarySize + local
}

// Initialize walks the header, locates the pointer table, and rewrites
// each recorded internal-pointer cell from its encoded self-relative
// offset form into an absolute byte offset from data's own start (plus
// base, if given). After this call the block is position-dependent:
// every cell holds a plain absolute offset, directly usable by View
// without any further decoding, but no longer safely relocatable
// without re-running Initialize on a pristine copy.
//
// base defaults to 0, meaning offsets are relative to data's own start.
// A non-zero base is used when this block is a sub-range of a larger
// buffer whose final resting offset differs from data's current position.
func Initialize(data []byte, base ...uint64) {
	var baseOffset uint64
	if len(base) > 0 {
		baseOffset = base[0]
	}
	pointerCount := binary.LittleEndian.Uint64(data[16:24])
	pointerTableOffset := binary.LittleEndian.Uint64(data[24:32])

	for i := uint64(0); i < pointerCount; i++ {
		entryOffset := pointerTableOffset + i*wordSize
		cellAbs := binary.LittleEndian.Uint64(data[entryOffset : entryOffset+wordSize])

		encoded := binary.LittleEndian.Uint64(data[cellAbs : cellAbs+wordSize])
		delta := encoded &^ ptrFlagBit
		absoluteOffset := cellAbs + delta + baseOffset

		binary.LittleEndian.PutUint64(data[cellAbs:cellAbs+wordSize], absoluteOffset)
	}
}

// GetFirstObject returns the byte offset, from data's start, of the root
// object: the start of the primary region.
func GetFirstObject(data []byte) uint64 {
	pointerCount := binary.LittleEndian.Uint64(data[16:24])
	pointerTableOffset := binary.LittleEndian.Uint64(data[24:32])
	return pointerTableOffset + pointerCount*wordSize
}

// GetSize returns the total block size recorded in the header.
func GetSize(data []byte) uint64 {
	return binary.LittleEndian.Uint64(data[0:8])
}
