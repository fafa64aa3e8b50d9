package block

import (
	"encoding/binary"
	"math"
)

// View is a read-only, non-owning window onto a fixed-up Block. It never
// allocates and never frees the underlying buffer: "non-owning" falls out
// of holding a plain Go slice over borrowed memory, rather than needing a
// tagged deleter the way the source's allocator does.
type View struct {
	Data  []byte
	block []byte
}

// NewView wraps already-Initialize'd data.
func NewView(data []byte) View { return View{Data: data, block: data} }

// Root returns a View positioned at the block's root object.
func (v View) Root() View {
	return View{Data: v.Data[GetFirstObject(v.Data):], block: v.block}
}

// At returns a View positioned offset bytes into v.
func (v View) At(offset uint64) View {
	return View{Data: v.Data[offset:], block: v.block}
}

// Uint8/Uint16/Uint32/Uint64/Int.../Float... read a scalar at the given
// local offset without advancing any cursor (the primary block's layout
// is fixed at write time, so readers address fields by offset, not by
// sequential consumption).
func (v View) Uint8(off uint64) uint8   { return v.Data[off] }
func (v View) Int8(off uint64) int8     { return int8(v.Data[off]) }
func (v View) Uint16(off uint64) uint16 { return binary.LittleEndian.Uint16(v.Data[off : off+2]) }
func (v View) Int16(off uint64) int16   { return int16(v.Uint16(off)) }
func (v View) Uint32(off uint64) uint32 { return binary.LittleEndian.Uint32(v.Data[off : off+4]) }
func (v View) Int32(off uint64) int32   { return int32(v.Uint32(off)) }
func (v View) Uint64(off uint64) uint64 { return binary.LittleEndian.Uint64(v.Data[off : off+8]) }
func (v View) Int64(off uint64) int64   { return int64(v.Uint64(off)) }
func (v View) Float32(off uint64) float32 {
	return math.Float32frombits(v.Uint32(off))
}
func (v View) Float64(off uint64) float64 {
	return math.Float64frombits(v.Uint64(off))
}

// Pointer follows a fixed-up internal pointer cell at local offset off,
// returning a View at its target.
func (v View) Pointer(off uint64) View {
	return View{Data: v.block[v.Uint64(off):], block: v.block}
}

// SubBlockRaw follows the (pointer, count) pair written by
// SerializeSubBlockRaw/SerializeSubBlockFunc at local offset off: the
// pointer cell is at off, the element count immediately follows at
// off+8.
func (v View) SubBlockRaw(off uint64) (data []byte, count uint64) {
	count = v.Uint64(off + wordSize)
	target := v.Pointer(off)
	return target.Data, count
}

// String reads a length-prefixed byte sequence written via
// SerializeSubBlockRaw with tag String, decoding it as UTF-8 text.
func (v View) String(off uint64) string {
	data, count := v.SubBlockRaw(off)
	return string(data[:count])
}
