package scaffold

import (
	"encoding/binary"
	"fmt"
)

// Writer builds a command stream: a sequence of
// [u32 cmd_tag | u32 block_size | block_size bytes payload] records,
// appended in authoring order.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer { return &Writer{} }

// WriteRecord appends a single tagged record.
func (w *Writer) WriteRecord(tag Tag, payload []byte) {
	var hdr [8]byte
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(tag))
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(payload)))
	w.buf = append(w.buf, hdr[:]...)
	w.buf = append(w.buf, payload...)
}

// Bytes returns the accumulated stream, without the outer u32 length
// prefix (callers that need the length-prefixed outer scaffold stream use
// WrapLengthPrefixed).
func (w *Writer) Bytes() []byte { return w.buf }

// WrapLengthPrefixed prepends a u32 byte count, matching the outer
// scaffold command stream framing: it begins with a u32 total-byte length.
func WrapLengthPrefixed(streamBytes []byte) []byte {
	out := make([]byte, 4+len(streamBytes))
	binary.LittleEndian.PutUint32(out[0:4], uint32(len(streamBytes)))
	copy(out[4:], streamBytes)
	return out
}

// Record is a single decoded (tag, payload) pair from a command stream.
type Record struct {
	Tag     Tag
	Payload []byte
}

// Reader iterates linearly over a command stream's records. Unknown tags
// are always skippable via the prefixed block size - Reader never needs
// to know the full tag universe to advance.
type Reader struct {
	data []byte
	pos  int
}

// NewReader wraps a raw (non length-prefixed) command stream.
func NewReader(data []byte) *Reader { return &Reader{data: data} }

// NewLengthPrefixedReader reads the leading u32 byte count and returns a
// Reader scoped to exactly that many following bytes.
func NewLengthPrefixedReader(data []byte) (*Reader, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("scaffold: truncated length-prefixed stream")
	}
	n := binary.LittleEndian.Uint32(data[0:4])
	if uint64(4+n) > uint64(len(data)) {
		return nil, fmt.Errorf("scaffold: length-prefixed stream declares %d bytes, only %d available", n, len(data)-4)
	}
	return &Reader{data: data[4 : 4+n]}, nil
}

// Next advances past the next record and returns it. ok is false once the
// stream is exhausted.
func (r *Reader) Next() (rec Record, ok bool, err error) {
	if r.pos >= len(r.data) {
		return Record{}, false, nil
	}
	if r.pos+8 > len(r.data) {
		return Record{}, false, fmt.Errorf("scaffold: truncated record header at offset %d", r.pos)
	}
	tag := Tag(binary.LittleEndian.Uint32(r.data[r.pos : r.pos+4]))
	size := binary.LittleEndian.Uint32(r.data[r.pos+4 : r.pos+8])
	start := r.pos + 8
	end := start + int(size)
	if end > len(r.data) {
		return Record{}, false, fmt.Errorf("scaffold: record at offset %d declares %d bytes, overruns stream", r.pos, size)
	}
	r.pos = end
	return Record{Tag: tag, Payload: r.data[start:end]}, true, nil
}

// All drains the remaining records; a convenience for callers that do not
// need early termination.
func (r *Reader) All() ([]Record, error) {
	var recs []Record
	for {
		rec, ok, err := r.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return recs, nil
		}
		recs = append(recs, rec)
	}
}
