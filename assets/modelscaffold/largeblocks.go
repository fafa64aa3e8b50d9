package modelscaffold

import (
	"fmt"
	"io"
)

// LargeBlockRef locates one large resource (a native vertex/index buffer)
// within the sibling "-large-blocks" artifact, by byte offset and length.
type LargeBlockRef struct {
	Offset int64
	Length int64
}

// OpenLargeBlocks returns a reader scoped to exactly ref's byte range
// within the large-blocks stream, so native vertex/index buffers can be
// streamed directly into a GPU upload without materializing the whole
// sibling artifact.
func OpenLargeBlocks(stream io.ReadSeeker, ref LargeBlockRef) (io.Reader, error) {
	if _, err := stream.Seek(ref.Offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("modelscaffold: seeking to large block at %d: %w", ref.Offset, err)
	}
	return io.LimitReader(stream, ref.Length), nil
}
