// Package chunk implements the chunked-artifact container that scaffold
// compilation targets: a small, versioned, named-chunk format, modelled on
// the framing conventions of a versioned, named-type registry keyed by a
// string identity, and on Assets/NascentChunk.cpp's "chunk file" writer.
package chunk

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Artifact is one serialized chunk produced by a compile operation.
type Artifact struct {
	ChunkTypeCode uint32
	Version       uint32
	Name          string
	Data          []byte
	DepVal        DepVal
}

// DepVal is the dependency-validation handle a compile attaches to each
// artifact it produces. The core never watches files itself; it only
// carries whatever handle the caller supplied.
type DepVal interface {
	// Validate returns a non-empty invalidation reason, or "" if the
	// dependency this artifact was built from is still fresh.
	Validate() string
}

// Well-known chunk type codes and versions for the model scaffold
// artifacts.
const (
	TypeModelScaffold            = 0xfe3dc4a2
	TypeModelScaffoldLargeBlocks = 0x9b1f02aa
	TypeMetrics                  = 0x1b2c3d4e
	TypeMaterialScaffold         = 0xc2a7611d
	TypeSkeletonScaffold         = 0x77ef9a03
	TypeAnimationSet             = 0x44d810e6

	VersionModelScaffold            = 1
	VersionModelScaffoldLargeBlocks = 0
	VersionMaterialScaffold         = 0
	VersionSkeletonScaffold         = 0
	VersionAnimationSet             = 0

	DataTypeBlockSerializer = "block-serializer"
	DataTypeReopenFunction  = "reopen-function"
)

// WriteContainer writes a sequence of artifacts to w using the chunk
// container framing:
//
//	[u32 chunkTypeCode][u32 version][u32 nameLen][name][u64 dataLen][data]
//
// repeated, closed by a zero chunkTypeCode sentinel record.
func WriteContainer(w io.Writer, artifacts []Artifact) error {
	for _, a := range artifacts {
		if err := writeHeader(w, a.ChunkTypeCode, a.Version, a.Name, uint64(len(a.Data))); err != nil {
			return err
		}
		if _, err := w.Write(a.Data); err != nil {
			return err
		}
	}
	return writeHeader(w, 0, 0, "", 0)
}

func writeHeader(w io.Writer, chunkType, version uint32, name string, dataLen uint64) error {
	var u32 [4]byte
	binary.LittleEndian.PutUint32(u32[:], chunkType)
	if _, err := w.Write(u32[:]); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(u32[:], version)
	if _, err := w.Write(u32[:]); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(u32[:], uint32(len(name)))
	if _, err := w.Write(u32[:]); err != nil {
		return err
	}
	if _, err := io.WriteString(w, name); err != nil {
		return err
	}
	var u64 [8]byte
	binary.LittleEndian.PutUint64(u64[:], dataLen)
	if _, err := w.Write(u64[:]); err != nil {
		return err
	}
	return nil
}

// ReadContainer reads a chunk container produced by WriteContainer. The
// returned artifacts carry no DepVal (the container format does not
// persist it - the compile-time DepVal is reattached by whoever tracks the
// artifact's source).
func ReadContainer(r io.Reader) ([]Artifact, error) {
	var artifacts []Artifact
	for {
		var hdr [12]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			if err == io.EOF {
				return artifacts, nil
			}
			return nil, fmt.Errorf("chunk: reading header: %w", err)
		}
		chunkType := binary.LittleEndian.Uint32(hdr[0:4])
		version := binary.LittleEndian.Uint32(hdr[4:8])
		nameLen := binary.LittleEndian.Uint32(hdr[8:12])
		if chunkType == 0 && version == 0 && nameLen == 0 {
			return artifacts, nil
		}
		name := make([]byte, nameLen)
		if _, err := io.ReadFull(r, name); err != nil {
			return nil, fmt.Errorf("chunk: reading name: %w", err)
		}
		var lenBuf [8]byte
		if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
			return nil, fmt.Errorf("chunk: reading data length: %w", err)
		}
		dataLen := binary.LittleEndian.Uint64(lenBuf[:])
		data := make([]byte, dataLen)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, fmt.Errorf("chunk: reading data: %w", err)
		}
		artifacts = append(artifacts, Artifact{ChunkTypeCode: chunkType, Version: version, Name: string(name), Data: data})
	}
}

// Find returns the first artifact in artifacts with the given chunk type,
// or (Artifact{}, false).
func Find(artifacts []Artifact, chunkType uint32) (Artifact, bool) {
	for _, a := range artifacts {
		if a.ChunkTypeCode == chunkType {
			return a, true
		}
	}
	return Artifact{}, false
}
