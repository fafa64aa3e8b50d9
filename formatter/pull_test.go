package formatter_test

import (
	"encoding/binary"
	"testing"

	"github.com/xle-project/scaffoldc/formatter"
	"github.com/xle-project/scaffoldc/formatter/schema"
)

func vec3Schemata() *schema.BinarySchemata {
	schemata := schema.NewBinarySchemata()
	schemata.AddBlock(&schema.Block{
		Name: "Vec3",
		Members: []schema.Member{
			{Name: "X", Kind: schema.KindScalar, Scalar: schema.ScalarFloat32},
			{Name: "Y", Kind: schema.KindScalar, Scalar: schema.ScalarFloat32},
			{Name: "Z", Kind: schema.KindScalar, Scalar: schema.ScalarFloat32},
		},
	})
	return schemata
}

func TestPullReaderWalksScalarsBlockAndArray(t *testing.T) {
	schemata := vec3Schemata()
	schemata.AddBlock(&schema.Block{
		Name: "Header",
		Members: []schema.Member{
			{Name: "Count", Kind: schema.KindScalar, Scalar: schema.ScalarUint32},
			{Name: "Origin", Kind: schema.KindBlock, BlockName: "Vec3"},
			{Name: "Items", Kind: schema.KindArray, Count: schema.RefExpr("Count"), ElementSize: schema.ConstExpr(4)},
		},
	})

	data := make([]byte, 4+12+2*4)
	binary.LittleEndian.PutUint32(data[0:4], 2)
	binary.LittleEndian.PutUint32(data[16:20], 0xAAAAAAAA)
	binary.LittleEndian.PutUint32(data[20:24], 0xBBBBBBBB)

	r := formatter.NewReader(schemata, data)
	if err := r.PushPattern("Header"); err != nil {
		t.Fatalf("PushPattern: %v", err)
	}

	name, _, ok, err := r.TryKeyedItem()
	if err != nil || !ok || name != "Count" {
		t.Fatalf("TryKeyedItem = (%q, %v, %v), want (Count, true, nil)", name, ok, err)
	}
	raw, scalar, ok, err := r.TryRawValue()
	if err != nil || !ok || scalar != schema.ScalarUint32 {
		t.Fatalf("TryRawValue(Count): ok=%v err=%v scalar=%v", ok, err, scalar)
	}
	if binary.LittleEndian.Uint32(raw) != 2 {
		t.Fatalf("Count raw = %v, want 2", raw)
	}

	if raw2, _, ok2, err2 := r.TryRawValue(); err2 != nil {
		t.Fatalf("TryRawValue on nested block: %v", err2)
	} else if ok2 {
		t.Fatalf("TryRawValue should not consume a nested block, got raw=%v", raw2)
	}
	begun, err := r.TryBeginBlock()
	if err != nil || !begun {
		t.Fatalf("TryBeginBlock(Origin) = (%v, %v), want (true, nil)", begun, err)
	}
	skipped, err := r.SkipNextBlob()
	if err != nil || skipped != 4 {
		t.Fatalf("SkipNextBlob(X) = (%d, %v), want (4, nil)", skipped, err)
	}
	if _, _, ok, err := r.TryRawValue(); err != nil || !ok {
		t.Fatalf("TryRawValue(Y): ok=%v err=%v", ok, err)
	}
	if _, _, ok, err := r.TryRawValue(); err != nil || !ok {
		t.Fatalf("TryRawValue(Z): ok=%v err=%v", ok, err)
	}
	if done, err := r.TryEndBlock(); err != nil || !done {
		t.Fatalf("TryEndBlock(Origin) = (%v, %v), want (true, nil)", done, err)
	}

	count, ok, err := r.TryBeginArray()
	if err != nil || !ok || count != 2 {
		t.Fatalf("TryBeginArray(Items) = (%d, %v, %v), want (2, true, nil)", count, ok, err)
	}
	first, _, ok, err := r.TryRawValue()
	if err != nil || !ok || binary.LittleEndian.Uint32(first) != 0xAAAAAAAA {
		t.Fatalf("TryRawValue(Items[0]) = %v, ok=%v err=%v", first, ok, err)
	}
	if _, _, ok, err := r.TryRawValue(); err != nil || !ok {
		t.Fatalf("TryRawValue(Items[1]): ok=%v err=%v", ok, err)
	}
	if done, err := r.TryEndArray(); err != nil || !done {
		t.Fatalf("TryEndArray(Items) = (%v, %v), want (true, nil)", done, err)
	}
	if done, err := r.TryEndBlock(); err != nil || !done {
		t.Fatalf("TryEndBlock(Header) = (%v, %v), want (true, nil)", done, err)
	}
	if r.Pos() != len(data) {
		t.Fatalf("Pos() = %d, want %d (fully consumed)", r.Pos(), len(data))
	}
}

func TestSkipArrayElementsUsesFixedSizeFastPath(t *testing.T) {
	schemata := vec3Schemata()
	schemata.AddBlock(&schema.Block{
		Name: "Pair",
		Members: []schema.Member{
			{Name: "A", Kind: schema.KindScalar, Scalar: schema.ScalarUint32},
			{Name: "B", Kind: schema.KindScalar, Scalar: schema.ScalarUint32},
		},
	})

	const count = 1000
	data := make([]byte, count*8+4)
	binary.LittleEndian.PutUint32(data[count*8:], 0xCAFEBABE)

	r := formatter.NewReader(schemata, data)
	consumed, err := r.SkipArrayElements("Pair", count)
	if err != nil {
		t.Fatalf("SkipArrayElements: %v", err)
	}
	if consumed != count*8 {
		t.Fatalf("consumed = %d, want %d", consumed, count*8)
	}
	if r.Pos() != count*8 {
		t.Fatalf("Pos() = %d, want %d", r.Pos(), count*8)
	}

	tail := make([]byte, 4)
	if err := r.SkipBytes(0); err != nil {
		t.Fatalf("SkipBytes(0): %v", err)
	}
	copy(tail, data[r.Pos():r.Pos()+4])
	if binary.LittleEndian.Uint32(tail) != 0xCAFEBABE {
		t.Fatalf("tail marker corrupted, fast path overshot or undershot the array")
	}
}

func TestSkipArrayElementsFallsBackWithoutFixedSize(t *testing.T) {
	schemata := schema.NewBinarySchemata()
	schemata.AddBlock(&schema.Block{
		Name: "Blob",
		Members: []schema.Member{
			{Name: "Len", Kind: schema.KindScalar, Scalar: schema.ScalarUint32},
			{Name: "Data", Kind: schema.KindScalar, Scalar: schema.ScalarBytes, ByteSize: schema.RefExpr("Len")},
		},
	})

	var data []byte
	appendBlob := func(n byte) {
		var l [4]byte
		binary.LittleEndian.PutUint32(l[:], uint32(n))
		data = append(data, l[:]...)
		data = append(data, make([]byte, n)...)
	}
	appendBlob(3)
	appendBlob(5)

	r := formatter.NewReader(schemata, data)
	consumed, err := r.SkipArrayElements("Blob", 2)
	if err != nil {
		t.Fatalf("SkipArrayElements: %v", err)
	}
	if consumed != len(data) {
		t.Fatalf("consumed = %d, want %d", consumed, len(data))
	}
}
