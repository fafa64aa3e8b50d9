package formatter_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/xle-project/scaffoldc/formatter"
	"github.com/xle-project/scaffoldc/formatter/schema"
)

func TestDecodeBlockScalarsAndNestedArray(t *testing.T) {
	schemata := schema.NewBinarySchemata()
	schemata.AddBlock(&schema.Block{
		Name: "Header",
		Members: []schema.Member{
			{Name: "Count", Kind: schema.KindScalar, Scalar: schema.ScalarUint32},
			{
				Name: "Items", Kind: schema.KindArray,
				Count:       schema.RefExpr("Count"),
				ElementSize: schema.ConstExpr(4),
			},
		},
	})

	data := make([]byte, 4+2*4)
	binary.LittleEndian.PutUint32(data[0:4], 2)
	binary.LittleEndian.PutUint32(data[4:8], 0xAAAAAAAA)
	binary.LittleEndian.PutUint32(data[8:12], 0xBBBBBBBB)

	r := formatter.NewReader(schemata, data)
	v, err := r.BeginBlock("Header")
	if err != nil {
		t.Fatalf("BeginBlock: %v", err)
	}
	m := v.(map[string]formatter.Value)
	if m["Count"].(int64) != 2 {
		t.Fatalf("Count = %v, want 2", m["Count"])
	}
	items := m["Items"].([]byte)
	if len(items) != 8 {
		t.Fatalf("Items length = %d, want 8", len(items))
	}
	if r.Pos() != len(data) {
		t.Fatalf("Pos() = %d, want %d (fully consumed)", r.Pos(), len(data))
	}
}

func TestDecodeBlockNestedBlockAndVariant(t *testing.T) {
	schemata := schema.NewBinarySchemata()
	schemata.AddBlock(&schema.Block{
		Name: "Vec3",
		Members: []schema.Member{
			{Name: "X", Kind: schema.KindScalar, Scalar: schema.ScalarFloat32},
			{Name: "Y", Kind: schema.KindScalar, Scalar: schema.ScalarFloat32},
			{Name: "Z", Kind: schema.KindScalar, Scalar: schema.ScalarFloat32},
		},
	})
	schemata.AddBlock(&schema.Block{
		Name: "PointLight",
		Members: []schema.Member{
			{Name: "Radius", Kind: schema.KindScalar, Scalar: schema.ScalarFloat32},
		},
	})
	schemata.AddBlock(&schema.Block{
		Name: "DirectionalLight",
		Members: []schema.Member{
			{Name: "Intensity", Kind: schema.KindScalar, Scalar: schema.ScalarFloat32},
		},
	})
	schemata.AddBlock(&schema.Block{
		Name: "Light",
		Members: []schema.Member{
			{Name: "Position", Kind: schema.KindBlock, BlockName: "Vec3"},
			{Name: "Kind", Kind: schema.KindScalar, Scalar: schema.ScalarUint8},
			{
				Name: "Payload", Kind: schema.KindVariant,
				VariantTags: map[int64]string{0: "PointLight", 1: "DirectionalLight"},
			},
		},
	})

	var buf []byte
	appendF32 := func(f float32) { var b [4]byte; binary.LittleEndian.PutUint32(b[:], math.Float32bits(f)); buf = append(buf, b[:]...) }
	appendF32(1) // Position.X
	appendF32(2) // Position.Y
	appendF32(3) // Position.Z
	buf = append(buf, 1) // Kind = 1 -> DirectionalLight
	appendF32(0.5) // DirectionalLight.Intensity

	r := formatter.NewReader(schemata, buf)
	v, err := r.BeginBlock("Light")
	if err != nil {
		t.Fatalf("BeginBlock: %v", err)
	}
	m := v.(map[string]formatter.Value)
	pos := m["Position"].(map[string]formatter.Value)
	if pos["X"].(float64) != 1 {
		t.Fatalf("Position.X = %v, want 1", pos["X"])
	}
	payload := m["Payload"].(map[string]formatter.Value)
	if _, ok := payload["Intensity"]; !ok {
		t.Fatalf("expected DirectionalLight variant to have decoded, got %v", payload)
	}
}

func TestTryCalculateFixedSize(t *testing.T) {
	schemata := schema.NewBinarySchemata()
	schemata.AddBlock(&schema.Block{
		Name: "Fixed",
		Members: []schema.Member{
			{Name: "A", Kind: schema.KindScalar, Scalar: schema.ScalarUint32},
			{Name: "B", Kind: schema.KindScalar, Scalar: schema.ScalarUint64},
		},
	})
	ctx := formatter.NewEvaluationContext(schemata, nil)
	size, ok := ctx.TryCalculateFixedSize("Fixed")
	if !ok || size != 12 {
		t.Fatalf("TryCalculateFixedSize = (%d, %v), want (12, true)", size, ok)
	}
}
