package scaffold_test

import (
	"testing"

	"github.com/xle-project/scaffoldc/assets/scaffold"
	"github.com/xle-project/scaffoldc/internal/vmath"
)

func TestGenerateOutputTransformsTranslateChain(t *testing.T) {
	prog := scaffold.NewTransformProgram()
	prog.PushLocalToWorld()
	prog.TranslateStatic(vmath.Vec3{X: 1, Y: 0, Z: 0})
	prog.WriteOutputMatrix(0)
	prog.PushLocalToWorld()
	prog.TranslateStatic(vmath.Vec3{X: 0, Y: 2, Z: 0})
	prog.WriteOutputMatrix(1)
	prog.PopLocalToWorld(2)
	prog.WriteOutputMatrix(2)

	result := make([]vmath.Mat4, 3)
	if err := scaffold.GenerateOutputTransforms(result, nil, prog.Words()); err != nil {
		t.Fatalf("GenerateOutputTransforms: %v", err)
	}

	p0 := result[0].TransformPoint(vmath.Vec3{})
	if p0.X != 1 || p0.Y != 0 {
		t.Fatalf("marker 0 = %+v, want translate(1,0,0)", p0)
	}
	p1 := result[1].TransformPoint(vmath.Vec3{})
	if p1.X != 1 || p1.Y != 2 {
		t.Fatalf("marker 1 = %+v, want translate(1,2,0) (nested push)", p1)
	}
	p2 := result[2].TransformPoint(vmath.Vec3{})
	if p2.X != 0 || p2.Y != 0 || p2.Z != 0 {
		t.Fatalf("marker 2 = %+v, want identity after popping both pushes", p2)
	}
}

func TestCalculateParentPointers(t *testing.T) {
	prog := scaffold.NewTransformProgram()
	prog.WriteOutputMatrix(0) // root, no parent
	prog.PushLocalToWorld()
	prog.WriteOutputMatrix(1) // child of 0
	prog.PopLocalToWorld(1)

	parents, err := scaffold.CalculateParentPointers(2, prog.Words())
	if err != nil {
		t.Fatalf("CalculateParentPointers: %v", err)
	}
	if parents[0] != ^uint32(0) {
		t.Fatalf("marker 0 parent = %d, want none", parents[0])
	}
	if parents[1] != 0 {
		t.Fatalf("marker 1 parent = %d, want 0", parents[1])
	}
}
