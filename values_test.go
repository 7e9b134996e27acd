package xmlscene

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestParseFloats_Separators(t *testing.T) {
	cases := map[string][]float64{
		"1 2 3":           {1, 2, 3},
		"1,2,3":           {1, 2, 3},
		"1, 2 ,\t3":       {1, 2, 3},
		"  -1.5e2,,0.25 ": {-150, 0.25},
		"":                nil,
	}
	for in, want := range cases {
		got, err := ParseFloats(in)
		if err != nil {
			t.Errorf("ParseFloats(%q): unexpected error %v", in, err)
			continue
		}
		if len(got) != len(want) {
			t.Errorf("ParseFloats(%q) = %v, want %v", in, got, want)
			continue
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("ParseFloats(%q)[%d] = %v, want %v", in, i, got[i], want[i])
			}
		}
	}
}

func TestParseFloats_Malformed(t *testing.T) {
	_, err := ParseFloats("1 two 3")
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestParseVec3_WrongCount(t *testing.T) {
	if _, err := ParseVec3("1 2"); !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse for 2 values, got %v", err)
	}
	if _, err := ParseVec3("1 2 3 4"); !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse for 4 values, got %v", err)
	}
}

func TestParseMatrix_RowMajor(t *testing.T) {
	m, err := ParseMatrix("1 0 0 5, 0 1 0 6, 0 0 1 7, 0 0 0 1")
	if err != nil {
		t.Fatalf("ParseMatrix: %v", err)
	}
	// Translation sits in the last column when the input is read row by row.
	if m.At(0, 3) != 5 || m.At(1, 3) != 6 || m.At(2, 3) != 7 {
		t.Errorf("translation column = (%v, %v, %v), want (5, 6, 7)", m.At(0, 3), m.At(1, 3), m.At(2, 3))
	}
	p := TransformPoint(m, mgl64.Vec3{1, 1, 1})
	if !p.ApproxEqual(mgl64.Vec3{6, 7, 8}) {
		t.Errorf("transformed point = %v, want (6, 7, 8)", p)
	}
}
