package xmlscene

import (
	"regexp"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
)

var separators = regexp.MustCompile(`[,\s]+`)

// ParseFloats splits s on runs of commas and/or whitespace and converts every
// token. Separators at either end produce no empty tokens.
func ParseFloats(s string) ([]float64, error) {
	var out []float64
	for _, tok := range separators.Split(s, -1) {
		if tok == "" {
			continue
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, &ElementError{Msg: strconv.Quote(tok) + " is not a number", Err: ErrParse}
		}
		out = append(out, v)
	}
	return out, nil
}

func parseFloatsN(s string, n int) ([]float64, error) {
	vals, err := ParseFloats(s)
	if err != nil {
		return nil, err
	}
	if len(vals) != n {
		return nil, &ElementError{Msg: "expected " + strconv.Itoa(n) + " values, got " + strconv.Itoa(len(vals)), Err: ErrParse}
	}
	return vals, nil
}

// ParseVec3 parses exactly three numbers.
func ParseVec3(s string) (mgl64.Vec3, error) {
	v, err := parseFloatsN(s, 3)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return mgl64.Vec3{v[0], v[1], v[2]}, nil
}

// ParseColor parses an RGB triple.
func ParseColor(s string) (Color, error) {
	v, err := parseFloatsN(s, 3)
	if err != nil {
		return Color{}, err
	}
	return Color{R: v[0], G: v[1], B: v[2]}, nil
}

// ParseMatrix parses 16 numbers given in row-major order.
func ParseMatrix(s string) (mgl64.Mat4, error) {
	v, err := parseFloatsN(s, 16)
	if err != nil {
		return mgl64.Mat4{}, err
	}
	return mgl64.Mat4FromRows(
		mgl64.Vec4{v[0], v[1], v[2], v[3]},
		mgl64.Vec4{v[4], v[5], v[6], v[7]},
		mgl64.Vec4{v[8], v[9], v[10], v[11]},
		mgl64.Vec4{v[12], v[13], v[14], v[15]},
	), nil
}
