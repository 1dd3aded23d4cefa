// Package wheel picks who presents next by spinning a wheel of names.
// Angles are in degrees, slice 0 starts at the top and slices run clockwise.
package wheel

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

var ErrNoNames = errors.New("wheel has no names")

const (
	minSpins = 5
	maxSpins = 10
)

// Slice is one name's segment of the wheel
type Slice struct {
	Name       string  `json:"name"`
	StartAngle float64 `json:"start_angle"`
	EndAngle   float64 `json:"end_angle"`
	Color      string  `json:"color"`
}

// Result is the outcome of a spin
type Result struct {
	Rotation float64 `json:"rotation"`
	Index    int     `json:"index"`
	Name     string  `json:"name"`
	Slices   []Slice `json:"slices"`
}

// RandomHexColor returns a color in #rrggbb form
func RandomHexColor(r *rand.Rand) string {
	return fmt.Sprintf("#%06x", r.Intn(0x1000000))
}

// Slices splits the wheel evenly between names and colors each slice
func Slices(names []string, r *rand.Rand) []Slice {
	if len(names) == 0 {
		return nil
	}

	per := 360 / float64(len(names))
	slices := make([]Slice, len(names))
	for i, name := range names {
		slices[i] = Slice{
			Name:       name,
			StartAngle: float64(i) * per,
			EndAngle:   float64(i+1) * per,
			Color:      RandomHexColor(r),
		}
	}
	return slices
}

// SelectedIndex returns the slice under the pointer once the wheel has turned
// rotation degrees clockwise.
func SelectedIndex(rotation float64, n int) int {
	normalized := math.Mod(rotation, 360)
	if normalized < 0 {
		normalized += 360
	}
	per := 360 / float64(n)

	idx := n - (int(math.Floor(normalized/per)) % n) - 1
	if idx < 0 {
		idx += n
	}
	return idx
}

// Spin turns the wheel 5 to 10 full times plus a random angle, starting from
// the previous rotation so successive spins keep turning the same way.
func Spin(names []string, from float64, r *rand.Rand) (*Result, error) {
	if len(names) == 0 {
		return nil, ErrNoNames
	}

	spins := minSpins + r.Float64()*(maxSpins-minSpins)
	angle := r.Float64() * 360
	rotation := from + spins*360 + angle

	idx := SelectedIndex(rotation, len(names))
	return &Result{
		Rotation: rotation,
		Index:    idx,
		Name:     names[idx],
		Slices:   Slices(names, r),
	}, nil
}
