package rate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		at   float64
		want float64
	}{
		{"constant", Spec{Kind: KindConstant, Base: 3}, 7, 3},
		{"default kind is constant", Spec{Base: 2}, 1, 2},
		{"linear", Spec{Kind: KindLinear, Base: 1, Slope: 0.5}, 4, 3},
		{"linear clamps at zero", Spec{Kind: KindLinear, Base: 1, Slope: -1}, 5, 0},
		{"sinusoidal at quarter period", Spec{Kind: KindSinusoidal, Base: 2, Amplitude: 1, Period: 4}, 1, 3},
		{"piecewise first step", Spec{Kind: KindPiecewise, Steps: []Step{{Until: 1, Rate: 5}, {Until: 2, Rate: 1}}}, 0.5, 5},
		{"piecewise boundary belongs to next step", Spec{Kind: KindPiecewise, Steps: []Step{{Until: 1, Rate: 5}, {Until: 2, Rate: 1}}}, 1, 1},
		{"piecewise past last step", Spec{Kind: KindPiecewise, Steps: []Step{{Until: 1, Rate: 5}, {Until: 2, Rate: 1}}}, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := Build(tt.spec)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, fn(tt.at), 1e-12)
		})
	}
}

func TestBuildRejects(t *testing.T) {
	bad := []Spec{
		{Kind: "cubic"},
		{Kind: KindConstant, Base: -1},
		{Kind: KindSinusoidal, Base: 1, Period: 0},
		{Kind: KindPiecewise},
		{Kind: KindPiecewise, Steps: []Step{{Until: 2, Rate: 1}, {Until: 1, Rate: 1}}},
		{Kind: KindPiecewise, Steps: []Step{{Until: 2, Rate: -1}}},
	}
	for _, s := range bad {
		_, err := Build(s)
		assert.Error(t, err, "spec %+v", s)
	}
}

func TestPiecewiseWithoutSteps(t *testing.T) {
	fn := Piecewise(nil)
	assert.NotPanics(t, func() { fn(3) })
	assert.Equal(t, 0.0, fn(3))
}

func TestPeak(t *testing.T) {
	fn := Sinusoidal(2, 1, 4)
	assert.InDelta(t, 3.0, Peak(fn, 4, 400), 1e-9)
	assert.Equal(t, 5.0, Peak(Linear(0, 1), 5, 0))
}
