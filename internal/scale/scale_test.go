package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypographicKnownValues(t *testing.T) {
	got, err := Typographic(Config{Base: 16, Ratio: 1.25})
	require.NoError(t, err)

	assert.Equal(t, 16, got[StepBody], "body is the anchor and equals the base")
	assert.Equal(t, 13, got[StepSmall])
	assert.Equal(t, 10, got[StepCaption])
	assert.Equal(t, 20, got[StepH6])
	assert.Equal(t, 49, got[StepH2])
	assert.Equal(t, 61, got[StepH1])
	assert.Equal(t, 76, got[StepDisplay])

	largest := got[TypeOrder()[len(TypeOrder())-1]]
	for _, step := range TypeOrder() {
		assert.LessOrEqual(t, got[step], largest, "display is the largest step")
	}
}

func TestSpacingKnownValues(t *testing.T) {
	got, err := Spacing(Config{Base: 16, Ratio: 1.3})
	require.NoError(t, err)

	assert.Equal(t, 16, got[StepMD], "md is the anchor and equals the base")
	assert.Equal(t, 12, got[StepSM])
	assert.Equal(t, 9, got[StepXS])
	assert.Equal(t, 21, got[StepLG])
	assert.Equal(t, 27, got[StepXL])
	assert.Equal(t, 35, got[Step2XL])
}

func TestScalesStrictlyMonotonic(t *testing.T) {
	configs := []Config{
		{Base: 16, Ratio: 1.25},
		{Base: 16, Ratio: 1.067},
		{Base: 4, Ratio: 1.01},
		{Base: 1, Ratio: 1.618},
		{Base: 100, Ratio: 2},
	}

	for _, cfg := range configs {
		typo, err := Typographic(cfg)
		require.NoError(t, err)
		for i := 1; i < len(TypeOrder()); i++ {
			prev, cur := TypeOrder()[i-1], TypeOrder()[i]
			assert.Greater(t, typo[cur], typo[prev],
				"base=%g ratio=%g: %s must exceed %s", cfg.Base, cfg.Ratio, cur, prev)
		}

		spacing, err := Spacing(cfg)
		require.NoError(t, err)
		for i := 1; i < len(SpacingOrder()); i++ {
			prev, cur := SpacingOrder()[i-1], SpacingOrder()[i]
			assert.Greater(t, spacing[cur], spacing[prev],
				"base=%g ratio=%g: %s must exceed %s", cfg.Base, cfg.Ratio, cur, prev)
		}
	}
}

func TestScalesPositive(t *testing.T) {
	// A tiny base would round to zero without the floor at one.
	got, err := Spacing(Config{Base: 1, Ratio: 1.1})
	require.NoError(t, err)
	for _, step := range SpacingOrder() {
		assert.GreaterOrEqual(t, got[step], 1, "step %s", step)
	}
}

func TestScalesDeterministic(t *testing.T) {
	cfg := Config{Base: 16, Ratio: 1.25}

	first, err := Typographic(cfg)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		got, err := Typographic(cfg)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "valid", cfg: Config{Base: 16, Ratio: 1.25}, wantErr: false},
		{name: "zero base", cfg: Config{Base: 0, Ratio: 1.25}, wantErr: true},
		{name: "negative base", cfg: Config{Base: -4, Ratio: 1.25}, wantErr: true},
		{name: "ratio of one", cfg: Config{Base: 16, Ratio: 1}, wantErr: true},
		{name: "ratio below one", cfg: Config{Base: 16, Ratio: 0.8}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidScaleParameters)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGenerateRejectsInvalidConfig(t *testing.T) {
	_, err := Typographic(Config{Base: 0, Ratio: 1.25})
	assert.ErrorIs(t, err, ErrInvalidScaleParameters)

	_, err = Spacing(Config{Base: 16, Ratio: 0.5})
	assert.ErrorIs(t, err, ErrInvalidScaleParameters)
}
