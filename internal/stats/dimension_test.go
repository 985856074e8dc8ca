package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveShape(t *testing.T) {
	t.Run("should resolve totals-only when no flag is set", func(t *testing.T) {
		shape := ResolveShape(false, false, false)

		assert.Equal(t, ModeTotalsOnly, shape.Mode)
		assert.Empty(t, shape.Active)
	})

	t.Run("should resolve a flat shape for each single flag", func(t *testing.T) {
		for _, tc := range []struct {
			bySource, byMediaType, byPublicType bool
			root                                Dimension
		}{
			{true, false, false, DimensionSource},
			{false, true, false, DimensionMediaType},
			{false, false, true, DimensionPublicType},
		} {
			shape := ResolveShape(tc.bySource, tc.byMediaType, tc.byPublicType)

			assert.Equal(t, ModeFlat, shape.Mode)
			assert.Equal(t, 1, shape.Depth())
			assert.Equal(t, tc.root, shape.Root())
		}
	})

	t.Run("should nest in priority order regardless of flag combination", func(t *testing.T) {
		for _, tc := range []struct {
			bySource, byMediaType, byPublicType bool
			active                              []Dimension
		}{
			{true, true, false, []Dimension{DimensionSource, DimensionMediaType}},
			{true, false, true, []Dimension{DimensionSource, DimensionPublicType}},
			{false, true, true, []Dimension{DimensionMediaType, DimensionPublicType}},
			{true, true, true, []Dimension{DimensionSource, DimensionMediaType, DimensionPublicType}},
		} {
			shape := ResolveShape(tc.bySource, tc.byMediaType, tc.byPublicType)

			assert.Equal(t, ModeNested, shape.Mode)
			assert.Equal(t, tc.active, shape.Active)
		}
	})
}

func TestDimensionFieldName(t *testing.T) {
	assert.Equal(t, "by_source", DimensionSource.FieldName())
	assert.Equal(t, "by_media_type", DimensionMediaType.FieldName())
	assert.Equal(t, "by_public_type", DimensionPublicType.FieldName())
}
