package profile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectROI_DefaultScenarios(t *testing.T) {
	got, err := ProjectROI(10000, 12, DefaultROIScenarios)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "Conservative", got[0].Scenario)
	assert.InDelta(t, 11500, got[0].ExpectedValue, 1e-6)
	assert.InDelta(t, 1500, got[0].Profit, 1e-6)
	assert.InDelta(t, 15, got[0].ROIPercent, 1e-9)
	assert.Equal(t, "20-40%", got[0].Allocation)

	assert.InDelta(t, 17500, got[2].ExpectedValue, 1e-6)
	assert.Equal(t, "0-5%", got[2].Allocation)
}

func TestProjectROI_HorizonIsLinear(t *testing.T) {
	got, err := ProjectROI(1000, 6, DefaultROIScenarios[1:2])
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.InDelta(t, 1175, got[0].ExpectedValue, 1e-6)
	assert.Equal(t, "10-20%", got[0].Allocation)
}

func TestProjectROI_InvalidInput(t *testing.T) {
	_, err := ProjectROI(0, 12, DefaultROIScenarios)
	assert.ErrorIs(t, err, ErrInvalidROIInput)

	_, err = ProjectROI(100, 0, DefaultROIScenarios)
	assert.ErrorIs(t, err, ErrInvalidROIInput)

	_, err = ProjectROI(math.NaN(), 12, DefaultROIScenarios)
	assert.ErrorIs(t, err, ErrInvalidROIInput)

	_, err = ProjectROI(math.Inf(1), 12, DefaultROIScenarios)
	assert.ErrorIs(t, err, ErrInvalidROIInput)
}
