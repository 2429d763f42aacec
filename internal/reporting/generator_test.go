package reporting

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-cluster-insights/internal/domain"
)

type stubSource struct {
	ids     []int
	failOn  int
	summary domain.MarketSummary
}

func (s *stubSource) Len() int          { return 10 }
func (s *stubSource) ClusterIDs() []int { return s.ids }

func (s *stubSource) GenerateClusterProfile(id int) (*domain.ClusterProfile, error) {
	if id == s.failOn {
		return nil, errors.New("boom")
	}
	return sampleProfile(id, "P"), nil
}

func (s *stubSource) GenerateMarketSummary() domain.MarketSummary { return s.summary }

func TestGenerate_CollectsProfilesInOrder(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	src := &stubSource{ids: []int{0, 2, 5}, failOn: -1, summary: domain.MarketSummary{TotalCoins: 10, TotalClusters: 3}}

	r, err := NewGenerator(src).WithClock(func() time.Time { return fixed }).Generate()
	require.NoError(t, err)

	assert.Equal(t, fixed, r.GeneratedAt)
	assert.Equal(t, 10, r.TotalCoins)
	assert.Equal(t, 3, r.ClusterCount)
	require.Len(t, r.Profiles, 3)
	assert.Equal(t, 5, r.Profiles[2].ClusterID)
	assert.Equal(t, 3, r.Summary.TotalClusters)
}

func TestGenerate_PropagatesProfileError(t *testing.T) {
	src := &stubSource{ids: []int{0, 1}, failOn: 1}

	_, err := NewGenerator(src).Generate()

	assert.ErrorContains(t, err, "profile cluster 1")
}
