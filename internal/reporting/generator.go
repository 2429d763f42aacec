package reporting

import (
	"fmt"
	"time"

	"crypto-cluster-insights/internal/domain"
)

// ProfileSource is the read side of an analyzer.
type ProfileSource interface {
	Len() int
	ClusterIDs() []int
	GenerateClusterProfile(clusterID int) (*domain.ClusterProfile, error)
	GenerateMarketSummary() domain.MarketSummary
}

// Generator assembles reports from a ProfileSource.
type Generator struct {
	source ProfileSource
	now    func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(source ProfileSource) *Generator {
	return &Generator{
		source: source,
		now:    time.Now,
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate builds the report with every cluster profile, ascending by id.
func (g *Generator) Generate() (*Report, error) {
	ids := g.source.ClusterIDs()

	profiles := make([]*domain.ClusterProfile, 0, len(ids))
	for _, id := range ids {
		p, err := g.source.GenerateClusterProfile(id)
		if err != nil {
			return nil, fmt.Errorf("profile cluster %d: %w", id, err)
		}
		profiles = append(profiles, p)
	}

	return &Report{
		GeneratedAt:  g.now(),
		TotalCoins:   g.source.Len(),
		ClusterCount: len(ids),
		Profiles:     profiles,
		Summary:      g.source.GenerateMarketSummary(),
	}, nil
}
