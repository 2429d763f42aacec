package domain

// RiskLevel is the discrete bucket of a risk score.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "Low"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelHigh   RiskLevel = "High"
)

// RiskLevels lists levels in report order.
var RiskLevels = []RiskLevel{RiskLevelLow, RiskLevelMedium, RiskLevelHigh}

// RiskAssessment is the scored risk of one cluster.
type RiskAssessment struct {
	Score   float64   `json:"score"` // [1, 10], one decimal
	Level   RiskLevel `json:"level"`
	Badge   string    `json:"badge"`
	Factors []string  `json:"factors"`
}

// NotableCoin is one entry of the notable-coin list.
type NotableCoin struct {
	Name          string  `json:"name"`
	Algorithm     string  `json:"algorithm"`
	ProofType     string  `json:"proof_type"`
	Mined         string  `json:"mined"`  // thousands separators, no decimals
	Supply        string  `json:"supply"` // thousands separators, no decimals
	Completion    float64 `json:"completion"`
	CompletionPct string  `json:"completion_pct"` // e.g. "85.4%"
}

// InvestmentInsights holds the composed commentary for a cluster.
type InvestmentInsights struct {
	Allocation     string   `json:"recommended_allocation"`
	Strategy       string   `json:"investment_strategy"`
	Considerations []string `json:"key_considerations"`
	Opportunities  []string `json:"potential_opportunities"`
	Warnings       []string `json:"warnings"`
}

// ProfileStatistics holds display-formatted statistics.
type ProfileStatistics struct {
	AvgSupply        string `json:"avg_supply"`
	AvgMined         string `json:"avg_mined"`
	SupplyVolatility string `json:"supply_volatility"` // High | Low
}

// ClusterProfile is the externally visible product of the profiling engine.
type ClusterProfile struct {
	ClusterID         int                `json:"cluster_id"`
	Name              string             `json:"name"`
	Description       string             `json:"description"`
	Size              int                `json:"size"`
	Share             float64            `json:"share"`      // size / dataset rows
	Percentage        string             `json:"percentage"` // "%.1f%%" of Share
	KeyFeatures       []string           `json:"key_features"`
	DominantAlgorithm string             `json:"dominant_algorithm"`
	DominantProofType string             `json:"dominant_proof"`
	Risk              RiskAssessment     `json:"risk_assessment"`
	NotableCoins      []NotableCoin      `json:"notable_coins"`
	Insights          InvestmentInsights `json:"investment_insights"`
	Statistics        ProfileStatistics  `json:"statistics"`
}

// MarketStructure describes how rows are spread across clusters.
type MarketStructure struct {
	LargestCluster  int    `json:"largest_cluster"`
	SmallestCluster int    `json:"smallest_cluster"`
	Concentration   string `json:"concentration"` // High | Balanced
}

// RiskDistribution counts clusters per risk level.
type RiskDistribution struct {
	Low    int `json:"Low"`
	Medium int `json:"Medium"`
	High   int `json:"High"`
}

// Count returns the number of clusters at the given level.
func (d RiskDistribution) Count(level RiskLevel) int {
	switch level {
	case RiskLevelLow:
		return d.Low
	case RiskLevelMedium:
		return d.Medium
	case RiskLevelHigh:
		return d.High
	default:
		return 0
	}
}

// MarketSummary aggregates across all clusters.
type MarketSummary struct {
	TotalCoins            int              `json:"total_cryptocurrencies"`
	TotalClusters         int              `json:"total_clusters"`
	AvgClusterSize        float64          `json:"avg_cluster_size"`
	Structure             MarketStructure  `json:"market_structure"`
	AlgorithmDistribution []CountEntry     `json:"algorithm_distribution"` // top 10
	ProofDistribution     []CountEntry     `json:"proof_distribution"`     // top 5
	RiskDistribution      RiskDistribution `json:"risk_distribution"`
}

// ComparisonRow is one row of a cluster comparison table.
type ComparisonRow struct {
	ClusterID         int       `json:"cluster_id"`
	Name              string    `json:"name"`
	Size              int       `json:"size"`
	RiskLevel         RiskLevel `json:"risk_level"`
	RiskScore         float64   `json:"risk_score"`
	DominantAlgorithm string    `json:"algorithm"`
	DominantProofType string    `json:"proof"`
	Allocation        string    `json:"allocation"`
}
