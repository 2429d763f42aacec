package profile

import (
	"fmt"
	"strings"

	"crypto-cluster-insights/internal/domain"
)

// Characterization names and describes a cluster.
type Characterization struct {
	Name        string
	Description string
	Features    []string // always 4 entries
}

// Supply thresholds used by the characterization rules.
const (
	highSupplyThreshold = 1e9
	lowSupplyThreshold  = 1e7
)

// characterRule is one entry of the ordered characterization table.
type characterRule struct {
	name    string
	matches func(s *domain.ClusterStatistics) bool
	build   func(s *domain.ClusterStatistics) Characterization
}

// characterRules is evaluated top to bottom; the first match wins.
// The last rule always matches.
var characterRules = []characterRule{
	{
		name: "established",
		matches: func(s *domain.ClusterStatistics) bool {
			return s.HasAnyMember("Bitcoin", "Ethereum")
		},
		build: func(_ *domain.ClusterStatistics) Characterization {
			return Characterization{
				Name:        "Established Major Cryptocurrencies",
				Description: "Industry-leading cryptocurrencies with high market adoption and proven track records",
				Features: []string{
					"Market Leaders",
					"High Liquidity",
					"Strong Community",
					"Proven Technology",
				},
			}
		},
	},
	{
		name: "high_supply",
		matches: func(s *domain.ClusterStatistics) bool {
			return s.AvgSupply > highSupplyThreshold
		},
		build: func(s *domain.ClusterStatistics) Characterization {
			return Characterization{
				Name:        "High-Supply Altcoins",
				Description: "Cryptocurrencies with large total supply, often targeting mass adoption",
				Features: []string{
					"Large Supply Base",
					fmt.Sprintf("Dominant: %s", s.DominantAlgorithm()),
					"Mass Market Focus",
					"Lower Individual Token Value",
				},
			}
		},
	},
	{
		name: "scarce_pos",
		matches: func(s *domain.ClusterStatistics) bool {
			return s.AvgSupply < lowSupplyThreshold && s.DominantProofType() == "PoS"
		},
		build: func(_ *domain.ClusterStatistics) Characterization {
			return Characterization{
				Name:        "Scarcity-Focused PoS Coins",
				Description: "Proof-of-Stake coins with limited supply, emphasizing scarcity and staking rewards",
				Features: []string{
					"Limited Supply",
					"Staking Mechanisms",
					"Energy Efficient",
					"Deflationary Pressure",
				},
			}
		},
	},
	{
		name: "scrypt",
		matches: func(s *domain.ClusterStatistics) bool {
			return strings.Contains(s.DominantAlgorithm(), "Scrypt")
		},
		build: func(_ *domain.ClusterStatistics) Characterization {
			return Characterization{
				Name:        "Scrypt-Based Mining Coins",
				Description: "Cryptocurrencies using Scrypt algorithm, often Litecoin-inspired",
				Features: []string{
					"Scrypt Algorithm",
					"GPU-Friendly Mining",
					"Fast Transactions",
					"Alternative to SHA-256",
				},
			}
		},
	},
	{
		name:    "fallback",
		matches: func(_ *domain.ClusterStatistics) bool { return true },
		build: func(s *domain.ClusterStatistics) Characterization {
			algo := s.DominantAlgorithm()
			proof := s.DominantProofType()
			return Characterization{
				Name:        fmt.Sprintf("%s Cluster", algo),
				Description: fmt.Sprintf("Cryptocurrencies primarily using %s algorithm with %s consensus", algo, proof),
				Features: []string{
					fmt.Sprintf("Algorithm: %s", algo),
					fmt.Sprintf("Consensus: %s", proof),
					"Niche Market Position",
					"Specialized Use Cases",
				},
			}
		},
	},
}

// Characterize applies the ordered rule table to a cluster's statistics.
func Characterize(s *domain.ClusterStatistics) Characterization {
	for _, rule := range characterRules {
		if rule.matches(s) {
			return rule.build(s)
		}
	}
	// unreachable: the fallback rule always matches
	return Characterization{}
}

// matchedRule returns the name of the rule that characterizes s.
func matchedRule(s *domain.ClusterStatistics) string {
	for _, rule := range characterRules {
		if rule.matches(s) {
			return rule.name
		}
	}
	return ""
}
