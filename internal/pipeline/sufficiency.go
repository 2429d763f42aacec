package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"crypto-cluster-insights/internal/domain"
	"crypto-cluster-insights/internal/metrics"
)

// ErrInsufficientData is returned by a strict pipeline when any sufficiency check fails.
var ErrInsufficientData = errors.New("dataset failed sufficiency checks")

// SufficiencyCheck represents one data sufficiency criterion.
type SufficiencyCheck struct {
	Name      string
	Threshold string
	Actual    string
	Pass      bool
}

// SufficiencyResult contains all checks.
type SufficiencyResult struct {
	Checks  []SufficiencyCheck
	AllPass bool
	Errors  []string // data integrity errors
}

// SufficiencyThresholds configures the checks.
type SufficiencyThresholds struct {
	MinRows          int
	MinClusters      int
	MinClusterSize   int
	MaxUncappedShare float64 // share of rows with zero total supply
}

// DefaultSufficiencyThresholds returns the thresholds used by NewSufficiencyChecker.
func DefaultSufficiencyThresholds() SufficiencyThresholds {
	return SufficiencyThresholds{
		MinRows:          10,
		MinClusters:      2,
		MinClusterSize:   2,
		MaxUncappedShare: 0.5,
	}
}

// SufficiencyChecker decides whether a clustered table supports meaningful profiles.
type SufficiencyChecker struct {
	thresholds SufficiencyThresholds
}

// NewSufficiencyChecker creates a checker with default thresholds.
func NewSufficiencyChecker() *SufficiencyChecker {
	return &SufficiencyChecker{thresholds: DefaultSufficiencyThresholds()}
}

// WithThresholds replaces the thresholds.
func (c *SufficiencyChecker) WithThresholds(t SufficiencyThresholds) *SufficiencyChecker {
	c.thresholds = t
	return c
}

// Check runs every check against coins.
func (c *SufficiencyChecker) Check(coins []*domain.Coin) *SufficiencyResult {
	result := &SufficiencyResult{
		Checks:  make([]SufficiencyCheck, 0, 5),
		AllPass: true,
		Errors:  []string{},
	}
	add := func(check SufficiencyCheck) {
		result.Checks = append(result.Checks, check)
		if !check.Pass {
			result.AllPass = false
		}
	}

	groups := metrics.GroupByCluster(coins)

	add(SufficiencyCheck{
		Name:      "Dataset rows",
		Threshold: fmt.Sprintf(">= %d", c.thresholds.MinRows),
		Actual:    fmt.Sprintf("%d", len(coins)),
		Pass:      len(coins) >= c.thresholds.MinRows,
	})

	add(SufficiencyCheck{
		Name:      "Clusters",
		Threshold: fmt.Sprintf(">= %d", c.thresholds.MinClusters),
		Actual:    fmt.Sprintf("%d", len(groups)),
		Pass:      len(groups) >= c.thresholds.MinClusters,
	})

	sizeCheck, small := c.checkClusterSizes(groups)
	add(sizeCheck)
	result.Errors = append(result.Errors, small...)

	dupCheck, dups := checkDuplicateNames(coins)
	add(dupCheck)
	result.Errors = append(result.Errors, dups...)

	add(c.checkUncappedSupply(coins))

	return result
}

func (c *SufficiencyChecker) checkClusterSizes(groups map[int][]*domain.Coin) (SufficiencyCheck, []string) {
	ids := make([]int, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var small []string
	smallest := 0
	for i, id := range ids {
		n := len(groups[id])
		if i == 0 || n < smallest {
			smallest = n
		}
		if n < c.thresholds.MinClusterSize {
			small = append(small, fmt.Sprintf("cluster %d has %d rows", id, n))
		}
	}

	return SufficiencyCheck{
		Name:      "Smallest cluster",
		Threshold: fmt.Sprintf(">= %d", c.thresholds.MinClusterSize),
		Actual:    fmt.Sprintf("%d", smallest),
		Pass:      len(small) == 0,
	}, small
}

func checkDuplicateNames(coins []*domain.Coin) (SufficiencyCheck, []string) {
	counts := make(map[string]int, len(coins))
	for _, c := range coins {
		counts[c.Name]++
	}

	var dups []string
	for name, n := range counts {
		if n > 1 {
			dups = append(dups, fmt.Sprintf("duplicate coin name: %s (%d rows)", name, n))
		}
	}
	sort.Strings(dups)

	return SufficiencyCheck{
		Name:      "Duplicate coin names",
		Threshold: "== 0",
		Actual:    fmt.Sprintf("%d", len(dups)),
		Pass:      len(dups) == 0,
	}, dups
}

func (c *SufficiencyChecker) checkUncappedSupply(coins []*domain.Coin) SufficiencyCheck {
	uncapped := 0
	for _, coin := range coins {
		if coin.TotalSupply == 0 {
			uncapped++
		}
	}
	share := 0.0
	if len(coins) > 0 {
		share = float64(uncapped) / float64(len(coins))
	}

	return SufficiencyCheck{
		Name:      "Uncapped supply share",
		Threshold: fmt.Sprintf("<= %.1f%%", c.thresholds.MaxUncappedShare*100),
		Actual:    fmt.Sprintf("%.1f%%", share*100),
		Pass:      share <= c.thresholds.MaxUncappedShare,
	}
}

// RenderSufficiencyMarkdown renders the check table and any integrity errors.
func RenderSufficiencyMarkdown(r *SufficiencyResult) string {
	var sb strings.Builder

	sb.WriteString("# Data Quality\n\n")
	sb.WriteString("| Check | Threshold | Actual | Pass |\n")
	sb.WriteString("|-------|-----------|--------|------|\n")
	for _, c := range r.Checks {
		pass := "FAIL"
		if c.Pass {
			pass = "PASS"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", c.Name, c.Threshold, c.Actual, pass)
	}

	if len(r.Errors) > 0 {
		sb.WriteString("\n## Integrity Errors\n\n")
		for _, e := range r.Errors {
			fmt.Fprintf(&sb, "- %s\n", e)
		}
	}

	status := "ALL CHECKS PASSED"
	if !r.AllPass {
		status = "CHECKS FAILED"
	}
	fmt.Fprintf(&sb, "\n**Status:** %s\n", status)
	return sb.String()
}
