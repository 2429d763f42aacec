package reporting

import (
	"fmt"
	"strings"

	"crypto-cluster-insights/internal/domain"
)

// RenderMarkdown renders report as Markdown string.
// The layout is stable; downstream tooling diffs it byte for byte.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Cryptocurrency Cluster Analysis Report")
	sb.WriteString(fmt.Sprintf("\n**Generated**: %s", r.GeneratedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("\n**Total Cryptocurrencies Analyzed**: %d", r.TotalCoins))
	sb.WriteString(fmt.Sprintf("\n**Number of Clusters**: %d\n", r.ClusterCount))

	// Executive Summary
	sb.WriteString("## Executive Summary\n")
	sb.WriteString(fmt.Sprintf("This report analyzes %d cryptocurrencies ", r.Summary.TotalCoins))
	sb.WriteString(fmt.Sprintf("grouped into %d distinct clusters using unsupervised machine learning.\n", r.Summary.TotalClusters))

	// Cluster Profiles
	sb.WriteString("## Cluster Profiles\n")
	for _, p := range r.Profiles {
		writeProfile(&sb, p)
	}

	// Market Overview
	sb.WriteString("## Market Overview\n")
	sb.WriteString("\n**Algorithm Distribution** (Top 5):")
	algos := r.Summary.AlgorithmDistribution
	if len(algos) > reportAlgorithmCount {
		algos = algos[:reportAlgorithmCount]
	}
	for _, e := range algos {
		sb.WriteString(fmt.Sprintf("\n- %s: %d coins", e.Key, e.Count))
	}

	sb.WriteString("\n\n**Proof Type Distribution**:")
	for _, e := range r.Summary.ProofDistribution {
		sb.WriteString(fmt.Sprintf("\n- %s: %d coins", e.Key, e.Count))
	}

	sb.WriteString("\n\n**Risk Distribution Across Clusters**:")
	for _, level := range domain.RiskLevels {
		sb.WriteString(fmt.Sprintf("\n- %s Risk: %d clusters", level, r.Summary.RiskDistribution.Count(level)))
	}

	// Disclaimer
	sb.WriteString("\n\n---\n")
	sb.WriteString("## Disclaimer\n")
	sb.WriteString("This analysis is for informational purposes only and should not be considered ")
	sb.WriteString("financial advice. Cryptocurrency investments carry significant risk. Always conduct ")
	sb.WriteString("your own research and consult with financial advisors before making investment decisions.\n")

	return sb.String()
}

func writeProfile(sb *strings.Builder, p *domain.ClusterProfile) {
	sb.WriteString(fmt.Sprintf("### Cluster %d: %s\n", p.ClusterID, p.Name))
	sb.WriteString(fmt.Sprintf("**Risk Level**: %s %s ", p.Risk.Badge, p.Risk.Level))
	sb.WriteString(fmt.Sprintf("(%.1f/10)\n", p.Risk.Score))
	sb.WriteString(fmt.Sprintf("**Size**: %d coins (%s of market)\n", p.Size, p.Percentage))
	sb.WriteString(fmt.Sprintf("\n**Description**: %s\n", p.Description))

	sb.WriteString("\n**Key Features**:")
	for _, f := range p.KeyFeatures {
		sb.WriteString("\n- " + f)
	}

	sb.WriteString("\n\n**Statistics**:")
	sb.WriteString("\n- Dominant Algorithm: " + p.DominantAlgorithm)
	sb.WriteString("\n- Dominant Proof: " + p.DominantProofType)
	sb.WriteString("\n- Average Supply: " + p.Statistics.AvgSupply)
	sb.WriteString("\n- Average Mined: " + p.Statistics.AvgMined)

	sb.WriteString("\n\n**Investment Insights**:")
	sb.WriteString("\n- **Recommended Allocation**: " + p.Insights.Allocation)
	sb.WriteString("\n- **Strategy**: " + p.Insights.Strategy)

	if len(p.NotableCoins) > 0 {
		sb.WriteString("\n\n**Notable Coins**:")
		notable := p.NotableCoins
		if len(notable) > reportNotableCount {
			notable = notable[:reportNotableCount]
		}
		for _, c := range notable {
			sb.WriteString(fmt.Sprintf("\n- **%s** (%s): %s mined", c.Name, c.Algorithm, c.CompletionPct))
		}
	}

	if len(p.Insights.Warnings) > 0 {
		sb.WriteString("\n\n**Warnings**:")
		for _, w := range p.Insights.Warnings {
			sb.WriteString("\n- " + w)
		}
	}

	sb.WriteString("\n\n---\n")
}

// RenderComparisonMarkdown renders comparison rows as a Markdown table.
func RenderComparisonMarkdown(rows []domain.ComparisonRow) string {
	var sb strings.Builder

	sb.WriteString("| Cluster ID | Name | Size | Risk Level | Risk Score | Algorithm | Proof | Allocation |\n")
	sb.WriteString("|------------|------|------|------------|------------|-----------|-------|------------|\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("| %d | %s | %d | %s | %.1f | %s | %s | %s |\n",
			r.ClusterID,
			escapeCell(r.Name),
			r.Size,
			r.RiskLevel,
			r.RiskScore,
			escapeCell(r.DominantAlgorithm),
			escapeCell(r.DominantProofType),
			escapeCell(r.Allocation),
		))
	}

	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
