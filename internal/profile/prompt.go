package profile

import (
	"fmt"
	"strings"

	"crypto-cluster-insights/internal/domain"
)

const promptNotableCount = 5

const promptTask = `**TASK:**
Please provide:
1. A 2-3 sentence summary of this cluster's market position
2. Key differentiators from other cryptocurrency clusters
3. Investment thesis (bullish or bearish) with reasoning
4. Specific risks investors should be aware of
5. Recommended investor profile (conservative, moderate, aggressive)

Format your response as clear, actionable insights for both novice and experienced investors.`

// GeneratePromptForInsights builds the analyst prompt for one cluster.
// The text is deterministic for a given dataset; nothing is sent anywhere.
func (a *Analyzer) GeneratePromptForInsights(clusterID int) (string, error) {
	p, err := a.GenerateClusterProfile(clusterID)
	if err != nil {
		return "", err
	}
	return RenderPrompt(p), nil
}

// RenderPrompt renders the prompt for an already generated profile.
func RenderPrompt(p *domain.ClusterProfile) string {
	var sb strings.Builder

	sb.WriteString("You are a cryptocurrency market analyst AI assistant. ")
	sb.WriteString("Analyze the following cluster of cryptocurrencies and provide investment insights.\n\n")

	sb.WriteString("**CLUSTER INFORMATION:**\n")
	sb.WriteString(fmt.Sprintf("- Cluster ID: %d\n", p.ClusterID))
	sb.WriteString(fmt.Sprintf("- Cluster Name: %s\n", p.Name))
	sb.WriteString(fmt.Sprintf("- Number of Coins: %d (%s of analyzed market)\n", p.Size, p.Percentage))
	sb.WriteString(fmt.Sprintf("- Risk Level: %s (%.1f/10)\n\n", p.Risk.Level, p.Risk.Score))

	sb.WriteString("**TECHNICAL CHARACTERISTICS:**\n")
	sb.WriteString(fmt.Sprintf("- Dominant Algorithm: %s\n", p.DominantAlgorithm))
	sb.WriteString(fmt.Sprintf("- Dominant Proof Type: %s\n", p.DominantProofType))
	sb.WriteString(fmt.Sprintf("- Average Supply: %s\n", p.Statistics.AvgSupply))
	sb.WriteString(fmt.Sprintf("- Average Mined: %s\n", p.Statistics.AvgMined))
	sb.WriteString(fmt.Sprintf("- Supply Volatility: %s\n\n", p.Statistics.SupplyVolatility))

	sb.WriteString("**KEY FEATURES:**\n")
	sb.WriteString(bulletList(p.KeyFeatures))
	sb.WriteString("\n\n")

	notable := p.NotableCoins
	if len(notable) > promptNotableCount {
		notable = notable[:promptNotableCount]
	}
	lines := make([]string, len(notable))
	for i, c := range notable {
		lines[i] = fmt.Sprintf("%s (%s): %s mined", c.Name, c.Algorithm, c.CompletionPct)
	}
	sb.WriteString("**NOTABLE COINS:**\n")
	sb.WriteString(bulletList(lines))
	sb.WriteString("\n\n")

	sb.WriteString("**RISK FACTORS:**\n")
	sb.WriteString(bulletList(p.Risk.Factors))
	sb.WriteString("\n\n")

	sb.WriteString(promptTask)
	return sb.String()
}

// bulletList joins items as "- item" lines without a trailing newline.
func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}
