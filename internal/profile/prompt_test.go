package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePromptForInsights_Singleton(t *testing.T) {
	a := newTestAnalyzer(t, threeRowCoins())

	got, err := a.GeneratePromptForInsights(1)
	require.NoError(t, err)

	want := `You are a cryptocurrency market analyst AI assistant. Analyze the following cluster of cryptocurrencies and provide investment insights.

**CLUSTER INFORMATION:**
- Cluster ID: 1
- Cluster Name: Scarcity-Focused PoS Coins
- Number of Coins: 1 (33.3% of analyzed market)
- Risk Level: Medium (6.5/10)

**TECHNICAL CHARACTERISTICS:**
- Dominant Algorithm: Scrypt
- Dominant Proof Type: PoS
- Average Supply: 1,000,000
- Average Mined: 1,000
- Supply Volatility: Low

**KEY FEATURES:**
- Limited Supply
- Staking Mechanisms
- Energy Efficient
- Deflationary Pressure

**NOTABLE COINS:**
- AltCoin (Scrypt): 0.1% mined

**RISK FACTORS:**
- Limited cluster diversification
- Single algorithm dependency

**TASK:**
Please provide:
1. A 2-3 sentence summary of this cluster's market position
2. Key differentiators from other cryptocurrency clusters
3. Investment thesis (bullish or bearish) with reasoning
4. Specific risks investors should be aware of
5. Recommended investor profile (conservative, moderate, aggressive)

Format your response as clear, actionable insights for both novice and experienced investors.`

	assert.Equal(t, want, got)
}

func TestGeneratePromptForInsights_Deterministic(t *testing.T) {
	a := newTestAnalyzer(t, threeRowCoins())

	first, err := a.GeneratePromptForInsights(0)
	require.NoError(t, err)
	second, err := a.GeneratePromptForInsights(0)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "- Ethereum (Ethash): 10768422200.0% mined\n- Bitcoin (SHA-256): 85.4% mined")
}

func TestGeneratePromptForInsights_UnknownCluster(t *testing.T) {
	a := newTestAnalyzer(t, threeRowCoins())

	_, err := a.GeneratePromptForInsights(5)
	assert.Error(t, err)
}
