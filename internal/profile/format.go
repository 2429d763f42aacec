package profile

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/dustin/go-humanize"
)

// formatWhole renders v with thousands separators and no decimals, e.g. 21,000,000.
// Rounds half to even and goes through big.Int so supplies beyond int64 keep their digits.
func formatWhole(v float64) string {
	s := strconv.FormatFloat(v, 'f', 0, 64)
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return s // NaN, Inf
	}
	return humanize.BigComma(n)
}

// formatPct renders a ratio as a one-decimal percentage, e.g. 0.6667 -> "66.7%".
func formatPct(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}
