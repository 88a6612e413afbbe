// ABOUTME: Currency and quantity formatting shared by CLI text renderers
// ABOUTME: Groups digits with go-humanize so large rupee totals stay readable

package format

import (
	"math"

	"github.com/dustin/go-humanize"
)

const (
	rupee  = "₹"
	dollar = "$"
)

// INR formats a local currency amount with grouped thousands and two decimals
func INR(amount float64) string {
	return money(rupee, amount)
}

// USD formats a USD amount with grouped thousands and two decimals
func USD(amount float64) string {
	return money(dollar, amount)
}

func money(symbol string, amount float64) string {
	if amount < 0 {
		return "-" + symbol + humanize.FormatFloat("#,###.##", -amount)
	}
	return symbol + humanize.FormatFloat("#,###.##", amount)
}

// Minutes formats a minute count, e.g. "3,500 min"
func Minutes(n int) string {
	return humanize.Comma(int64(n)) + " min"
}

// Tokens formats a token count rounded to a whole number
func Tokens(n float64) string {
	return humanize.Comma(int64(math.Round(n))) + " tokens"
}

// Count formats an integer with grouped thousands
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// Limit formats an optional limit; nil means no declared limit
func Limit(n *int) string {
	if n == nil {
		return "unlimited"
	}
	return humanize.Comma(int64(*n))
}

// PercentOf returns spent as a percentage of budget. A zero budget reports
// 0 when nothing is spent and 100 otherwise.
func PercentOf(spent, budget float64) float64 {
	if budget <= 0 {
		if spent <= 0 {
			return 0
		}
		return 100
	}
	return spent / budget * 100
}
