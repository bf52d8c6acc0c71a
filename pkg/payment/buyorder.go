package payment

import (
	"regexp"
	"strconv"
)

// maxOrderNumber guards against garbage parses; no real order number will
// ever approach it.
const maxOrderNumber = 1_000_000_000

var buyOrderPattern = regexp.MustCompile(`^O(\d+)`)

// ExtractOrderID recovers the order number embedded in a buy order code.
// Buy orders are minted as "O" followed by the order number ("O42" for
// order 42), so the parse only trusts codes of that shape with a sane
// positive value. Anything else returns false.
func ExtractOrderID(buyOrder string) (int64, bool) {
	match := buyOrderPattern.FindStringSubmatch(buyOrder)
	if match == nil {
		return 0, false
	}
	number, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil || number <= 0 || number > maxOrderNumber {
		return 0, false
	}
	return number, true
}
