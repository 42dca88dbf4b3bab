package costing

import (
	"strconv"
	"strings"

	"github.com/shrimpcfr/backend/internal/domain/shared"
)

// MaxSizeCount is the largest size count a bracket, product or range may use
const MaxSizeCount = 10000

// ParseSizeRange parses a "low-high" size-count range such as "14-20"
func ParseSizeRange(s string) (low, high int, err error) {
	lowStr, highStr, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return 0, 0, shared.NewDomainError("INVALID_SIZE_RANGE", "Size range must look like 14-20")
	}

	low, err = strconv.Atoi(strings.TrimSpace(lowStr))
	if err != nil {
		return 0, 0, shared.NewDomainError("INVALID_SIZE_RANGE", "Size range low bound is not a number")
	}
	high, err = strconv.Atoi(strings.TrimSpace(highStr))
	if err != nil {
		return 0, 0, shared.NewDomainError("INVALID_SIZE_RANGE", "Size range high bound is not a number")
	}
	if low < 1 || high < low {
		return 0, 0, shared.NewDomainError("INVALID_SIZE_RANGE", "Size range bounds are out of order")
	}
	if high > MaxSizeCount {
		return 0, 0, errSizeCountTooLarge
	}
	return low, high, nil
}
