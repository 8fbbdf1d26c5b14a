package royalty

import (
	"fmt"

	"github.com/untrading/libnfr-go/fixmath"
)

// ValidateFRInfo checks the FR parameter constraints: NumGenerations > 0,
// 0 < PercentOfProfit <= 1 and SuccessiveRatio >= 1.
func ValidateFRInfo(info FRInfo) error {
	if info.NumGenerations == 0 {
		return fmt.Errorf("%w: generations must be greater than zero", ErrInvalidParameters)
	}
	if info.PercentOfProfit.IsZero() || info.PercentOfProfit.Cmp(fixmath.One()) > 0 {
		return fmt.Errorf("%w: percent of profit %s outside (0, 1]", ErrInvalidParameters, info.PercentOfProfit)
	}
	if info.SuccessiveRatio.Cmp(fixmath.One()) < 0 {
		return fmt.Errorf("%w: successive ratio %s below 1", ErrInvalidParameters, info.SuccessiveRatio)
	}
	return nil
}
