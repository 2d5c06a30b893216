// Package policy содержит правила валидации сумм баллов.
package policy

import (
	"errors"
	"fmt"
)

const (
	// MinPoint — минимально допустимая сумма баллов.
	MinPoint int64 = 0
	// MaxPoint — максимально допустимая сумма баллов.
	MaxPoint int64 = 10000
)

// ErrPointOutOfRange возвращается, если сумма выходит за пределы [MinPoint, MaxPoint].
var ErrPointOutOfRange = errors.New("point amount out of range")

// ValidateAmount проверяет, что запрошенная сумма находится в допустимых пределах.
func ValidateAmount(amount int64) error {
	if amount < MinPoint || amount > MaxPoint {
		return fmt.Errorf("%w: %d", ErrPointOutOfRange, amount)
	}
	return nil
}

// Rules задаёт настраиваемые правила начисления баллов.
type Rules struct {
	// CapTotal включает проверку итогового баланса после начисления:
	// сумма before+amount не должна превышать MaxPoint.
	CapTotal bool
}

// ValidateCharge проверяет сумму начисления. Сама сумма всегда проверяется
// на допустимые пределы; итог после слияния с текущим балансом — только
// при включённом CapTotal.
func (r Rules) ValidateCharge(before, amount int64) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if r.CapTotal && before+amount > MaxPoint {
		return fmt.Errorf("%w: total %d exceeds %d", ErrPointOutOfRange, before+amount, MaxPoint)
	}
	return nil
}
