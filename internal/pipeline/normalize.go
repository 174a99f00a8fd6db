package pipeline

import (
	"fmt"
	"strconv"

	"go-order-pipeline/pkg/utils"
)

// CleanPhone keeps only the digits of a phone number. Blank input yields "".
func CleanPhone(phone string) string {
	return utils.DigitsOnly(phone)
}

// CleanPhoneValue is CleanPhone for loosely typed cell values. Numeric cells
// are rendered without a fractional part first so 1012345678.0 does not gain
// a trailing zero.
func CleanPhoneValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return CleanPhone(val)
	case float64:
		return CleanPhone(strconv.FormatFloat(val, 'f', -1, 64))
	case float32:
		return CleanPhone(strconv.FormatFloat(float64(val), 'f', -1, 32))
	default:
		return CleanPhone(fmt.Sprint(val))
	}
}
