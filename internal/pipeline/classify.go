package pipeline

import (
	"fmt"
	"strings"
)

// Product category labels.
const (
	CategoryOH           = "OH"
	CategoryPH           = "PH"
	CategorySH           = "SH"
	CategoryCableSwitch  = "케이블s"
	CategoryCable        = "케이블(일반)"
	CategoryPhoneMount   = "휴대폰거치대"
	CategoryLicensePlate = "차량번호판"
	CategoryHammer       = "차량용망치"
	CategoryCoatingGauge = "도막측정기"
)

// categoryPriority orders labels in product summary tables. Labels not listed
// sort after these, alphabetically.
var categoryPriority = []string{
	CategoryOH,
	CategoryPH,
	CategorySH,
	CategoryCableSwitch,
	CategoryCable,
	CategoryPhoneMount,
	CategoryLicensePlate,
	CategoryHammer,
	CategoryCoatingGauge,
}

var (
	cableTerms   = []string{"케이블", "CABLE"}
	switchTerms  = []string{"스위치", "SWITCH"}
	mountTerms   = []string{"거치대", "MOUNT"}
	plateTerms   = []string{"번호판"}
	hammerTerms  = []string{"망치"}
	coatingTerms = []string{"도막", "두께측정"}
)

// already-classified cable-switch label, as it reads after upper-casing
var cableSwitchUpper = strings.ToUpper(CategoryCableSwitch)

type classRule struct {
	label string
	match func(upper string) bool
}

// First matching rule wins; the order of this table is the classification.
var classRules = []classRule{
	{CategoryOH, func(u string) bool { return strings.Contains(u, "OH") }},
	{CategoryPH, func(u string) bool { return strings.Contains(u, "PH") }},
	{CategorySH, func(u string) bool { return strings.Contains(u, "SH") }},
	{CategoryCableSwitch, func(u string) bool {
		return strings.Contains(u, cableSwitchUpper) || (containsAny(u, cableTerms) && containsAny(u, switchTerms))
	}},
	{CategoryCable, func(u string) bool { return containsAny(u, cableTerms) }},
	{CategoryPhoneMount, func(u string) bool { return containsAny(u, mountTerms) }},
	{CategoryLicensePlate, func(u string) bool { return containsAny(u, plateTerms) }},
	{CategoryHammer, func(u string) bool { return containsAny(u, hammerTerms) }},
	{CategoryCoatingGauge, func(u string) bool { return containsAny(u, coatingTerms) }},
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// ClassifyProduct maps a free-text product name to a category label. Names
// matching no rule come back unchanged.
func ClassifyProduct(name string) string {
	upper := strings.ToUpper(name)
	for _, r := range classRules {
		if r.match(upper) {
			return r.label
		}
	}
	return name
}

// ClassifyValue classifies a loosely typed cell. Missing values yield "".
func ClassifyValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return ClassifyProduct(val)
	default:
		return ClassifyProduct(fmt.Sprint(val))
	}
}

// ProductRank orders products inside a summary: OH, PH, SH, then the rest.
func ProductRank(label string) int {
	switch label {
	case CategoryOH:
		return 0
	case CategoryPH:
		return 1
	case CategorySH:
		return 2
	default:
		return 3
	}
}

// CategoryOrder is the position of label in aggregate tables.
func CategoryOrder(label string) int {
	for i, c := range categoryPriority {
		if c == label {
			return i
		}
	}
	return len(categoryPriority)
}

// CategoryLabels returns the known category labels in priority order.
func CategoryLabels() []string {
	out := make([]string, len(categoryPriority))
	copy(out, categoryPriority)
	return out
}
