package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyProduct(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"oh marker", "OH 주차번호판", CategoryOH},
		{"lower case", "oh-01 블랙", CategoryOH},
		{"ph marker", "PHONE 홀더", CategoryPH},
		{"sh marker", "SH-100", CategorySH},
		{"cable with switch", "USB 케이블 스위치형", CategoryCableSwitch},
		{"english cable switch", "LED CABLE SWITCH", CategoryCableSwitch},
		{"already labelled", "케이블s 1m", CategoryCableSwitch},
		{"plain cable", "충전 케이블 1m", CategoryCable},
		{"mount", "차량용 거치대", CategoryPhoneMount},
		{"plate", "자동차 번호판 가드", CategoryLicensePlate},
		{"hammer", "비상 탈출 망치", CategoryHammer},
		{"coating", "도막 측정기", CategoryCoatingGauge},
		{"thickness", "두께측정 장비", CategoryCoatingGauge},
		{"unclassified", "무선 충전기", "무선 충전기"},
		{"unclassified keeps spacing", "  무선 충전기 ", "  무선 충전기 "},
		{"empty", "", ""},
		{"blank", "   ", "   "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyProduct(tc.in))
		})
	}
}

func TestClassifyProductFirstMatchWins(t *testing.T) {
	assert.Equal(t, CategoryOH, ClassifyProduct("OH cable"))
	assert.Equal(t, CategoryOH, ClassifyProduct("OH PH SH"))
	assert.Equal(t, CategoryPH, ClassifyProduct("PH 케이블 스위치"))
	assert.Equal(t, CategorySH, ClassifyProduct("SH 거치대"))
	assert.Equal(t, CategoryCableSwitch, ClassifyProduct("케이블 스위치 거치대"))
}

func TestClassifyProductLabelsAreStable(t *testing.T) {
	for _, label := range CategoryLabels() {
		assert.Equal(t, label, ClassifyProduct(label), label)
	}
}

func TestClassifyValue(t *testing.T) {
	assert.Equal(t, "", ClassifyValue(nil))
	assert.Equal(t, "12345", ClassifyValue(12345))
	assert.Equal(t, CategoryPH, ClassifyValue("ph"))
}

func TestProductRankAndCategoryOrder(t *testing.T) {
	assert.Equal(t, 0, ProductRank(CategoryOH))
	assert.Equal(t, 1, ProductRank(CategoryPH))
	assert.Equal(t, 2, ProductRank(CategorySH))
	assert.Equal(t, 3, ProductRank(CategoryCable))
	assert.Equal(t, 3, ProductRank("무선 충전기"))

	assert.Less(t, CategoryOrder(CategorySH), CategoryOrder(CategoryCableSwitch))
	assert.Less(t, CategoryOrder(CategoryHammer), CategoryOrder(CategoryCoatingGauge))
	assert.Equal(t, len(CategoryLabels()), CategoryOrder("무선 충전기"))
}

func TestCleanPhone(t *testing.T) {
	assert.Equal(t, "01012345678", CleanPhone("010-1234-5678"))
	assert.Equal(t, "01012345678", CleanPhone(" 010 1234 5678 "))
	assert.Equal(t, "", CleanPhone(""))
	assert.Equal(t, "", CleanPhone("없음"))

	once := CleanPhone("+82 (10) 1234.5678")
	assert.Equal(t, once, CleanPhone(once))
}

func TestCleanPhoneValue(t *testing.T) {
	assert.Equal(t, "", CleanPhoneValue(nil))
	assert.Equal(t, "1012345678", CleanPhoneValue(float64(1012345678)))
	assert.Equal(t, "1012345678", CleanPhoneValue(1012345678))
	assert.Equal(t, "01012345678", CleanPhoneValue("010-1234-5678"))
}
