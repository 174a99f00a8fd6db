package pipeline

import (
	"testing"

	"go-order-pipeline/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestSortProductTotals(t *testing.T) {
	in := []model.ProductTotal{
		{Label: "무선충전기", Quantity: 1},
		{Label: CategoryHammer, Quantity: 1},
		{Label: CategoryPH, Quantity: 2},
		{Label: "가방", Quantity: 2},
		{Label: CategoryOH, Quantity: 3},
		{Label: CategoryCable, Quantity: 1},
	}
	got := SortProductTotals(in)

	labels := make([]string, len(got))
	for i, g := range got {
		labels[i] = g.Label
	}
	assert.Equal(t, []string{CategoryOH, CategoryPH, CategoryCable, CategoryHammer, "가방", "무선충전기"}, labels)
	assert.Equal(t, "무선충전기", in[0].Label, "input must not be reordered")
}

func TestAggregateProducts(t *testing.T) {
	lines := []model.OrderLine{
		line("a", "1", "x", "SH 블랙", 2),
		line("b", "2", "y", "OH 가드", 1),
		line("c", "3", "z", "SH 화이트", 1),
	}

	classified := AggregateProducts(lines, model.SummaryClassified)
	assert.Equal(t, []model.ProductTotal{{Label: CategoryOH, Quantity: 1}, {Label: CategorySH, Quantity: 3}}, classified)
	assert.Equal(t, 4, SumTotals(classified))

	raw := AggregateProducts(lines, model.SummaryRaw)
	assert.Equal(t, []model.ProductTotal{
		{Label: "OH 가드", Quantity: 1},
		{Label: "SH 블랙", Quantity: 2},
		{Label: "SH 화이트", Quantity: 1},
	}, raw)
}
