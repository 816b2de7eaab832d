package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricCard_Render(t *testing.T) {
	card := NewMetricCard("Líquido", "R$ 5.458,04").WithTone(1).WithDescription("a receber")
	out := card.Render()
	assert.Contains(t, out, "Líquido")
	assert.Contains(t, out, "R$ 5.458,04")
	assert.Contains(t, out, "a receber")

	compact := card.RenderCompact()
	assert.Contains(t, compact, "Líquido:")
	assert.NotContains(t, compact, "\n")
}

func TestMetricGrid(t *testing.T) {
	assert.Empty(t, MetricGrid(nil, 2))

	cards := []*MetricCard{
		NewMetricCard("A", "1"),
		NewMetricCard("B", "2"),
		NewMetricCard("C", "3"),
	}
	out := MetricGrid(cards, 2)
	for _, want := range []string{"A", "B", "C"} {
		assert.Contains(t, out, want)
	}
	// two rows of bordered cards
	single := strings.Count(cards[0].Render(), "\n") + 1
	assert.Equal(t, 2*single, strings.Count(out, "\n")+1)
}
