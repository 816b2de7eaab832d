package calculation

import (
	"testing"
	"time"

	"github.com/rgehrsitz/rescisao/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAdjustable(t *testing.T) {
	tests := []struct {
		name     string
		adj      domain.Adjustable
		derived  int
		expected int
		kinds    []domain.LogKind
		contains string
	}{
		{name: "no edit", adj: domain.Adjustable{}, derived: 6, expected: 6},
		{name: "edit equal to derived", adj: domain.Adjustable{Edited: ip(6)}, derived: 6, expected: 6},
		{
			name:     "edit with justification",
			adj:      domain.Adjustable{Edited: ip(9), Justification: "Acordo coletivo"},
			derived:  6,
			expected: 9,
			kinds:    []domain.LogKind{domain.LogManual},
			contains: "Avos de férias alterado de 6/12 para 9/12. Justificativa: Acordo coletivo",
		},
		{
			name:     "edit without justification",
			adj:      domain.Adjustable{Edited: ip(3)},
			derived:  6,
			expected: 3,
			kinds:    []domain.LogKind{domain.LogManual},
			contains: "Justificativa: Não informada",
		},
		{
			name:     "stale calculated value",
			adj:      domain.Adjustable{Calculated: ip(5)},
			derived:  6,
			expected: 6,
			kinds:    []domain.LogKind{domain.LogWarning},
			contains: "difere do calculado pelo sistema",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := newAuditLog(func() time.Time { return fixedNow })
			got := log.resolveAdjustable(tt.adj, tt.derived, vacationFractionLabels)
			assert.Equal(t, tt.expected, got)
			require.Len(t, log.entries, len(tt.kinds))
			for i, k := range tt.kinds {
				assert.Equal(t, k, log.entries[i].Kind)
				assert.Equal(t, fixedNow, log.entries[i].Timestamp)
			}
			if tt.contains != "" {
				assert.Contains(t, log.entries[len(log.entries)-1].Message, tt.contains)
			}
		})
	}
}

func TestResolveAdjustable_NoticeDaysFormat(t *testing.T) {
	log := newAuditLog(func() time.Time { return fixedNow })
	got := log.resolveAdjustable(domain.Adjustable{Edited: ip(45), Justification: "CCT"}, 33, noticeDaysLabels)
	assert.Equal(t, 45, got)
	require.Len(t, log.entries, 1)
	assert.Equal(t, "Dias de aviso alterado de 33 para 45. Justificativa: CCT", log.entries[0].Message)
}
