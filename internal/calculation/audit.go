package calculation

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/rescisao/internal/domain"
)

const missingJustification = "Não informada"

// auditLog accumulates the entries of one calculation. It is never shared between calls.
type auditLog struct {
	now     func() time.Time
	entries []domain.LogEntry
}

func newAuditLog(now func() time.Time) *auditLog {
	return &auditLog{now: now}
}

func (a *auditLog) add(kind domain.LogKind, format string, args ...any) {
	a.entries = append(a.entries, domain.LogEntry{
		Timestamp: a.now(),
		Kind:      kind,
		Message:   fmt.Sprintf(format, args...),
	})
}

func (a *auditLog) info(format string, args ...any)   { a.add(domain.LogInfo, format, args...) }
func (a *auditLog) warn(format string, args ...any)   { a.add(domain.LogWarning, format, args...) }
func (a *auditLog) manual(format string, args ...any) { a.add(domain.LogManual, format, args...) }

// adjustableLabels renders the before/after values of one adjustable quantity
type adjustableLabels struct {
	name   string
	format func(int) string
}

var (
	vacationFractionLabels   = adjustableLabels{"Avos de férias", func(v int) string { return fmt.Sprintf("%d/12", v) }}
	thirteenthFractionLabels = adjustableLabels{"Avos de 13º", func(v int) string { return fmt.Sprintf("%d/12", v) }}
	noticeDaysLabels         = adjustableLabels{"Dias de aviso", func(v int) string { return fmt.Sprintf("%d", v) }}
)

// resolveAdjustable returns the value to use for one adjustable quantity. The engine's
// own derivation is the reference: a caller-supplied Calculated value that disagrees is
// reported but ignored, and an Edited value that differs from the reference replaces it
// with exactly one MANUAL entry.
func (a *auditLog) resolveAdjustable(adj domain.Adjustable, derived int, labels adjustableLabels) int {
	if adj.Calculated != nil && *adj.Calculated != derived {
		a.warn("%s informado como calculado (%s) difere do calculado pelo sistema (%s); usando %s",
			labels.name, labels.format(*adj.Calculated), labels.format(derived), labels.format(derived))
	}
	if adj.Edited == nil || *adj.Edited == derived {
		return derived
	}
	justification := adj.Justification
	if justification == "" {
		justification = missingJustification
	}
	a.manual("%s alterado de %s para %s. Justificativa: %s",
		labels.name, labels.format(derived), labels.format(*adj.Edited), justification)
	return *adj.Edited
}
