package calculation

import (
	"github.com/rgehrsitz/rescisao/internal/domain"
	"github.com/shopspring/decimal"
)

// totals is the aggregator's output, merged into the result by the engine
type totals struct {
	earnings    decimal.Decimal
	deductions  decimal.Decimal
	fgtsPenalty decimal.Decimal
	inss        domain.TaxTotals
	irrf        domain.TaxTotals
	bases       domain.TaxBases
	net         decimal.Decimal
}

// groupBase sums the earning lines of one group that carry the selected incidence
func groupBase(lines []domain.LedgerLine, group domain.Group, subject func(domain.LedgerLine) bool) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		if l.Kind == domain.Earning && l.Group == group && subject(l) {
			sum = sum.Add(l.Value)
		}
	}
	return sum
}

func subjectToINSS(l domain.LedgerLine) bool { return l.INSS }
func subjectToIRRF(l domain.LedgerLine) bool { return l.IRRF }

// aggregate sums the ledger and runs each tax once per group. The monthly and
// thirteenth bases are never combined before a tax is applied.
func (e *Engine) aggregate(lines []domain.LedgerLine, dependents int, log *auditLog) totals {
	var t totals
	for _, l := range lines {
		switch {
		case l.Code == CodeFGTSPenalty:
			t.fgtsPenalty = t.fgtsPenalty.Add(l.Value)
		case l.Kind == domain.Earning:
			t.earnings = t.earnings.Add(l.Value)
		default:
			t.deductions = t.deductions.Add(l.Value)
		}
	}

	t.bases = domain.TaxBases{
		INSSMonthly:    groupBase(lines, domain.GroupMonthly, subjectToINSS),
		INSSThirteenth: groupBase(lines, domain.GroupThirteenth, subjectToINSS),
		IRRFMonthly:    groupBase(lines, domain.GroupMonthly, subjectToIRRF),
		IRRFThirteenth: groupBase(lines, domain.GroupThirteenth, subjectToIRRF),
	}

	t.inss.Monthly = e.inss.Calculate(t.bases.INSSMonthly)
	t.inss.Thirteenth = e.inss.Calculate(t.bases.INSSThirteenth)
	t.inss.Total = t.inss.Monthly.Add(t.inss.Thirteenth)
	log.info("Base INSS Mensal: R$ %s → INSS: R$ %s", money(t.bases.INSSMonthly), money(t.inss.Monthly))
	log.info("Base INSS 13º (base única): R$ %s → INSS: R$ %s", money(t.bases.INSSThirteenth), money(t.inss.Thirteenth))

	t.irrf.Monthly = e.irrf.Calculate(t.bases.IRRFMonthly, dependents, t.inss.Monthly)
	t.irrf.Thirteenth = e.irrf.Calculate(t.bases.IRRFThirteenth, dependents, t.inss.Thirteenth)
	t.irrf.Total = t.irrf.Monthly.Add(t.irrf.Thirteenth)
	log.info("Base IRRF Mensal: R$ %s → IRRF: R$ %s", money(t.bases.IRRFMonthly), money(t.irrf.Monthly))
	log.info("Base IRRF 13º (base única): R$ %s → IRRF: R$ %s", money(t.bases.IRRFThirteenth), money(t.irrf.Thirteenth))

	t.net = t.earnings.Add(t.fgtsPenalty).
		Sub(t.deductions).
		Sub(t.inss.Total).
		Sub(t.irrf.Total)
	return t
}
