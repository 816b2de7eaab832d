package calculation

import (
	"fmt"

	"github.com/rgehrsitz/rescisao/internal/domain"
	"github.com/rgehrsitz/rescisao/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Line codes ("rubricas")
const (
	CodeSeniority           = "ATS"
	CodeNightShift          = "ADICIONAL_NOTURNO"
	CodeHazard              = "PERICULOSIDADE"
	CodeUnhealthy           = "INSALUBRIDADE"
	CodeCashier             = "QUEBRA_CAIXA"
	CodeMealVoucher         = "VALE_REFEICAO"
	CodeCommission          = "COMISSAO"
	CodeBonus               = "GRATIFICACAO"
	CodeOvertime            = "HORA_EXTRA"
	CodeIntraShift          = "INTRAJORNADA"
	CodeInterShift          = "INTERJORNADA"
	CodeDSRVariables        = "DSR_VARIAVEIS"
	CodeAbsences            = "DESCONTO_FALTAS"
	CodeAbsenceDSR          = "DESCONTO_DSR_FALTAS"
	CodeSalaryBalance       = "SALDO_SALARIO"
	CodeExpiredVacation     = "FERIAS_VENCIDAS"
	CodeVacation            = "FERIAS_PROP"
	CodeVacationProjection  = "FERIAS_PROJECAO_AVISO"
	CodeVacationThird       = "TERCO_FERIAS"
	CodeThirteenth          = "DECIMO_TERCEIRO"
	CodeThirteenthProjected = "DECIMO_TERCEIRO_PROJECAO_AVISO"
	CodeNotice              = "AVISO_PREVIO_INDENIZADO"
	CodeNoticePenalty       = "DESCONTO_AVISO_NAO_CUMPRIDO"
	CodeFixedTermIndemnity  = "INDENIZACAO_ART_479"
	CodeFGTSPenalty         = "MULTA_FGTS"
)

// DefaultMonthlyHours is the divisor of the derived hourly rate when none is given
const DefaultMonthlyHours = 220

var (
	thirty        = decimal.NewFromInt(30)
	twelve        = decimal.NewFromInt(12)
	three         = decimal.NewFromInt(3)
	hundred       = decimal.NewFromInt(100)
	half          = decimal.NewFromFloat(0.5)
	overtime50    = decimal.NewFromFloat(1.5)
	overtime100   = decimal.NewFromInt(2)
	nightHourMins = decimal.NewFromFloat(52.5)
	sixty         = decimal.NewFromInt(60)
)

// HourlyBase is the composite base behind overtime-like pay
type HourlyBase struct {
	Salary     decimal.Decimal
	Seniority  decimal.Decimal
	Commission decimal.Decimal
	Unhealthy  decimal.Decimal
	Bonus      decimal.Decimal
	Hazard     decimal.Decimal
	Divisor    int
}

// NewHourlyBase derives the hourly-rate components from the salary and add-ons.
// A nil add-on block yields the salary alone over the default divisor.
func NewHourlyBase(salary decimal.Decimal, a *domain.Adicionais) HourlyBase {
	hb := HourlyBase{Salary: salary, Divisor: DefaultMonthlyHours}
	if a == nil {
		return hb
	}
	if a.Seniority != nil {
		hb.Seniority = salary.Mul(a.Seniority.Percent).Mul(decimal.NewFromInt(int64(a.Seniority.Years)))
	}
	if a.Commission != nil {
		hb.Commission = *a.Commission
	}
	if a.Unhealthy != nil {
		if pct, ok := a.Unhealthy.Grade.Percent(); ok {
			hb.Unhealthy = a.Unhealthy.Base.Mul(pct)
		}
	}
	if a.Bonus != nil {
		hb.Bonus = *a.Bonus
	}
	if a.HazardPercent != nil {
		hb.Hazard = salary.Mul(*a.HazardPercent)
	}
	if a.Overtime != nil && a.Overtime.MonthlyHours > 0 {
		hb.Divisor = a.Overtime.MonthlyHours
	}
	return hb
}

// Total is the sum of all components
func (hb HourlyBase) Total() decimal.Decimal {
	return hb.Salary.Add(hb.Seniority).Add(hb.Commission).Add(hb.Unhealthy).Add(hb.Bonus).Add(hb.Hazard)
}

// Rate is Total divided by the monthly-hours divisor, unrounded
func (hb HourlyBase) Rate() decimal.Decimal {
	return hb.Total().Div(decimal.NewFromInt(int64(hb.Divisor)))
}

// NightShiftValue prices night hours with the reduced 52m30s hour
func NightShiftValue(rate, hours, percent decimal.Decimal) decimal.Decimal {
	equivalent := hours.Mul(sixty).Div(nightHourMins)
	return rate.Mul(percent).Mul(equivalent)
}

// verbaBuilder emits the ledger lines of one calculation in order. It owns the running
// vacation and thirteenth bases and never outlives the call that created it.
type verbaBuilder struct {
	in  domain.TerminationInput
	cat domain.Category
	ref decimal.Decimal
	log *auditLog

	vacationFraction   int
	thirteenthFraction int
	noticeDays         int

	lines          []domain.LedgerLine
	vacationBase   decimal.Decimal
	thirteenthBase decimal.Decimal
	overtime       *domain.OvertimeBase
	dsr            *domain.DSRSummary
}

func (b *verbaBuilder) push(line domain.LedgerLine) domain.LedgerLine {
	line.Value = roundCents(line.Value)
	b.lines = append(b.lines, line)
	return line
}

// monthly is an earning subject to all three incidences in the monthly group
func (b *verbaBuilder) monthly(code, desc string, value decimal.Decimal) domain.LedgerLine {
	return b.push(domain.LedgerLine{Code: code, Description: desc, Value: value, Kind: domain.Earning,
		INSS: true, IRRF: true, FGTS: true, Group: domain.GroupMonthly})
}

// exempt is an earning outside every tax base
func (b *verbaBuilder) exempt(code, desc string, value decimal.Decimal) domain.LedgerLine {
	return b.push(domain.LedgerLine{Code: code, Description: desc, Value: value, Kind: domain.Earning,
		Group: domain.GroupNone})
}

func (b *verbaBuilder) thirteenth(code, desc string, value decimal.Decimal) domain.LedgerLine {
	line := b.push(domain.LedgerLine{Code: code, Description: desc, Value: value, Kind: domain.Earning,
		INSS: true, IRRF: true, FGTS: true, Group: domain.GroupThirteenth})
	b.thirteenthBase = b.thirteenthBase.Add(line.Value)
	return line
}

func (b *verbaBuilder) vacation(code, desc string, value decimal.Decimal) domain.LedgerLine {
	line := b.exempt(code, desc, value)
	b.vacationBase = b.vacationBase.Add(line.Value)
	return line
}

func (b *verbaBuilder) deduction(code, desc string, value decimal.Decimal) domain.LedgerLine {
	return b.push(domain.LedgerLine{Code: code, Description: desc, Value: value, Kind: domain.Deduction,
		Group: domain.GroupNone})
}

func (b *verbaBuilder) dailyRate() decimal.Decimal {
	return b.ref.Div(thirty)
}

func (b *verbaBuilder) monthlyFraction() decimal.Decimal {
	return b.ref.Div(twelve)
}

func (b *verbaBuilder) projectsNotice() bool {
	return b.cat.Notice && b.in.NoticeType == domain.NoticeIndemnified
}

func (b *verbaBuilder) build() {
	b.addAdicionais()
	b.addAbsences()
	b.addSalaryBalance()
	b.addVacation()
	b.addThirteenth()
	b.addNotice()
	b.addNoticePenalty()
	b.addFixedTermIndemnity()
	b.addFGTSPenalty()
}

func (b *verbaBuilder) addAdicionais() {
	a := b.in.Adicionais
	if a == nil {
		return
	}
	hb := NewHourlyBase(b.in.Salary, a)
	rate := hb.Rate()

	nightActive := a.NightShift != nil && a.NightShift.Hours.IsPositive()
	overtimeActive := a.Overtime != nil && (a.Overtime.Hours50.IsPositive() || a.Overtime.Hours100.IsPositive())
	intraActive := a.IntraShift != nil && a.IntraShift.Hours.IsPositive()
	interActive := a.InterShift != nil && a.InterShift.Hours.IsPositive()

	if nightActive || overtimeActive || intraActive || interActive {
		b.log.info("Base Hora Extra: R$ %s (Sal. Base: %s + ATS: %s + Comissão: %s + Insalub.: %s + Gratif.: %s + Pericul.: %s)",
			money(hb.Total()), money(hb.Salary), money(hb.Seniority), money(hb.Commission),
			money(hb.Unhealthy), money(hb.Bonus), money(hb.Hazard))
		b.log.info("Valor Hora: R$ %s ÷ %dh = R$ %s", money(hb.Total()), hb.Divisor, money(rate))
	}

	variables := decimal.Zero

	if hb.Seniority.IsPositive() {
		b.monthly(CodeSeniority, fmt.Sprintf("ATS (%d anos x %s%%)", a.Seniority.Years, percent(a.Seniority.Percent)), hb.Seniority)
	}

	if nightActive {
		value := NightShiftValue(rate, a.NightShift.Hours, a.NightShift.Percent)
		line := b.monthly(CodeNightShift,
			fmt.Sprintf("Adicional Noturno (%sh × %s%%)", a.NightShift.Hours, percent(a.NightShift.Percent)), value)
		variables = variables.Add(line.Value)
		b.log.info("Adicional Noturno: %sh × (60/52,5) × R$ %s × %s%% = R$ %s",
			a.NightShift.Hours, money(rate), percent(a.NightShift.Percent), money(line.Value))
	}

	if hb.Hazard.IsPositive() {
		b.monthly(CodeHazard, fmt.Sprintf("Periculosidade (%s%%)", percent(*a.HazardPercent)), hb.Hazard)
	}

	if hb.Unhealthy.IsPositive() {
		pct, _ := a.Unhealthy.Grade.Percent()
		b.monthly(CodeUnhealthy, fmt.Sprintf("Insalubridade (%s%%)", percent(pct)), hb.Unhealthy)
	}

	if a.CashierPercent != nil && a.CashierPercent.IsPositive() {
		b.monthly(CodeCashier, fmt.Sprintf("Quebra de Caixa (%s%%)", percent(*a.CashierPercent)),
			b.in.Salary.Mul(*a.CashierPercent))
	}

	if a.MealVoucher != nil && a.MealVoucher.DayRate.IsPositive() && a.MealVoucher.Days > 0 {
		b.exempt(CodeMealVoucher, fmt.Sprintf("Vale Refeição (%d dias)", a.MealVoucher.Days),
			a.MealVoucher.DayRate.Mul(decimal.NewFromInt(int64(a.MealVoucher.Days))))
	}

	if hb.Commission.IsPositive() {
		line := b.monthly(CodeCommission, "Comissões", hb.Commission)
		variables = variables.Add(line.Value)
	}

	if hb.Bonus.IsPositive() {
		b.monthly(CodeBonus, "Gratificações", hb.Bonus)
	}

	if overtimeActive || intraActive || interActive {
		b.overtime = &domain.OvertimeBase{
			Salary:      roundCents(hb.Salary),
			Seniority:   roundCents(hb.Seniority),
			Commission:  roundCents(hb.Commission),
			Unhealthy:   roundCents(hb.Unhealthy),
			Bonus:       roundCents(hb.Bonus),
			Hazard:      roundCents(hb.Hazard),
			Total:       roundCents(hb.Total()),
			Divisor:     hb.Divisor,
			HourlyRate:  roundCents(rate),
			Overtime50:  domain.OvertimeTier{Factor: overtime50},
			Overtime100: domain.OvertimeTier{Factor: overtime100},
		}
	}

	if overtimeActive {
		ot := b.overtime
		ot.Overtime50 = b.overtimeTier(rate, a.Overtime.Hours50, overtime50, "HE 50%", "1,5")
		ot.Overtime100 = b.overtimeTier(rate, a.Overtime.Hours100, overtime100, "HE 100%", "2,0")
		total := ot.Overtime50.Value.Add(ot.Overtime100.Value)
		ot.TotalOvertime = ot.TotalOvertime.Add(total)
		line := b.monthly(CodeOvertime, overtimeDescription(a.Overtime), total)
		variables = variables.Add(line.Value)
	}

	if intraActive {
		tier := b.restViolation(CodeIntraShift, "Intrajornada", rate, *a.IntraShift)
		b.overtime.IntraShift = &tier
		b.overtime.TotalOvertime = b.overtime.TotalOvertime.Add(tier.Value)
		variables = variables.Add(tier.Value)
	}

	if interActive {
		tier := b.restViolation(CodeInterShift, "Interjornada", rate, *a.InterShift)
		b.overtime.InterShift = &tier
		b.overtime.TotalOvertime = b.overtime.TotalOvertime.Add(tier.Value)
		variables = variables.Add(tier.Value)
	}

	if a.DSR != nil {
		b.addDSR(*a.DSR, variables)
	}
}

func (b *verbaBuilder) overtimeTier(rate, hours, factor decimal.Decimal, label, factorLabel string) domain.OvertimeTier {
	tier := domain.OvertimeTier{Hours: hours, Factor: factor}
	if !hours.IsPositive() {
		return tier
	}
	tier.Value = roundCents(rate.Mul(factor).Mul(hours))
	b.log.info("%s: R$ %s × %s × %sh = R$ %s", label, money(rate), factorLabel, hours, money(tier.Value))
	return tier
}

func overtimeDescription(ot *domain.Overtime) string {
	var parts []string
	if ot.Hours50.IsPositive() {
		parts = append(parts, fmt.Sprintf("%sh 50%%", ot.Hours50))
	}
	if ot.Hours100.IsPositive() {
		parts = append(parts, fmt.Sprintf("%sh 100%%", ot.Hours100))
	}
	desc := "Hora Extra"
	switch len(parts) {
	case 1:
		desc += " (" + parts[0] + ")"
	case 2:
		desc += " (" + parts[0] + " + " + parts[1] + ")"
	}
	return desc
}

func (b *verbaBuilder) restViolation(code, label string, rate decimal.Decimal, rv domain.RestViolation) domain.OvertimeTier {
	factor := rv.Factor.StringFixed(1)
	line := b.monthly(code, fmt.Sprintf("%s (%sh × %s)", label, rv.Hours, factor), rate.Mul(rv.Factor).Mul(rv.Hours))
	b.log.info("%s: R$ %s × %s × %sh = R$ %s", label, money(rate), factor, rv.Hours, money(line.Value))
	return domain.OvertimeTier{Hours: rv.Hours, Factor: rv.Factor, Value: line.Value}
}

// addDSR reflects commission, overtime, rest violations and night premium into weekly
// paid rest. A non-positive business-day count yields a zero line and a warning.
func (b *verbaBuilder) addDSR(cfg domain.DSRConfig, variables decimal.Decimal) {
	b.dsr = &domain.DSRSummary{BusinessDays: cfg.BusinessDays, NonBusinessDays: cfg.NonBusinessDays, Value: decimal.Zero}
	desc := fmt.Sprintf("DSR sobre Variáveis (%d úteis / %d não úteis)", cfg.BusinessDays, cfg.NonBusinessDays)
	if cfg.BusinessDays <= 0 {
		b.log.warn("DSR sobre variáveis não calculado: dias úteis deve ser maior que zero (informado %d)", cfg.BusinessDays)
		if variables.IsPositive() {
			b.monthly(CodeDSRVariables, desc, decimal.Zero)
		}
		return
	}
	if !variables.IsPositive() {
		return
	}
	value := variables.Div(decimal.NewFromInt(int64(cfg.BusinessDays))).Mul(decimal.NewFromInt(int64(cfg.NonBusinessDays)))
	line := b.monthly(CodeDSRVariables, desc, value)
	b.dsr.Value = line.Value
	b.log.info("DSR calculado: (R$ %s ÷ %d) × %d = R$ %s", money(variables), cfg.BusinessDays, cfg.NonBusinessDays, money(line.Value))
}

func (b *verbaBuilder) addAbsences() {
	days := b.in.AbsenceDays
	if !days.IsPositive() {
		return
	}
	unit := "dias"
	if days.Equal(decimal.NewFromInt(1)) {
		unit = "dia"
	}
	b.deduction(CodeAbsences, fmt.Sprintf("Desconto de Faltas (%s %s)", days, unit), b.dailyRate().Mul(days))
	if b.in.AbsenceDSR.IsPositive() {
		b.deduction(CodeAbsenceDSR, "Desconto DSR por Faltas", b.in.AbsenceDSR)
		return
	}
	b.log.warn("Faltas informadas sem DSR correspondente - verifique se aplicável")
}

func (b *verbaBuilder) addSalaryBalance() {
	if !b.cat.SalaryBalance {
		return
	}
	effective := decimal.Max(decimal.Zero, decimal.NewFromInt(int64(b.in.DaysWorked)).Sub(b.in.AbsenceDays))
	b.monthly(CodeSalaryBalance, fmt.Sprintf("Saldo de Salário (%s dias)", effective), b.dailyRate().Mul(effective))
}

func (b *verbaBuilder) addVacation() {
	if periods := b.in.ExpiredVacationPeriods; b.cat.ExpiredVacation && periods > 0 {
		desc := "Férias Vencidas (1 período)"
		if periods > 1 {
			desc = fmt.Sprintf("Férias Vencidas (%d períodos)", periods)
		}
		b.vacation(CodeExpiredVacation, desc, b.ref.Mul(decimal.NewFromInt(int64(periods))))
	}
	if b.cat.ProportionalVacation && b.vacationFraction > 0 {
		b.vacation(CodeVacation, fmt.Sprintf("Férias Proporcionais (%d/12)", b.vacationFraction),
			b.monthlyFraction().Mul(decimal.NewFromInt(int64(b.vacationFraction))))
	}
	months := b.projectionMonths()
	if months > 0 {
		b.vacation(CodeVacationProjection, fmt.Sprintf("Férias Indenizadas - Projeção Aviso (%d/12)", months),
			b.monthlyFraction().Mul(decimal.NewFromInt(int64(months))))
	}
	if !b.vacationBase.IsPositive() {
		return
	}
	third := b.exempt(CodeVacationThird, "1/3 Constitucional sobre Férias (base única)", b.vacationBase.Div(three))
	b.log.info("1/3 calculado sobre base única de férias (vencidas + proporcionais + projeção aviso): R$ %s → 1/3 = R$ %s",
		money(b.vacationBase), money(third.Value))
}

func (b *verbaBuilder) addThirteenth() {
	if b.cat.Thirteenth && b.thirteenthFraction > 0 {
		b.thirteenth(CodeThirteenth, fmt.Sprintf("13º Salário Proporcional (%d/12)", b.thirteenthFraction),
			b.monthlyFraction().Mul(decimal.NewFromInt(int64(b.thirteenthFraction))))
	}
	if months := b.projectionMonths(); months > 0 {
		b.thirteenth(CodeThirteenthProjected, fmt.Sprintf("13º Indenizado - Projeção Aviso (%d/12)", months),
			b.monthlyFraction().Mul(decimal.NewFromInt(int64(months))))
		b.log.info("Avos por projeção de aviso: %d/12 para Férias e 13º (rubricas separadas)", months)
	}
}

// projectionMonths is non-zero only for an indemnified notice in a category that
// reflects the notice period into vacation and thirteenth salary.
func (b *verbaBuilder) projectionMonths() int {
	if !b.projectsNotice() || !b.cat.NoticeReflexes {
		return 0
	}
	return projectionMonths(b.noticeDays)
}

func (b *verbaBuilder) addNotice() {
	if !b.projectsNotice() || b.noticeDays <= 0 {
		return
	}
	factor := b.cat.EffectiveNoticeFactor()
	desc := fmt.Sprintf("Aviso Prévio Indenizado (%d dias)", b.noticeDays)
	if factor.LessThan(decimal.NewFromInt(1)) {
		desc = fmt.Sprintf("Aviso Prévio Indenizado (%d dias - %s%%)", b.noticeDays, percent(factor))
	}
	b.push(domain.LedgerLine{
		Code:        CodeNotice,
		Description: desc,
		Value:       b.dailyRate().Mul(decimal.NewFromInt(int64(b.noticeDays))).Mul(factor),
		Kind:        domain.Earning,
		FGTS:        true,
		Group:       domain.GroupNone,
	})
	b.log.info("Aviso indenizado calculado sobre Salário Base + Médias: R$ %s × %d dias", money(b.ref), b.noticeDays)
}

func (b *verbaBuilder) addNoticePenalty() {
	days := b.in.NoticePenaltyDays
	if !b.cat.NoticePenalty || days <= 0 {
		return
	}
	b.deduction(CodeNoticePenalty, fmt.Sprintf("Desconto Aviso Não Cumprido (%d dias)", days),
		b.dailyRate().Mul(decimal.NewFromInt(int64(days))))
}

func (b *verbaBuilder) addFixedTermIndemnity() {
	if !b.cat.FixedTermIndemnity || b.in.FixedTermEnd == nil {
		return
	}
	remaining := dateutil.DaysBetween(b.in.TerminationDate.Time, b.in.FixedTermEnd.Time)
	if remaining <= 0 {
		b.log.warn("Término do contrato (%s) anterior ao desligamento - indenização Art. 479 não aplicada", b.in.FixedTermEnd)
		return
	}
	b.exempt(CodeFixedTermIndemnity, fmt.Sprintf("Indenização Art. 479 (%d dias)", remaining),
		b.dailyRate().Mul(decimal.NewFromInt(int64(remaining))).Mul(half))
}

func (b *verbaBuilder) addFGTSPenalty() {
	pct := b.cat.FGTSPenaltyPercent
	if !pct.IsPositive() || !b.in.FGTSBalance.IsPositive() {
		return
	}
	b.exempt(CodeFGTSPenalty, fmt.Sprintf("Multa FGTS (%s%%)", percent(pct)), b.in.FGTSBalance.Mul(pct))
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// percent renders a fraction as a whole-number percentage, 0.4 -> "40"
func percent(d decimal.Decimal) string {
	return d.Mul(hundred).Round(2).String()
}
