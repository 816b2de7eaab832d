package calculation

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/rescisao/internal/domain"
	"github.com/rgehrsitz/rescisao/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Engine turns termination inputs into settlements under one set of regulatory rules.
// Configure Logger and Now before first use; after that Calculate is safe for
// concurrent use.
type Engine struct {
	rules  *domain.RegulatoryConfig
	inss   *INSSCalculator
	irrf   *IRRFCalculator
	Logger Logger
	Now    func() time.Time
}

// NewEngine validates the tax tables and returns an engine bound to rules
func NewEngine(rules *domain.RegulatoryConfig) (*Engine, error) {
	if rules == nil {
		return nil, fmt.Errorf("%w: nil rules", ErrInvalidRules)
	}
	inss, err := NewINSSCalculator(rules.INSS)
	if err != nil {
		return nil, err
	}
	irrf, err := NewIRRFCalculator(rules.IRRF)
	if err != nil {
		return nil, err
	}
	return &Engine{rules: rules, inss: inss, irrf: irrf, Logger: NopLogger{}, Now: time.Now}, nil
}

// SetLogger sets the operational logger; nil restores the no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// WithLogger returns a shallow copy of e that logs to l. The copy shares the rules and
// tax calculators, so it is cheap enough to make per request.
func (e *Engine) WithLogger(l Logger) *Engine {
	c := *e
	c.SetLogger(l)
	return &c
}

// Rules returns the regulatory configuration the engine was built with
func (e *Engine) Rules() *domain.RegulatoryConfig { return e.rules }

// Calculate is a convenience wrapper building a one-off engine
func Calculate(rules *domain.RegulatoryConfig, in domain.TerminationInput) (*domain.SettlementResult, error) {
	e, err := NewEngine(rules)
	if err != nil {
		return nil, err
	}
	return e.Calculate(in)
}

// Calculate produces the complete settlement for in. Lookup and validation failures
// abort with no partial result.
func (e *Engine) Calculate(in domain.TerminationInput) (*domain.SettlementResult, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}
	reason, ok := e.rules.Reason(in.ReasonCode)
	if !ok {
		return nil, &LookupError{Kind: "reason", Code: in.ReasonCode, Err: ErrReasonNotFound}
	}
	cat, ok := e.rules.Category(reason.Category)
	if !ok {
		return nil, &LookupError{Kind: "category", Code: reason.Category, Err: ErrCategoryNotFound}
	}
	e.Logger.Debugf("calculating settlement: reason=%s category=%s", reason.Code, reason.Category)

	now := e.Now
	if now == nil {
		now = time.Now
	}
	log := newAuditLog(now)
	ref := in.ReferenceRemuneration()
	log.info("Remuneração de referência calculada: R$ %s (Salário Base + Médias)", money(ref))

	hire, term := in.HireDate.Time, in.TerminationDate.Time
	serviceDays := dateutil.DaysBetween(hire, term)
	vacation := log.resolveAdjustable(in.Adjustables.VacationFraction, DefaultVacationFraction(hire, term), vacationFractionLabels)
	thirteenth := log.resolveAdjustable(in.Adjustables.ThirteenthFraction, DefaultThirteenthFraction(term), thirteenthFractionLabels)
	notice := log.resolveAdjustable(in.Adjustables.NoticeDays, DefaultNoticeDays(serviceDays), noticeDaysLabels)

	b := &verbaBuilder{
		in:                 in,
		cat:                cat,
		ref:                ref,
		log:                log,
		vacationFraction:   vacation,
		thirteenthFraction: thirteenth,
		noticeDays:         notice,
	}
	e.Logger.Debugf("service days=%d vacation=%d/12 thirteenth=%d/12 notice=%d days",
		serviceDays, b.vacationFraction, b.thirteenthFraction, b.noticeDays)

	b.build()
	e.Logger.Debugf("emitted %d ledger lines", len(b.lines))

	t := e.aggregate(b.lines, in.Dependents, log)
	e.Logger.Debugf("net=%s inss=%s irrf=%s", t.net, t.inss.Total, t.irrf.Total)

	return &domain.SettlementResult{
		ReasonCode:             reason.Code,
		Category:               reason.Category,
		ReferenceRemuneration:  ref,
		Lines:                  b.lines,
		TotalEarnings:          t.earnings.Add(t.fgtsPenalty),
		TotalDeductions:        t.deductions,
		INSS:                   t.inss,
		IRRF:                   t.irrf,
		Bases:                  t.bases,
		Net:                    t.net,
		FGTSPenalty:            t.fgtsPenalty,
		NoticeDaysUsed:         b.noticeDays,
		VacationFractionUsed:   b.vacationFraction,
		ThirteenthFractionUsed: b.thirteenthFraction,
		Log:                    log.entries,
		OvertimeBase:           b.overtime,
		DSR:                    b.dsr,
	}, nil
}

type namedAmount struct {
	field string
	value decimal.Decimal
}

// ValidateInput checks the invariants of a termination input. Degenerate values such as
// zero hours or zero DSR business days are accepted.
func ValidateInput(in domain.TerminationInput) error {
	amounts := []namedAmount{
		{"salary", in.Salary},
		{"fgts_balance", in.FGTSBalance},
		{"average_variable_pay", in.AverageVariablePay},
		{"absence_days", in.AbsenceDays},
		{"absence_dsr", in.AbsenceDSR},
	}
	for _, m := range amounts {
		if m.value.IsNegative() {
			return &ValidationError{Field: m.field, Message: "must not be negative"}
		}
	}
	if in.ReasonCode == "" {
		return &ValidationError{Field: "reason_code", Message: "is required"}
	}
	if in.HireDate.IsZero() {
		return &ValidationError{Field: "hire_date", Message: "is required"}
	}
	if in.TerminationDate.IsZero() {
		return &ValidationError{Field: "termination_date", Message: "is required"}
	}
	if dateutil.CivilDate(in.TerminationDate.Time).Before(dateutil.CivilDate(in.HireDate.Time)) {
		return &ValidationError{Field: "termination_date", Message: "must not be before hire_date"}
	}
	switch in.NoticeType {
	case "", domain.NoticeIndemnified, domain.NoticeWorked:
	default:
		return &ValidationError{Field: "notice_type", Message: fmt.Sprintf("unknown notice type %q", in.NoticeType)}
	}
	counts := []struct {
		field string
		value int
	}{
		{"days_worked", in.DaysWorked},
		{"expired_vacation_periods", in.ExpiredVacationPeriods},
		{"dependents", in.Dependents},
		{"notice_penalty_days", in.NoticePenaltyDays},
	}
	for _, c := range counts {
		if c.value < 0 {
			return &ValidationError{Field: c.field, Message: "must not be negative"}
		}
	}
	if in.DaysWorked > 31 {
		return &ValidationError{Field: "days_worked", Message: "must be at most 31"}
	}
	if err := validateAdjustable("adjustables.vacation_fraction", in.Adjustables.VacationFraction, 12); err != nil {
		return err
	}
	if err := validateAdjustable("adjustables.thirteenth_fraction", in.Adjustables.ThirteenthFraction, 12); err != nil {
		return err
	}
	if err := validateAdjustable("adjustables.notice_days", in.Adjustables.NoticeDays, 0); err != nil {
		return err
	}
	if in.Adicionais != nil {
		return validateAdicionais(in.Adicionais)
	}
	return nil
}

func validateAdjustable(field string, adj domain.Adjustable, max int) error {
	if adj.Edited == nil {
		return nil
	}
	if *adj.Edited < 0 {
		return &ValidationError{Field: field + ".edited", Message: "must not be negative"}
	}
	if max > 0 && *adj.Edited > max {
		return &ValidationError{Field: field + ".edited", Message: fmt.Sprintf("must be at most %d", max)}
	}
	return nil
}

func validateAdicionais(a *domain.Adicionais) error {
	var checks []namedAmount
	add := func(field string, v decimal.Decimal) {
		checks = append(checks, namedAmount{field, v})
	}
	if a.NightShift != nil {
		add("adicionais.night_shift.hours", a.NightShift.Hours)
		add("adicionais.night_shift.percent", a.NightShift.Percent)
	}
	if a.HazardPercent != nil {
		add("adicionais.hazard_percent", *a.HazardPercent)
	}
	if a.Unhealthy != nil {
		if _, ok := a.Unhealthy.Grade.Percent(); !ok {
			return &ValidationError{Field: "adicionais.unhealthy.grade", Message: fmt.Sprintf("unknown grade %q", a.Unhealthy.Grade)}
		}
		add("adicionais.unhealthy.base", a.Unhealthy.Base)
	}
	if a.CashierPercent != nil {
		add("adicionais.cashier_percent", *a.CashierPercent)
	}
	if a.MealVoucher != nil {
		add("adicionais.meal_voucher.day_rate", a.MealVoucher.DayRate)
		add("adicionais.meal_voucher.days", decimal.NewFromInt(int64(a.MealVoucher.Days)))
	}
	if a.Seniority != nil {
		add("adicionais.seniority.percent", a.Seniority.Percent)
		add("adicionais.seniority.years", decimal.NewFromInt(int64(a.Seniority.Years)))
	}
	if a.Bonus != nil {
		add("adicionais.bonus", *a.Bonus)
	}
	if a.Commission != nil {
		add("adicionais.commission", *a.Commission)
	}
	if a.Overtime != nil {
		add("adicionais.overtime.monthly_hours", decimal.NewFromInt(int64(a.Overtime.MonthlyHours)))
		add("adicionais.overtime.hours_50", a.Overtime.Hours50)
		add("adicionais.overtime.hours_100", a.Overtime.Hours100)
	}
	if a.IntraShift != nil {
		add("adicionais.intra_shift.hours", a.IntraShift.Hours)
		add("adicionais.intra_shift.factor", a.IntraShift.Factor)
	}
	if a.InterShift != nil {
		add("adicionais.inter_shift.hours", a.InterShift.Hours)
		add("adicionais.inter_shift.factor", a.InterShift.Factor)
	}
	if a.DSR != nil {
		add("adicionais.dsr.business_days", decimal.NewFromInt(int64(a.DSR.BusinessDays)))
		add("adicionais.dsr.non_business_days", decimal.NewFromInt(int64(a.DSR.NonBusinessDays)))
	}
	for _, c := range checks {
		if c.value.IsNegative() {
			return &ValidationError{Field: c.field, Message: "must not be negative"}
		}
	}
	return nil
}
