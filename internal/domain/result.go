package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineKind tells whether a ledger line adds to or subtracts from the settlement
type LineKind string

const (
	Earning   LineKind = "provento"
	Deduction LineKind = "desconto"
)

// Group is the settlement group a line is taxed in. Monthly and thirteenth-salary lines
// are never mixed before the progressive taxes are applied.
type Group string

const (
	GroupMonthly    Group = "MENSAL"
	GroupThirteenth Group = "DECIMO_TERCEIRO"
	GroupNone       Group = "NAO_APLICA"
)

// LedgerLine is one "verba" of the settlement
type LedgerLine struct {
	Code        string          `yaml:"code" json:"code"`
	Description string          `yaml:"description" json:"description"`
	Value       decimal.Decimal `yaml:"value" json:"value"`
	Kind        LineKind        `yaml:"kind" json:"kind"`
	INSS        bool            `yaml:"inss" json:"inss"`
	IRRF        bool            `yaml:"irrf" json:"irrf"`
	FGTS        bool            `yaml:"fgts" json:"fgts"`
	Group       Group           `yaml:"group" json:"group"`
}

// IsEarning reports whether the line is a provento
func (l LedgerLine) IsEarning() bool { return l.Kind == Earning }

// LogKind is the severity/category of an audit entry
type LogKind string

const (
	LogInfo    LogKind = "INFO"
	LogWarning LogKind = "AVISO"
	LogManual  LogKind = "MANUAL"
)

// LogEntry is one line of the calculation's audit trail
type LogEntry struct {
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	Kind      LogKind   `yaml:"kind" json:"kind"`
	Message   string    `yaml:"message" json:"message"`
}

// TaxTotals splits a tax between the two settlement groups
type TaxTotals struct {
	Monthly    decimal.Decimal `yaml:"monthly" json:"monthly"`
	Thirteenth decimal.Decimal `yaml:"thirteenth" json:"thirteenth"`
	Total      decimal.Decimal `yaml:"total" json:"total"`
}

// TaxBases records the grouped bases the taxes were computed on
type TaxBases struct {
	INSSMonthly    decimal.Decimal `yaml:"inss_monthly" json:"inss_monthly"`
	INSSThirteenth decimal.Decimal `yaml:"inss_thirteenth" json:"inss_thirteenth"`
	IRRFMonthly    decimal.Decimal `yaml:"irrf_monthly" json:"irrf_monthly"`
	IRRFThirteenth decimal.Decimal `yaml:"irrf_thirteenth" json:"irrf_thirteenth"`
}

// OvertimeTier is one overtime quantity priced at the derived hourly rate
type OvertimeTier struct {
	Hours  decimal.Decimal `yaml:"hours" json:"hours"`
	Factor decimal.Decimal `yaml:"factor" json:"factor"`
	Value  decimal.Decimal `yaml:"value" json:"value"`
}

// OvertimeBase details the composite base behind the derived hourly rate
type OvertimeBase struct {
	Salary        decimal.Decimal `yaml:"salary" json:"salary"`
	Seniority     decimal.Decimal `yaml:"seniority" json:"seniority"`
	Commission    decimal.Decimal `yaml:"commission" json:"commission"`
	Unhealthy     decimal.Decimal `yaml:"unhealthy" json:"unhealthy"`
	Bonus         decimal.Decimal `yaml:"bonus" json:"bonus"`
	Hazard        decimal.Decimal `yaml:"hazard" json:"hazard"`
	Total         decimal.Decimal `yaml:"total" json:"total"`
	Divisor       int             `yaml:"divisor" json:"divisor"`
	HourlyRate    decimal.Decimal `yaml:"hourly_rate" json:"hourly_rate"`
	Overtime50    OvertimeTier    `yaml:"overtime_50" json:"overtime_50"`
	Overtime100   OvertimeTier    `yaml:"overtime_100" json:"overtime_100"`
	IntraShift    *OvertimeTier   `yaml:"intra_shift,omitempty" json:"intra_shift,omitempty"`
	InterShift    *OvertimeTier   `yaml:"inter_shift,omitempty" json:"inter_shift,omitempty"`
	TotalOvertime decimal.Decimal `yaml:"total_overtime" json:"total_overtime"`
}

// DSRSummary echoes the DSR configuration with the value computed from it
type DSRSummary struct {
	BusinessDays    int             `yaml:"business_days" json:"business_days"`
	NonBusinessDays int             `yaml:"non_business_days" json:"non_business_days"`
	Value           decimal.Decimal `yaml:"value" json:"value"`
}

// SettlementResult is the complete, display-ready outcome of one calculation.
// TotalEarnings includes the FGTS penalty line; TotalDeductions holds ledger deductions
// only, with the two taxes reported separately, so that
// TotalEarnings - TotalDeductions - INSS.Total - IRRF.Total == Net.
type SettlementResult struct {
	ReasonCode             string          `yaml:"reason_code" json:"reason_code"`
	Category               string          `yaml:"category" json:"category"`
	ReferenceRemuneration  decimal.Decimal `yaml:"reference_remuneration" json:"reference_remuneration"`
	Lines                  []LedgerLine    `yaml:"lines" json:"lines"`
	TotalEarnings          decimal.Decimal `yaml:"total_earnings" json:"total_earnings"`
	TotalDeductions        decimal.Decimal `yaml:"total_deductions" json:"total_deductions"`
	INSS                   TaxTotals       `yaml:"inss" json:"inss"`
	IRRF                   TaxTotals       `yaml:"irrf" json:"irrf"`
	Bases                  TaxBases        `yaml:"bases" json:"bases"`
	Net                    decimal.Decimal `yaml:"net" json:"net"`
	FGTSPenalty            decimal.Decimal `yaml:"fgts_penalty" json:"fgts_penalty"`
	NoticeDaysUsed         int             `yaml:"notice_days_used" json:"notice_days_used"`
	VacationFractionUsed   int             `yaml:"vacation_fraction_used" json:"vacation_fraction_used"`
	ThirteenthFractionUsed int             `yaml:"thirteenth_fraction_used" json:"thirteenth_fraction_used"`
	Log                    []LogEntry      `yaml:"log" json:"log"`
	OvertimeBase           *OvertimeBase   `yaml:"overtime_base,omitempty" json:"overtime_base,omitempty"`
	DSR                    *DSRSummary     `yaml:"dsr,omitempty" json:"dsr,omitempty"`
}

// Line returns the first line with the given code
func (r *SettlementResult) Line(code string) (LedgerLine, bool) {
	for _, l := range r.Lines {
		if l.Code == code {
			return l, true
		}
	}
	return LedgerLine{}, false
}

// LinesInGroup returns the lines tagged with the given group, in ledger order
func (r *SettlementResult) LinesInGroup(g Group) []LedgerLine {
	var out []LedgerLine
	for _, l := range r.Lines {
		if l.Group == g {
			out = append(out, l)
		}
	}
	return out
}

// LogOfKind filters the audit log by kind
func (r *SettlementResult) LogOfKind(kind LogKind) []LogEntry {
	var out []LogEntry
	for _, e := range r.Log {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
