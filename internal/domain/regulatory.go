package domain

import (
	"github.com/shopspring/decimal"
)

// RegulatoryConfig contains the tax tables and termination catalog. It is loaded once
// from regulatory.yaml and passed to the engine explicitly; the engine never mutates it.
type RegulatoryConfig struct {
	Metadata   RegulatoryMetadata  `yaml:"metadata" json:"metadata"`
	INSS       INSSTable           `yaml:"inss" json:"inss"`
	IRRF       IRRFTable           `yaml:"irrf" json:"irrf"`
	Reasons    []TerminationReason `yaml:"motivos" json:"motivos"`
	Categories map[string]Category `yaml:"categorias" json:"categorias"`
}

// RegulatoryMetadata contains information about the regulatory data
type RegulatoryMetadata struct {
	DataYear    int    `yaml:"data_year" json:"data_year"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}

// INSSBracket is one marginal band of the contribution table
type INSSBracket struct {
	UpTo decimal.Decimal `yaml:"ate" json:"ate"`
	Rate decimal.Decimal `yaml:"aliquota" json:"aliquota"`
}

// INSSTable holds ascending bands and the contribution ceiling
type INSSTable struct {
	Brackets []INSSBracket  `yaml:"faixas" json:"faixas"`
	Ceiling  decimal.Decimal `yaml:"teto" json:"teto"`
}

// IRRFBracket covers [From, To). A nil To means the band is unbounded.
type IRRFBracket struct {
	From      decimal.Decimal  `yaml:"de" json:"de"`
	To        *decimal.Decimal `yaml:"ate,omitempty" json:"ate,omitempty"`
	Rate      decimal.Decimal  `yaml:"aliquota" json:"aliquota"`
	Deduction decimal.Decimal  `yaml:"deduzir" json:"deduzir"`
}

// Contains reports whether base falls in [From, To)
func (b IRRFBracket) Contains(base decimal.Decimal) bool {
	if base.LessThan(b.From) {
		return false
	}
	return b.To == nil || base.LessThan(*b.To)
}

// IRRFTable holds mutually exclusive bands and the per-dependent deduction
type IRRFTable struct {
	Brackets           []IRRFBracket  `yaml:"faixas" json:"faixas"`
	DependentDeduction decimal.Decimal `yaml:"valor_dependente" json:"valor_dependente"`
}

// TerminationReason maps a reason code to its entitlement category
type TerminationReason struct {
	Code        string `yaml:"codigo" json:"codigo"`
	Description string `yaml:"descricao" json:"descricao"`
	Category    string `yaml:"categoria" json:"categoria"`
}

// Category is the set of entitlement flags shared by one or more reasons
type Category struct {
	Description          string           `yaml:"descricao,omitempty" json:"descricao,omitempty"`
	SalaryBalance        bool             `yaml:"saldo_salario" json:"saldo_salario"`
	ExpiredVacation      bool             `yaml:"ferias_vencidas" json:"ferias_vencidas"`
	ProportionalVacation bool             `yaml:"ferias_prop" json:"ferias_prop"`
	Thirteenth           bool             `yaml:"decimo_terceiro" json:"decimo_terceiro"`
	Notice               bool             `yaml:"aviso" json:"aviso"`
	NoticeFactor         *decimal.Decimal `yaml:"fator_aviso,omitempty" json:"fator_aviso,omitempty"`
	NoticeReflexes       bool             `yaml:"reflexos_aviso" json:"reflexos_aviso"`
	NoticePenalty        bool             `yaml:"desconto_aviso" json:"desconto_aviso"`
	FixedTermIndemnity   bool             `yaml:"art_479" json:"art_479"`
	FGTSPenaltyPercent   decimal.Decimal  `yaml:"multa_fgts_percent" json:"multa_fgts_percent"`
}

// EffectiveNoticeFactor returns the notice pay factor, defaulting to 1
func (c Category) EffectiveNoticeFactor() decimal.Decimal {
	if c.NoticeFactor == nil {
		return decimal.NewFromInt(1)
	}
	return *c.NoticeFactor
}

// Reason finds a termination reason by code
func (rc *RegulatoryConfig) Reason(code string) (TerminationReason, bool) {
	for _, r := range rc.Reasons {
		if r.Code == code {
			return r, true
		}
	}
	return TerminationReason{}, false
}

// Category finds a category by key
func (rc *RegulatoryConfig) Category(key string) (Category, bool) {
	c, ok := rc.Categories[key]
	return c, ok
}
