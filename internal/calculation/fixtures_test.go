package calculation

import (
	"time"

	"github.com/rgehrsitz/rescisao/internal/domain"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func ip(v int) *int { return &v }

func date(s string) domain.Date {
	dt, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return dt
}

var fixedNow = time.Date(2024, 7, 21, 9, 0, 0, 0, time.UTC)

func testRules() *domain.RegulatoryConfig {
	return &domain.RegulatoryConfig{
		INSS: domain.INSSTable{
			Brackets: []domain.INSSBracket{
				{UpTo: d("1518.00"), Rate: d("0.075")},
				{UpTo: d("2793.88"), Rate: d("0.09")},
				{UpTo: d("4190.83"), Rate: d("0.12")},
				{UpTo: d("8157.41"), Rate: d("0.14")},
			},
			Ceiling: d("8157.41"),
		},
		IRRF: domain.IRRFTable{
			Brackets: []domain.IRRFBracket{
				{From: d("0"), To: dp("2428.80"), Rate: d("0"), Deduction: d("0")},
				{From: d("2428.80"), To: dp("2826.65"), Rate: d("0.075"), Deduction: d("182.16")},
				{From: d("2826.65"), To: dp("3751.05"), Rate: d("0.15"), Deduction: d("394.16")},
				{From: d("3751.05"), To: dp("4664.68"), Rate: d("0.225"), Deduction: d("675.49")},
				{From: d("4664.68"), Rate: d("0.275"), Deduction: d("908.73")},
			},
			DependentDeduction: d("189.59"),
		},
		Reasons: []domain.TerminationReason{
			{Code: "DISPENSA_SEM_JUSTA_CAUSA", Category: "SEM_JUSTA_CAUSA_EQUIVALENTE"},
			{Code: "ACORDO_484A", Category: "ACORDO_484A"},
			{Code: "PEDIDO_DEMISSAO", Category: "PEDIDO_DEMISSAO"},
			{Code: "JUSTA_CAUSA", Category: "JUSTA_CAUSA"},
			{Code: "RESCISAO_ANTECIPADA_EMPREGADOR", Category: "RESCISAO_ANTECIPADA_EMPREGADOR_PRAZO"},
			{Code: "ORFAO", Category: "INEXISTENTE"},
		},
		Categories: map[string]domain.Category{
			"SEM_JUSTA_CAUSA_EQUIVALENTE": {
				SalaryBalance: true, ExpiredVacation: true, ProportionalVacation: true, Thirteenth: true,
				Notice: true, NoticeReflexes: true, FGTSPenaltyPercent: d("0.40"),
			},
			"ACORDO_484A": {
				SalaryBalance: true, ExpiredVacation: true, ProportionalVacation: true, Thirteenth: true,
				Notice: true, NoticeFactor: dp("0.5"), NoticeReflexes: true, FGTSPenaltyPercent: d("0.20"),
			},
			"PEDIDO_DEMISSAO": {
				SalaryBalance: true, ExpiredVacation: true, ProportionalVacation: true, Thirteenth: true,
				NoticePenalty: true,
			},
			"JUSTA_CAUSA": {SalaryBalance: true, ExpiredVacation: true},
			"RESCISAO_ANTECIPADA_EMPREGADOR_PRAZO": {
				SalaryBalance: true, ExpiredVacation: true, ProportionalVacation: true, Thirteenth: true,
				FixedTermIndemnity: true, FGTSPenaltyPercent: d("0.40"),
			},
		},
	}
}

// baseInput is the 3000.00 / 2023-01-10 to 2024-07-20 dismissal with worked notice
func baseInput() domain.TerminationInput {
	return domain.TerminationInput{
		Salary:          d("3000"),
		HireDate:        date("2023-01-10"),
		TerminationDate: date("2024-07-20"),
		ReasonCode:      "DISPENSA_SEM_JUSTA_CAUSA",
		ContractType:    domain.ContractIndefinite,
		NoticeType:      domain.NoticeWorked,
		DaysWorked:      20,
	}
}

func testEngine() *Engine {
	e, err := NewEngine(testRules())
	if err != nil {
		panic(err)
	}
	e.Now = func() time.Time { return fixedNow }
	return e
}

func lineCodes(r *domain.SettlementResult) []string {
	codes := make([]string, 0, len(r.Lines))
	for _, l := range r.Lines {
		codes = append(codes, l.Code)
	}
	return codes
}
