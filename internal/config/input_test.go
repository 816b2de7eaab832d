package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/rescisao/internal/calculation"
	"github.com/rgehrsitz/rescisao/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
salary: 3000
hire_date: 2023-01-10
termination_date: 2024-07-20
reason_code: DISPENSA_SEM_JUSTA_CAUSA
notice_type: INDENIZADO
days_worked: 20
fgts_balance: 5000.50
average_variable_pay: 0
absence_days: 1.5
absence_dsr: 0
adjustables:
  vacation_fraction:
    calculated: 6
    edited: 7
    justification: "Ajuste por acordo"
adicionais:
  unhealthy:
    grade: medio
    base: 1518
  overtime:
    monthly_hours: 220
    hours_50: 10
    hours_100: 0
  dsr:
    business_days: 25
    non_business_days: 5
`

const sampleJSON = `{
  "salary": "2500.00",
  "hire_date": "2022-03-01",
  "termination_date": "2024-05-31T00:00:00Z",
  "reason_code": "PEDIDO_DEMISSAO",
  "notice_type": "TRABALHADO",
  "days_worked": 31,
  "fgts_balance": 0,
  "average_variable_pay": 0,
  "absence_days": 0,
  "absence_dsr": 0,
  "notice_penalty_days": 10
}`

func TestDefaultRegulatory(t *testing.T) {
	rules, err := NewInputParser().DefaultRegulatory()
	require.NoError(t, err)

	assert.Equal(t, 2025, rules.Metadata.DataYear)
	require.Len(t, rules.INSS.Brackets, 4)
	assert.True(t, decimal.RequireFromString("8157.41").Equal(rules.INSS.Ceiling))
	require.Len(t, rules.IRRF.Brackets, 5)
	assert.Nil(t, rules.IRRF.Brackets[4].To)
	assert.True(t, decimal.RequireFromString("189.59").Equal(rules.IRRF.DependentDeduction))

	reason, ok := rules.Reason("ACORDO_484A")
	require.True(t, ok)
	cat, ok := rules.Category(reason.Category)
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("0.5").Equal(cat.EffectiveNoticeFactor()))
	assert.True(t, decimal.RequireFromString("0.20").Equal(cat.FGTSPenaltyPercent))

	resign, _ := rules.Category("PEDIDO_DEMISSAO")
	assert.True(t, resign.NoticePenalty)
	assert.False(t, resign.Notice)

	_, err = calculation.NewEngine(rules)
	assert.NoError(t, err)
}

func TestDefaultRegulatory_ReturnsIndependentCopies(t *testing.T) {
	ip := NewInputParser()
	a, err := ip.DefaultRegulatory()
	require.NoError(t, err)
	b, err := ip.DefaultRegulatory()
	require.NoError(t, err)
	a.Reasons[0].Code = "CHANGED"
	assert.NotEqual(t, "CHANGED", b.Reasons[0].Code)
}

func TestParseRegulatory_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad yaml", "inss: [", "failed to parse YAML"},
		{"unknown field", "inss:\n  teto: 10\n  extra: 1\n", "failed to parse YAML"},
		{"no brackets", "inss:\n  teto: 10\n", "inss table has no brackets"},
		{"missing category", `
inss: {teto: 100, faixas: [{ate: 100, aliquota: 0.1}]}
irrf: {valor_dependente: 1, faixas: [{de: 0, aliquota: 0, deduzir: 0}]}
motivos: [{codigo: X, descricao: x, categoria: NOPE}]
categorias: {}
`, `categoria "NOPE" not defined`},
		{"duplicate reason", `
inss: {teto: 100, faixas: [{ate: 100, aliquota: 0.1}]}
irrf: {valor_dependente: 1, faixas: [{de: 0, aliquota: 0, deduzir: 0}]}
motivos: [{codigo: X, categoria: C}, {codigo: X, categoria: C}]
categorias: {C: {saldo_salario: true, multa_fgts_percent: 0}}
`, "duplicate codigo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInputParser().ParseRegulatory([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadRegulatory_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, defaultRegulatory, 0o600))

	rules, err := NewInputParser().LoadRegulatory(path)
	require.NoError(t, err)
	assert.NotEmpty(t, rules.Reasons)

	_, err = NewInputParser().LoadRegulatory(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestParseInput_YAML(t *testing.T) {
	in, err := NewInputParser().ParseInput([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "3000", in.Salary.String())
	assert.Equal(t, "2023-01-10", in.HireDate.String())
	assert.Equal(t, "2024-07-20", in.TerminationDate.String())
	assert.Equal(t, domain.NoticeIndemnified, in.NoticeType)
	assert.Equal(t, "5000.5", in.FGTSBalance.String())
	assert.Equal(t, "1.5", in.AbsenceDays.String())
	require.NotNil(t, in.Adjustables.VacationFraction.Edited)
	assert.Equal(t, 7, *in.Adjustables.VacationFraction.Edited)
	assert.Equal(t, "Ajuste por acordo", in.Adjustables.VacationFraction.Justification)
	require.NotNil(t, in.Adicionais)
	require.NotNil(t, in.Adicionais.Unhealthy)
	assert.Equal(t, domain.UnhealthyMedium, in.Adicionais.Unhealthy.Grade)
	require.NotNil(t, in.Adicionais.Overtime)
	assert.Equal(t, 220, in.Adicionais.Overtime.MonthlyHours)
	require.NotNil(t, in.Adicionais.DSR)
	assert.Equal(t, 25, in.Adicionais.DSR.BusinessDays)
	assert.Nil(t, in.Adicionais.NightShift)
}

func TestParseInput_JSON(t *testing.T) {
	in, err := NewInputParser().ParseInput([]byte(sampleJSON), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "2500", in.Salary.String())
	assert.Equal(t, "2024-05-31", in.TerminationDate.String())
	assert.Equal(t, 10, in.NoticePenaltyDays)
	assert.Nil(t, in.Adicionais)
}

func TestParseInput_RejectsUnknownFields(t *testing.T) {
	_, err := NewInputParser().ParseInput([]byte("salary: 1\nsalario: 2\n"), FormatYAML)
	assert.Error(t, err)
	_, err = NewInputParser().ParseInput([]byte(`{"salary": 1, "salario": 2}`), FormatJSON)
	assert.Error(t, err)
}

func TestLoadInput_DetectsFormat(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "input.json")
	yamlPath := filepath.Join(dir, "input.yaml")
	require.NoError(t, os.WriteFile(jsonPath, []byte(sampleJSON), 0o600))
	require.NoError(t, os.WriteFile(yamlPath, []byte(sampleYAML), 0o600))

	ip := NewInputParser()
	fromJSON, err := ip.LoadInput(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "PEDIDO_DEMISSAO", fromJSON.ReasonCode)

	fromYAML, err := ip.LoadInput(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "DISPENSA_SEM_JUSTA_CAUSA", fromYAML.ReasonCode)

	assert.Equal(t, FormatJSON, FormatForPath("A.JSON"))
	assert.Equal(t, FormatYAML, FormatForPath("a.yml"))
}

func TestValidateInput(t *testing.T) {
	ip := NewInputParser()
	rules, err := ip.DefaultRegulatory()
	require.NoError(t, err)

	in, err := ip.ParseInput([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)
	assert.NoError(t, ip.ValidateInput(in, rules))

	in.ReasonCode = "INEXISTENTE"
	err = ip.ValidateInput(in, rules)
	assert.ErrorIs(t, err, calculation.ErrReasonNotFound)

	in.ReasonCode = "JUSTA_CAUSA"
	in.Salary = decimal.NewFromInt(-1)
	err = ip.ValidateInput(in, rules)
	assert.ErrorIs(t, err, calculation.ErrInvalidInput)
}
