package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/rescisao/internal/calculation"
	"github.com/rgehrsitz/rescisao/internal/config"
	"github.com/rgehrsitz/rescisao/internal/domain"
)

const scenarioYAML = `salary: 3000
hire_date: 2023-01-10
termination_date: 2024-07-20
reason_code: DISPENSA_SEM_JUSTA_CAUSA
notice_type: TRABALHADO
days_worked: 20
`

const legacyYAML = `rescisao:
  salary: 2200
  hire_date: 2023-01-10
  termination_date: 2024-07-20
  reason_code: DISPENSA_SEM_JUSTA_CAUSA
  notice_type: TRABALHADO
  days_worked: 20
adicionais_legado:
  night_shift:
    hours: 10
    hourly_premium: 5
  overtime:
    amount: 300
    premium_percent: 0.5
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "rescisao", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"calculate", "validate", "compare", "breakeven", "sensitivity", "motivos", "convert-legacy", "serve", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestCalculate_JSON(t *testing.T) {
	out, _, err := run(t, "calculate", writeFile(t, "in.yaml", scenarioYAML), "--format", "json")
	require.NoError(t, err)

	var result domain.SettlementResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "5458.04", result.Net.StringFixed(2))
	assert.Equal(t, "DISPENSA_SEM_JUSTA_CAUSA", result.ReasonCode)
}

func TestCalculate_Console(t *testing.T) {
	out, _, err := run(t, "calculate", writeFile(t, "in.yaml", scenarioYAML))
	require.NoError(t, err)
	assert.Contains(t, out, "PROVENTOS")
	assert.Contains(t, out, "LÍQUIDO A RECEBER")
}

func TestCalculate_OutputDir(t *testing.T) {
	dir := t.TempDir()
	out, _, err := run(t, "calculate", writeFile(t, "in.yaml", scenarioYAML), "-f", "csv", "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Relatório gravado em")

	matches, err := filepath.Glob(filepath.Join(dir, "rescisao_dispensa_sem_justa_causa_*.csv"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestCalculate_Legacy(t *testing.T) {
	out, stderr, err := run(t, "calculate", writeFile(t, "legado.yaml", legacyYAML), "--legacy", "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, stderr, "nota: Hora extra informada como valor")

	var result domain.SettlementResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	night, ok := result.Line(calculation.CodeNightShift)
	require.True(t, ok)
	assert.Equal(t, "50.00", night.Value.StringFixed(2))
}

func TestCalculate_WhatIf(t *testing.T) {
	path := writeFile(t, "in.yaml", scenarioYAML)
	out, stderr, err := run(t, "calculate", path, "-f", "json",
		"--what-if", "override:field=notice_days,value=45,justification=acordo",
		"--what-if", "set_dependents:count=1")
	require.NoError(t, err)
	assert.Contains(t, stderr, "simulação: notice_days ajustado manualmente para 45")
	assert.Contains(t, stderr, "simulação: Dependentes para IRRF: 1")

	var result domain.SettlementResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 45, result.NoticeDaysUsed)
	assert.Len(t, result.LogOfKind(domain.LogManual), 1)

	_, _, err = run(t, "calculate", path, "--what-if", "postpone_termination")
	assert.Error(t, err)
	_, _, err = run(t, "calculate", path, "--what-if", "set_notice:type=DISPENSADO")
	assert.Error(t, err)
}

func TestCalculate_Errors(t *testing.T) {
	_, _, err := run(t, "calculate", writeFile(t, "in.yaml", scenarioYAML), "-f", "xlsx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")

	bad := strings.Replace(scenarioYAML, "DISPENSA_SEM_JUSTA_CAUSA", "NAO_EXISTE", 1)
	_, _, err = run(t, "calculate", writeFile(t, "in.yaml", bad))
	require.Error(t, err)
	assert.ErrorIs(t, err, calculation.ErrReasonNotFound)
	assert.True(t, calculation.IsClientError(err))

	_, _, err = run(t, "calculate", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, _, err = run(t, "calculate", writeFile(t, "in.yaml", scenarioYAML), "--regulatory", writeFile(t, "rules.yaml", "inss: [}"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	path := writeFile(t, "in.yaml", scenarioYAML)
	out, _, err := run(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "válido")

	bad := strings.Replace(scenarioYAML, "salary: 3000", "salary: -3000", 1)
	_, _, err = run(t, "validate", writeFile(t, "in.yaml", bad))
	require.Error(t, err)
	assert.ErrorIs(t, err, calculation.ErrInvalidInput)
}

func TestCompare(t *testing.T) {
	path := writeFile(t, "in.yaml", scenarioYAML)
	out, _, err := run(t, "compare", path, "--with", "JUSTA_CAUSA, PEDIDO_DEMISSAO")
	require.NoError(t, err)
	assert.Contains(t, out, "COMPARATIVO DE MOTIVOS DE RESCISÃO")
	assert.Contains(t, out, "DISPENSA_SEM_JUSTA_CAUSA (base)")
	assert.Contains(t, out, "JUSTA_CAUSA")

	out, _, err = run(t, "compare", path, "--with", "JUSTA_CAUSA", "-f", "json")
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "DISPENSA_SEM_JUSTA_CAUSA", decoded["baseReason"])

	out, _, err = run(t, "compare", path, "--base", "JUSTA_CAUSA", "--with", "DISPENSA_SEM_JUSTA_CAUSA", "-f", "compact")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Base: JUSTA_CAUSA | DISPENSA_SEM_JUSTA_CAUSA: +"))

	_, _, err = run(t, "compare", path, "--with", "NAO_EXISTE")
	assert.ErrorIs(t, err, calculation.ErrReasonNotFound)

	out, stderr, err := run(t, "compare", path, "--with", "JUSTA_CAUSA", "--what-if", "set_fgts_balance:amount=10000")
	require.NoError(t, err)
	assert.Contains(t, stderr, "simulação: Saldo de FGTS alterado para")
	assert.Contains(t, out, "JUSTA_CAUSA")

	_, _, err = run(t, "compare", path, "-f", "xml")
	assert.Error(t, err)
}

func TestBreakeven(t *testing.T) {
	path := writeFile(t, "in.yaml", scenarioYAML)

	out, _, err := run(t, "breakeven", path, "--net", "6458.04")
	require.NoError(t, err)
	assert.Contains(t, out, "PONTO DE EQUILÍBRIO")
	assert.Contains(t, out, "✓ Encontrado")

	out, _, err = run(t, "breakeven", path, "--target", "salary", "--net", "7000", "-f", "json")
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "salary", decoded["target"])
	assert.Equal(t, true, decoded["success"])

	out, _, err = run(t, "breakeven", path, "--target", "all", "--net", "7000")
	require.NoError(t, err)
	assert.Contains(t, out, "RECOMENDAÇÕES")

	out, _, err = run(t, "breakeven", path, "--what-if", "set_reason:code=JUSTA_CAUSA", "--match-reason", "dispensa_sem_justa_causa")
	require.NoError(t, err)
	assert.Contains(t, out, "igualar o líquido de DISPENSA_SEM_JUSTA_CAUSA")

	_, _, err = run(t, "breakeven", path)
	assert.Error(t, err, "--net or --match-reason is required")
	_, _, err = run(t, "breakeven", path, "--net", "1", "--match-reason", "ACORDO")
	assert.Error(t, err)
	_, _, err = run(t, "breakeven", path, "--net", "abc")
	assert.Error(t, err)
	_, _, err = run(t, "breakeven", path, "--net", "9000", "--max", "10")
	assert.Error(t, err)
	_, _, err = run(t, "breakeven", path, "--net", "9000", "-f", "csv")
	assert.Error(t, err)
}

func TestSensitivity(t *testing.T) {
	path := writeFile(t, "in.yaml", scenarioYAML)

	out, _, err := run(t, "sensitivity", path, "-p", "termination_date:0-20:3")
	require.NoError(t, err)
	assert.Contains(t, out, "SENSIBILIDADE: DATA DE SAÍDA")
	assert.Contains(t, out, "2024-08-09")

	out, _, err = run(t, "sensitivity", path, "-p", "salary:3000-4000", "-p", "dependents:0-2", "-f", "json")
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "salary", decoded["most_sensitive"])

	_, _, err = run(t, "sensitivity", path)
	assert.Error(t, err)
	_, _, err = run(t, "sensitivity", path, "-p", "inflation:0-1")
	assert.Error(t, err)
	_, _, err = run(t, "sensitivity", path, "-p", "salary:3000-4000", "-f", "xml")
	assert.Error(t, err)
}

func TestMotivos(t *testing.T) {
	out, _, err := run(t, "motivos")
	require.NoError(t, err)
	assert.Contains(t, out, "DISPENSA_SEM_JUSTA_CAUSA")
	assert.Contains(t, out, "CATEGORIA")

	out, _, err = run(t, "motivos", "-f", "json")
	require.NoError(t, err)
	var reasons []domain.TerminationReason
	require.NoError(t, json.Unmarshal([]byte(out), &reasons))
	assert.NotEmpty(t, reasons)

	_, _, err = run(t, "motivos", "-f", "xml")
	assert.Error(t, err)
}

func TestConvertLegacy(t *testing.T) {
	out, _, err := run(t, "convert-legacy", writeFile(t, "legado.yaml", legacyYAML))
	require.NoError(t, err)

	in, err := config.NewInputParser().ParseInput([]byte(out), config.FormatYAML)
	require.NoError(t, err)
	require.NotNil(t, in.Adicionais)
	require.NotNil(t, in.Adicionais.NightShift)
	assert.Equal(t, "0.4375", in.Adicionais.NightShift.Percent.String())
	require.NotNil(t, in.Adicionais.Overtime)
	assert.Equal(t, "20", in.Adicionais.Overtime.Hours50.String())
	assert.Equal(t, "2024-07-20", in.TerminationDate.String())
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "rescisao dev (commit none, built unknown)")
}
