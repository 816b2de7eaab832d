package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"

	"github.com/rgehrsitz/rescisao/internal/domain"
	"gopkg.in/yaml.v3"
)

// JSONFormatter renders the full result as indented JSON
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(r *domain.SettlementResult) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// YAMLFormatter renders the full result as YAML
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(r *domain.SettlementResult) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CSVFormatter renders one row per ledger line followed by the tax and total rows
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(r *domain.SettlementResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"code", "description", "kind", "group", "inss", "irrf", "fgts", "value"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, l := range r.Lines {
		row := []string{
			l.Code,
			l.Description,
			string(l.Kind),
			string(l.Group),
			strconv.FormatBool(l.INSS),
			strconv.FormatBool(l.IRRF),
			strconv.FormatBool(l.FGTS),
			l.Value.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	summary := [][]string{
		{"INSS_MENSAL", "INSS mensal", string(domain.Deduction), string(domain.GroupMonthly), "", "", "", r.INSS.Monthly.StringFixed(2)},
		{"INSS_13", "INSS 13º salário", string(domain.Deduction), string(domain.GroupThirteenth), "", "", "", r.INSS.Thirteenth.StringFixed(2)},
		{"IRRF_MENSAL", "IRRF mensal", string(domain.Deduction), string(domain.GroupMonthly), "", "", "", r.IRRF.Monthly.StringFixed(2)},
		{"IRRF_13", "IRRF 13º salário", string(domain.Deduction), string(domain.GroupThirteenth), "", "", "", r.IRRF.Thirteenth.StringFixed(2)},
		{"TOTAL_PROVENTOS", "Total de proventos", "", "", "", "", "", r.TotalEarnings.StringFixed(2)},
		{"TOTAL_DESCONTOS", "Total de descontos", "", "", "", "", "", r.TotalDeductions.StringFixed(2)},
		{"LIQUIDO", "Líquido", "", "", "", "", "", r.Net.StringFixed(2)},
	}
	if err := w.WriteAll(summary); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
