package compare

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/rescisao/internal/domain"
	"github.com/shopspring/decimal"
)

func sampleSet() *ComparisonSet {
	return &ComparisonSet{
		BaseReason: "DISPENSA_SEM_JUSTA_CAUSA",
		InputPath:  "/tmp/rescisao.yaml",
		BaseResult: &ComparisonResult{
			ReasonCode:    "DISPENSA_SEM_JUSTA_CAUSA",
			Category:      "SEM_JUSTA_CAUSA_EQUIVALENTE",
			TotalEarnings: decimal.RequireFromString("9750.00"),
			Taxes:         decimal.RequireFromString("291.96"),
			FGTSPenalty:   decimal.RequireFromString("4000.00"),
			Net:           decimal.RequireFromString("9458.04"),
			NoticeDays:    30,
		},
		AlternativeResults: []ComparisonResult{
			{
				ReasonCode:          "JUSTA_CAUSA",
				Category:            "JUSTA_CAUSA",
				TotalEarnings:       decimal.RequireFromString("2000.00"),
				Taxes:               decimal.RequireFromString("157.23"),
				Net:                 decimal.RequireFromString("1842.77"),
				NoticeDays:          30,
				Warnings:            1,
				NetDiffFromBase:     decimal.RequireFromString("-7615.27"),
				NetPctFromBase:      decimal.RequireFromString("-80.52"),
				TaxDiffFromBase:     decimal.RequireFromString("-134.73"),
				PenaltyDiffFromBase: decimal.RequireFromString("-4000.00"),
			},
		},
		Recommendations: []string{"Menor líquido: JUSTA_CAUSA paga R$ 7.615,27 a menos que DISPENSA_SEM_JUSTA_CAUSA"},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}
	result := formatter.Format(sampleSet())

	for _, want := range []string{
		"COMPARATIVO DE MOTIVOS DE RESCISÃO",
		"Motivo base: DISPENSA_SEM_JUSTA_CAUSA",
		"Entrada: /tmp/rescisao.yaml",
		"DISPENSA_SEM_JUSTA_CAUSA (base)",
		"JUSTA_CAUSA:",
		"Avisos:      1",
		"OBSERVAÇÕES",
		"• Menor líquido",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in output:\n%s", want, result)
		}
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	formatter := &TableFormatter{}
	compact := formatter.FormatCompact(sampleSet())

	if !strings.HasPrefix(compact, "Base: DISPENSA_SEM_JUSTA_CAUSA | JUSTA_CAUSA: ") {
		t.Errorf("Unexpected compact output: %s", compact)
	}
	if strings.Contains(compact, "\n") {
		t.Error("Compact output must be a single line")
	}
}

func TestTableFormatter_Truncate(t *testing.T) {
	formatter := &TableFormatter{}
	if got := formatter.truncate("RESCISAO_ANTECIPADA_EMPREGADOR (base)", 20); got != "RESCISAO_ANTECIPA..." {
		t.Errorf("Unexpected truncation: %s", got)
	}
	if got := formatter.truncate("CURTO", 20); got != "CURTO" {
		t.Errorf("Short names must not change: %s", got)
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	formatter := &CSVFormatter{}
	out, err := formatter.Format(sampleSet())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("Invalid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d", len(records))
	}
	if records[1][1] != "base" || records[2][1] != "alternativa" {
		t.Errorf("Unexpected row kinds: %s, %s", records[1][1], records[2][1])
	}
	if records[2][7] != "1842.77" {
		t.Errorf("Expected net 1842.77, got %s", records[2][7])
	}
	if records[2][9] != "-7615.27" {
		t.Errorf("Expected net diff -7615.27, got %s", records[2][9])
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		formatter := &JSONFormatter{Pretty: pretty}
		set := sampleSet()
		set.BaseResult.Result = &domain.SettlementResult{Log: []domain.LogEntry{{Kind: domain.LogManual, Message: "Dias de aviso alterado"}}}
		out, err := formatter.Format(set)
		if err != nil {
			t.Fatalf("Format failed: %v", err)
		}
		if pretty != strings.Contains(out, "\n  ") {
			t.Errorf("Pretty=%v produced unexpected indentation", pretty)
		}

		var decoded ComparisonSet
		if err := json.Unmarshal([]byte(out), &decoded); err != nil {
			t.Fatalf("Invalid JSON: %v", err)
		}
		if decoded.BaseReason != "DISPENSA_SEM_JUSTA_CAUSA" {
			t.Errorf("Unexpected base reason %s", decoded.BaseReason)
		}
		if len(decoded.AlternativeResults) != 1 || !decoded.AlternativeResults[0].Net.Equal(decimal.RequireFromString("1842.77")) {
			t.Errorf("Unexpected alternatives: %+v", decoded.AlternativeResults)
		}

		var ranked struct {
			Ranking []string `json:"ranking"`
		}
		if err := json.Unmarshal([]byte(out), &ranked); err != nil {
			t.Fatalf("Invalid JSON: %v", err)
		}
		if strings.Join(ranked.Ranking, ",") != "DISPENSA_SEM_JUSTA_CAUSA,JUSTA_CAUSA" {
			t.Errorf("Unexpected ranking %v", ranked.Ranking)
		}
		if strings.Contains(out, "\"log\"") {
			t.Errorf("Audit log leaked into comparison JSON")
		}
	}
}
