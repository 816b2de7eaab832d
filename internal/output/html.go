package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/rescisao/internal/domain"
)

// HTMLFormatter produces a standalone HTML statement
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/settlement.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("settlement").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	"yn": func(b bool) string {
		if b {
			return "Sim"
		}
		return "Não"
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(r *domain.SettlementResult) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
