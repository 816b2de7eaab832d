package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rgehrsitz/rescisao/internal/calculation"
	"github.com/rgehrsitz/rescisao/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed regulatory.yaml
var defaultRegulatory []byte

// Format is the encoding of an input document
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath picks the format from the file extension, defaulting to YAML
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// InputParser handles parsing of termination inputs and regulatory files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// DefaultRegulatory returns a fresh copy of the embedded regulatory tables
func (ip *InputParser) DefaultRegulatory() (*domain.RegulatoryConfig, error) {
	rules, err := ip.ParseRegulatory(defaultRegulatory)
	if err != nil {
		return nil, fmt.Errorf("embedded regulatory config: %w", err)
	}
	return rules, nil
}

// LoadRegulatory loads rules from path, or the embedded defaults when path is empty
func (ip *InputParser) LoadRegulatory(path string) (*domain.RegulatoryConfig, error) {
	if path == "" {
		return ip.DefaultRegulatory()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read regulatory file %s: %w", path, err)
	}
	rules, err := ip.ParseRegulatory(data)
	if err != nil {
		return nil, fmt.Errorf("regulatory file %s: %w", path, err)
	}
	return rules, nil
}

// ParseRegulatory decodes and validates a regulatory YAML document
func (ip *InputParser) ParseRegulatory(data []byte) (*domain.RegulatoryConfig, error) {
	var rules domain.RegulatoryConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidateRegulatory(&rules); err != nil {
		return nil, fmt.Errorf("regulatory validation failed: %w", err)
	}
	return &rules, nil
}

// ValidateRegulatory checks the tax tables and that every reason resolves to a category
func (ip *InputParser) ValidateRegulatory(rules *domain.RegulatoryConfig) error {
	if _, err := calculation.NewINSSCalculator(rules.INSS); err != nil {
		return err
	}
	if _, err := calculation.NewIRRFCalculator(rules.IRRF); err != nil {
		return err
	}
	if rules.IRRF.DependentDeduction.IsNegative() {
		return fmt.Errorf("irrf valor_dependente must not be negative")
	}
	if len(rules.Reasons) == 0 {
		return fmt.Errorf("at least one motivo is required")
	}
	seen := make(map[string]bool, len(rules.Reasons))
	for i, r := range rules.Reasons {
		if r.Code == "" {
			return fmt.Errorf("motivo %d: codigo is required", i)
		}
		if seen[r.Code] {
			return fmt.Errorf("motivo %s: duplicate codigo", r.Code)
		}
		seen[r.Code] = true
		if _, ok := rules.Categories[r.Category]; !ok {
			return fmt.Errorf("motivo %s: categoria %q not defined", r.Code, r.Category)
		}
	}
	for key, c := range rules.Categories {
		if c.FGTSPenaltyPercent.IsNegative() {
			return fmt.Errorf("categoria %s: multa_fgts_percent must not be negative", key)
		}
		if c.NoticeFactor != nil && c.NoticeFactor.IsNegative() {
			return fmt.Errorf("categoria %s: fator_aviso must not be negative", key)
		}
	}
	return nil
}

// LoadInput loads a termination input from a YAML or JSON file
func (ip *InputParser) LoadInput(filename string) (*domain.TerminationInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseInput(data, FormatForPath(filename))
}

// ParseInput decodes a termination input. Unknown fields are rejected so typos in
// optional blocks do not silently disable an add-on.
func (ip *InputParser) ParseInput(data []byte, format Format) (*domain.TerminationInput, error) {
	var in domain.TerminationInput
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&in); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&in); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}
	return &in, nil
}

// ValidateInput checks the input invariants and that its reason resolves under rules
func (ip *InputParser) ValidateInput(in *domain.TerminationInput, rules *domain.RegulatoryConfig) error {
	if err := calculation.ValidateInput(*in); err != nil {
		return fmt.Errorf("input validation failed: %w", err)
	}
	reason, ok := rules.Reason(in.ReasonCode)
	if !ok {
		return fmt.Errorf("input validation failed: %w", &calculation.LookupError{Kind: "reason", Code: in.ReasonCode, Err: calculation.ErrReasonNotFound})
	}
	if _, ok := rules.Category(reason.Category); !ok {
		return fmt.Errorf("input validation failed: %w", &calculation.LookupError{Kind: "category", Code: reason.Category, Err: calculation.ErrCategoryNotFound})
	}
	return nil
}
