package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/rescisao/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry creates transforms by name from string parameters, for the CLI
// and the HTTP API.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (InputTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("postpone_termination", createPostponeTermination)
	registry.Register("set_termination_date", createSetTerminationDate)
	registry.Register("set_notice", createSetNotice)
	registry.Register("set_reason", createSetReason)
	registry.Register("set_salary", createSetSalary)
	registry.Register("raise_salary", createRaiseSalary)
	registry.Register("set_bonus", createSetBonus)
	registry.Register("set_fgts_balance", createSetFGTSBalance)
	registry.Register("set_dependents", createSetDependents)
	registry.Register("override", createOverrideAdjustable)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (InputTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a single transform string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "postpone_termination:days=30"
func (r *TransformRegistry) ParseTransformSpec(spec string) (InputTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseAll parses each spec in order
func (r *TransformRegistry) ParseAll(specs []string) ([]InputTransform, error) {
	transforms := make([]InputTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, t)
	}
	return transforms, nil
}

func requireParam(params map[string]string, transform, key string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return v, nil
}

func intParam(params map[string]string, transform, key string) (int, error) {
	s, err := requireParam(params, transform, key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func decimalParam(params map[string]string, transform, key string) (decimal.Decimal, error) {
	s, err := requireParam(params, transform, key)
	if err != nil {
		return decimal.Zero, err
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// Factory functions for each transform

func createPostponeTermination(params map[string]string) (InputTransform, error) {
	days, err := intParam(params, "postpone_termination", "days")
	if err != nil {
		return nil, err
	}
	return &PostponeTermination{Days: days}, nil
}

func createSetTerminationDate(params map[string]string) (InputTransform, error) {
	dateStr, err := requireParam(params, "set_termination_date", "date")
	if err != nil {
		return nil, err
	}
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	daysWorked := -1
	if _, ok := params["days_worked"]; ok {
		if daysWorked, err = intParam(params, "set_termination_date", "days_worked"); err != nil {
			return nil, err
		}
		if daysWorked < 0 {
			return nil, fmt.Errorf("days_worked must be non-negative, got %d", daysWorked)
		}
	}

	return &SetTerminationDate{Date: date, DaysWorked: daysWorked}, nil
}

func createSetNotice(params map[string]string) (InputTransform, error) {
	typ, err := requireParam(params, "set_notice", "type")
	if err != nil {
		return nil, err
	}
	return &SetNotice{Type: domain.NoticeType(strings.ToUpper(typ))}, nil
}

func createSetReason(params map[string]string) (InputTransform, error) {
	code, err := requireParam(params, "set_reason", "code")
	if err != nil {
		return nil, err
	}
	return &SetReason{Code: strings.ToUpper(code)}, nil
}

func createSetBonus(params map[string]string) (InputTransform, error) {
	amount, err := decimalParam(params, "set_bonus", "amount")
	if err != nil {
		return nil, err
	}
	return &SetBonus{Amount: amount}, nil
}

func createSetSalary(params map[string]string) (InputTransform, error) {
	amount, err := decimalParam(params, "set_salary", "amount")
	if err != nil {
		return nil, err
	}
	return &SetSalary{Amount: amount}, nil
}

func createRaiseSalary(params map[string]string) (InputTransform, error) {
	percent, err := decimalParam(params, "raise_salary", "percent")
	if err != nil {
		return nil, err
	}
	return &RaiseSalary{Percent: percent}, nil
}

func createSetFGTSBalance(params map[string]string) (InputTransform, error) {
	amount, err := decimalParam(params, "set_fgts_balance", "amount")
	if err != nil {
		return nil, err
	}
	return &SetFGTSBalance{Amount: amount}, nil
}

func createSetDependents(params map[string]string) (InputTransform, error) {
	count, err := intParam(params, "set_dependents", "count")
	if err != nil {
		return nil, err
	}
	return &SetDependents{Count: count}, nil
}

func createOverrideAdjustable(params map[string]string) (InputTransform, error) {
	field, err := requireParam(params, "override", "field")
	if err != nil {
		return nil, err
	}
	value, err := intParam(params, "override", "value")
	if err != nil {
		return nil, err
	}
	return &OverrideAdjustable{
		Field:         field,
		Value:         value,
		Justification: params["justification"],
	}, nil
}
