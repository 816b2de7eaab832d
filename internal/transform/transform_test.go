package transform

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rgehrsitz/rescisao/internal/domain"
	"github.com/shopspring/decimal"
)

// Helper function to create a basic test input
func createTestInput() *domain.TerminationInput {
	return &domain.TerminationInput{
		Salary:          decimal.NewFromInt(3000),
		HireDate:        domain.NewDate(2022, time.January, 10),
		TerminationDate: domain.NewDate(2025, time.March, 15),
		ReasonCode:      "DISPENSA_SEM_JUSTA_CAUSA",
		NoticeType:      domain.NoticeIndemnified,
		DaysWorked:      15,
		FGTSBalance:     decimal.NewFromInt(8000),
		Adicionais: &domain.Adicionais{
			DSR: &domain.DSRConfig{BusinessDays: 25, NonBusinessDays: 5},
		},
	}
}

func TestApplyTransforms_NilInput(t *testing.T) {
	_, err := ApplyTransforms(nil, []InputTransform{&PostponeTermination{Days: 10}})
	if err == nil {
		t.Error("Expected error for nil input, got nil")
	}
}

func TestApplyTransforms_EmptyTransforms(t *testing.T) {
	base := createTestInput()

	result, err := ApplyTransforms(base, nil)
	if err != nil {
		t.Fatalf("Expected no error for empty transforms, got: %v", err)
	}

	if result == base {
		t.Error("Expected a copy, got same instance")
	}
	if result.Adicionais == base.Adicionais {
		t.Error("Expected add-ons to be copied")
	}
	if !result.Salary.Equal(base.Salary) {
		t.Errorf("Expected salary %s, got %s", base.Salary, result.Salary)
	}
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	base := createTestInput()
	transforms := []InputTransform{
		&PostponeTermination{Days: 10},
		nil,
	}

	_, err := ApplyTransforms(base, transforms)
	if err == nil {
		t.Error("Expected error for nil transform in list, got nil")
	}
}

func TestApplyTransforms_ValidationFailure(t *testing.T) {
	base := createTestInput()

	_, err := ApplyTransforms(base, []InputTransform{&PostponeTermination{Days: -1}})
	if err == nil {
		t.Fatal("Expected validation error for negative days, got nil")
	}
	var te *TransformError
	if !errors.As(err, &te) {
		t.Fatalf("Expected a TransformError, got %T", err)
	}
	if te.TransformName != "postpone_termination" {
		t.Errorf("Expected transform name postpone_termination, got %s", te.TransformName)
	}
}

func TestApplyTransforms_SingleTransform(t *testing.T) {
	base := createTestInput()

	result, err := ApplyTransforms(base, []InputTransform{&PostponeTermination{Days: 20}})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if got := result.TerminationDate.String(); got != "2025-04-04" {
		t.Errorf("Expected termination date 2025-04-04, got %s", got)
	}
	if result.DaysWorked != 4 {
		t.Errorf("Expected days worked to follow the new date (4), got %d", result.DaysWorked)
	}

	if got := base.TerminationDate.String(); got != "2025-03-15" {
		t.Errorf("Original input was modified: %s", got)
	}
	if base.DaysWorked != 15 {
		t.Error("Original days worked was modified")
	}
}

func TestApplyTransforms_MultipleTransforms(t *testing.T) {
	base := createTestInput()

	transforms := []InputTransform{
		&SetNotice{Type: domain.NoticeWorked},
		&RaiseSalary{Percent: decimal.NewFromFloat(0.05)},
		&SetDependents{Count: 2},
		&SetFGTSBalance{Amount: decimal.NewFromInt(12000)},
	}

	result, err := ApplyTransforms(base, transforms)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if result.NoticeType != domain.NoticeWorked {
		t.Errorf("Expected notice TRABALHADO, got %s", result.NoticeType)
	}
	if !result.Salary.Equal(decimal.NewFromInt(3150)) {
		t.Errorf("Expected salary 3150, got %s", result.Salary)
	}
	if result.Dependents != 2 {
		t.Errorf("Expected 2 dependents, got %d", result.Dependents)
	}
	if !result.FGTSBalance.Equal(decimal.NewFromInt(12000)) {
		t.Errorf("Expected FGTS balance 12000, got %s", result.FGTSBalance)
	}

	if base.NoticeType != domain.NoticeIndemnified || !base.Salary.Equal(decimal.NewFromInt(3000)) {
		t.Error("Original input was modified")
	}
}

func TestApplyTransforms_TransformChaining(t *testing.T) {
	base := createTestInput()

	transforms := []InputTransform{
		&RaiseSalary{Percent: decimal.NewFromFloat(0.10)},
		&RaiseSalary{Percent: decimal.NewFromFloat(0.10)},
	}

	result, err := ApplyTransforms(base, transforms)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !result.Salary.Equal(decimal.NewFromInt(3630)) {
		t.Errorf("Expected compounded salary 3630, got %s", result.Salary)
	}
}

func TestSetTerminationDate(t *testing.T) {
	base := createTestInput()

	keep := &SetTerminationDate{Date: domain.NewDate(2025, time.May, 31), DaysWorked: -1}
	result, err := ApplyTransforms(base, []InputTransform{keep})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.TerminationDate.String() != "2025-05-31" || result.DaysWorked != 15 {
		t.Errorf("Unexpected result: %s, %d days", result.TerminationDate, result.DaysWorked)
	}

	set := &SetTerminationDate{Date: domain.NewDate(2025, time.May, 31), DaysWorked: 30}
	result, err = ApplyTransforms(base, []InputTransform{set})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.DaysWorked != 30 {
		t.Errorf("Expected 30 days worked, got %d", result.DaysWorked)
	}

	early := &SetTerminationDate{Date: domain.NewDate(2021, time.December, 31), DaysWorked: -1}
	if _, err := ApplyTransforms(base, []InputTransform{early}); err == nil {
		t.Error("Expected error for a date before hire")
	}
}

func TestOverrideAdjustable(t *testing.T) {
	base := createTestInput()

	o := &OverrideAdjustable{Field: AdjustableNotice, Value: 45, Justification: "acordo coletivo"}
	result, err := ApplyTransforms(base, []InputTransform{o})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	edited := result.Adjustables.NoticeDays.Edited
	if edited == nil || *edited != 45 {
		t.Fatalf("Expected edited notice days 45, got %v", edited)
	}
	if result.Adjustables.NoticeDays.Justification != "acordo coletivo" {
		t.Errorf("Unexpected justification %q", result.Adjustables.NoticeDays.Justification)
	}
	if base.Adjustables.NoticeDays.Edited != nil {
		t.Error("Original input was modified")
	}

	invalid := []*OverrideAdjustable{
		{Field: AdjustableVacation, Value: 13},
		{Field: AdjustableThirteenth, Value: -1},
		{Field: "salario", Value: 1},
	}
	for _, tr := range invalid {
		if err := tr.Validate(base); err == nil {
			t.Errorf("Expected validation error for %s=%d", tr.Field, tr.Value)
		}
	}
}

func TestSetBonus(t *testing.T) {
	base := createTestInput()

	result, err := ApplyTransforms(base, []InputTransform{&SetBonus{Amount: decimal.NewFromInt(1500)}})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.Adicionais.Bonus == nil || !result.Adicionais.Bonus.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("Expected bonus 1500, got %v", result.Adicionais.Bonus)
	}
	if base.Adicionais.Bonus != nil {
		t.Error("Original input was modified")
	}
	if result.Adicionais.DSR == nil || result.Adicionais.DSR.BusinessDays != 25 {
		t.Error("Expected other add-ons to be kept")
	}

	cleared, err := ApplyTransforms(result, []InputTransform{&SetBonus{Amount: decimal.Zero}})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cleared.Adicionais.Bonus != nil {
		t.Error("Expected zero bonus to remove the add-on")
	}

	bare := createTestInput()
	bare.Adicionais = nil
	result, err = ApplyTransforms(bare, []InputTransform{&SetBonus{Amount: decimal.NewFromInt(10)}})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.Adicionais == nil || result.Adicionais.Bonus == nil {
		t.Error("Expected add-ons to be created for the bonus")
	}

	if err := (&SetBonus{Amount: decimal.NewFromInt(-1)}).Validate(base); err == nil {
		t.Error("Expected error for negative bonus")
	}
}

func TestSetReason(t *testing.T) {
	base := createTestInput()

	result, err := ApplyTransforms(base, []InputTransform{&SetReason{Code: "PEDIDO_DEMISSAO"}})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.ReasonCode != "PEDIDO_DEMISSAO" || base.ReasonCode != "DISPENSA_SEM_JUSTA_CAUSA" {
		t.Errorf("Unexpected reasons: result %s, base %s", result.ReasonCode, base.ReasonCode)
	}
	if err := (&SetReason{}).Validate(base); err == nil {
		t.Error("Expected error for empty code")
	}
}

func TestSetNotice_Invalid(t *testing.T) {
	if err := (&SetNotice{Type: "DISPENSADO"}).Validate(createTestInput()); err == nil {
		t.Error("Expected error for unknown notice type")
	}
}

func TestDescribe(t *testing.T) {
	got := Describe([]InputTransform{
		&PostponeTermination{Days: 30},
		&SetDependents{Count: 1},
	})
	want := []string{"Desligamento adiado em 30 dia(s)", "Dependentes para IRRF: 1"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d descriptions, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %q, got %q", want[i], got[i])
		}
	}
}

func TestTransformError(t *testing.T) {
	err := NewTransformError("test_transform", "apply", "test reason", nil)

	expectedMsg := "transform test_transform (apply): test reason"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestTransformError_WithWrappedError(t *testing.T) {
	innerErr := fmt.Errorf("inner error")
	err := NewTransformError("test_transform", "validate", "validation failed", innerErr)

	expectedMsg := "transform test_transform (validate): validation failed: inner error"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
	if !errors.Is(err, innerErr) {
		t.Error("Expected wrapped error to be reachable with errors.Is")
	}
}
