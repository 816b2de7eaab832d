package transform

import (
	"testing"

	"github.com/rgehrsitz/rescisao/internal/domain"
	"github.com/shopspring/decimal"
)

func TestRegistry_List(t *testing.T) {
	names := NewTransformRegistry().List()
	want := []string{
		"override", "postpone_termination", "raise_salary", "set_bonus", "set_dependents",
		"set_fgts_balance", "set_notice", "set_reason", "set_salary", "set_termination_date",
	}
	if len(names) != len(want) {
		t.Fatalf("Expected %d transforms, got %v", len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Expected %s at %d, got %s", want[i], i, names[i])
		}
	}
}

func TestRegistry_ParseTransformSpec(t *testing.T) {
	r := NewTransformRegistry()

	tests := []struct {
		spec  string
		check func(t *testing.T, tr InputTransform)
	}{
		{"postpone_termination:days=30", func(t *testing.T, tr InputTransform) {
			pt, ok := tr.(*PostponeTermination)
			if !ok || pt.Days != 30 {
				t.Errorf("Unexpected transform %#v", tr)
			}
		}},
		{"set_termination_date:date=2025-06-30, days_worked=30", func(t *testing.T, tr InputTransform) {
			st, ok := tr.(*SetTerminationDate)
			if !ok || st.Date.String() != "2025-06-30" || st.DaysWorked != 30 {
				t.Errorf("Unexpected transform %#v", tr)
			}
		}},
		{"set_termination_date:date=2025-06-30", func(t *testing.T, tr InputTransform) {
			st := tr.(*SetTerminationDate)
			if st.DaysWorked != -1 {
				t.Errorf("Expected days worked to be kept, got %d", st.DaysWorked)
			}
		}},
		{"set_notice:type=trabalhado", func(t *testing.T, tr InputTransform) {
			if tr.(*SetNotice).Type != domain.NoticeWorked {
				t.Errorf("Unexpected notice type %s", tr.(*SetNotice).Type)
			}
		}},
		{"set_reason:code=acordo", func(t *testing.T, tr InputTransform) {
			if tr.(*SetReason).Code != "ACORDO" {
				t.Errorf("Unexpected code %s", tr.(*SetReason).Code)
			}
		}},
		{"raise_salary:percent=0.08", func(t *testing.T, tr InputTransform) {
			if !tr.(*RaiseSalary).Percent.Equal(decimal.NewFromFloat(0.08)) {
				t.Errorf("Unexpected percent %s", tr.(*RaiseSalary).Percent)
			}
		}},
		{"override:field=notice_days,value=60,justification=sentença", func(t *testing.T, tr InputTransform) {
			oa := tr.(*OverrideAdjustable)
			if oa.Field != AdjustableNotice || oa.Value != 60 || oa.Justification != "sentença" {
				t.Errorf("Unexpected transform %#v", oa)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			tr, err := r.ParseTransformSpec(tt.spec)
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			tt.check(t, tr)
		})
	}
}

func TestRegistry_ParseTransformSpec_Errors(t *testing.T) {
	r := NewTransformRegistry()

	specs := []string{
		"postpone_termination",
		"postpone_termination:weeks=2",
		"postpone_termination:days=abc",
		"postpone_termination:days",
		"unknown:x=1",
		"set_salary:amount=muito",
		"set_termination_date:date=30/06/2025",
		"set_termination_date:date=2025-06-30,days_worked=-2",
		"override:value=3",
	}
	for _, spec := range specs {
		if _, err := r.ParseTransformSpec(spec); err == nil {
			t.Errorf("Expected error for %q", spec)
		}
	}
}

func TestRegistry_ParseAll(t *testing.T) {
	r := NewTransformRegistry()

	transforms, err := r.ParseAll([]string{"set_dependents:count=1", "set_salary:amount=4000"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(transforms) != 2 || transforms[1].Name() != "set_salary" {
		t.Errorf("Unexpected transforms %v", transforms)
	}

	if _, err := r.ParseAll([]string{"set_dependents:count=1", "bogus"}); err == nil {
		t.Error("Expected error for an invalid spec")
	}
}
