package models

import (
	"strings"
	"testing"
)

func TestAccessKind_String(t *testing.T) {
	if AccessRead.String() != "read" || AccessWrite.String() != "write" {
		t.Error("unexpected AccessKind strings")
	}
	if AccessKind(42).String() != "unknown" {
		t.Error("out-of-range AccessKind should render unknown")
	}
}

func TestParamUsage(t *testing.T) {
	p := NewParamUsage("data1", AccessWrite)
	if p.Identifier != "data1" || p.Kind != AccessWrite {
		t.Errorf("unexpected ParamUsage: %+v", p)
	}
	if p.String() != "data1:write" {
		t.Errorf("String() = %q", p.String())
	}
}

func TestTaskSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		spec    TaskSpec
		wantErr bool
	}{
		{"complete", TaskSpec{Name: "a", Run: "true"}, false},
		{"missing name", TaskSpec{Run: "true"}, true},
		{"missing run", TaskSpec{Name: "a"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.spec.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTaskSpec_Usages_WritesFirst(t *testing.T) {
	spec := TaskSpec{
		Name:   "t",
		Run:    "true",
		Writes: []string{"w1"},
		Reads:  []string{"r1", "r2"},
	}

	usages := spec.Usages()
	if len(usages) != 3 {
		t.Fatalf("got %d usages", len(usages))
	}
	if usages[0] != NewParamUsage("w1", AccessWrite) {
		t.Errorf("usages[0] = %v", usages[0])
	}
	if usages[1] != NewParamUsage("r1", AccessRead) || usages[2] != NewParamUsage("r2", AccessRead) {
		t.Errorf("read usages wrong: %v", usages[1:])
	}
}

func TestWorkplan_Declarations_Length(t *testing.T) {
	plan := Workplan{
		Tasks: []TaskSpec{
			{Name: "a", Run: "true", Writes: []string{"d"}},
			{Name: "b", Run: "true"},
		},
	}
	decls := plan.Declarations()
	if len(decls) != 2 {
		t.Fatalf("got %d declarations", len(decls))
	}
	if len(decls[0]) != 1 || len(decls[1]) != 0 {
		t.Errorf("unexpected declarations: %v", decls)
	}
}

func TestDescribeUsages(t *testing.T) {
	decls := DeclarationList{
		{NewParamUsage("d1", AccessRead)},
		{NewParamUsage("d1", AccessWrite), NewParamUsage("d2", AccessWrite)},
	}
	out := DescribeUsages(decls)
	if !strings.Contains(out, "task 0: [d1:read]") {
		t.Errorf("missing task 0 line: %q", out)
	}
	if !strings.Contains(out, "task 1: [d1:write, d2:write]") {
		t.Errorf("missing task 1 line: %q", out)
	}
}
