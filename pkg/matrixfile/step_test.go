// SPDX-License-Identifier: MPL-2.0

package matrixfile

import (
	"testing"
	"time"
)

func TestCommandStepValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		step    CommandStep
		wantErr bool
	}{
		{name: "minimal step", step: CommandStep{Program: "pytest"}, wantErr: false},
		{name: "full step", step: CommandStep{Program: "pytest", Args: []string{"-x"}, WorkDir: "tests", ExpectedExit: 0, Timeout: "30s"}, wantErr: false},
		{name: "empty program", step: CommandStep{}, wantErr: true},
		{name: "negative expected exit", step: CommandStep{Program: "x", ExpectedExit: -1}, wantErr: true},
		{name: "garbage timeout", step: CommandStep{Program: "x", Timeout: "soon"}, wantErr: true},
		{name: "negative timeout", step: CommandStep{Program: "x", Timeout: "-5s"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.step.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCommandStepTimeoutDuration(t *testing.T) {
	t.Parallel()

	step := CommandStep{Program: "pytest", Timeout: "90s"}
	d, err := step.TimeoutDuration()
	if err != nil {
		t.Fatalf("TimeoutDuration() error = %v", err)
	}
	if d != 90*time.Second {
		t.Errorf("TimeoutDuration() = %v, want 90s", d)
	}

	none := CommandStep{Program: "pytest"}
	d, err = none.TimeoutDuration()
	if err != nil {
		t.Fatalf("TimeoutDuration() error = %v", err)
	}
	if d != 0 {
		t.Errorf("TimeoutDuration() = %v, want 0 for unset timeout", d)
	}
}

func TestCommandStepString(t *testing.T) {
	t.Parallel()

	step := CommandStep{Program: "pytest", Args: []string{"-x", "tests"}}
	if got := step.String(); got != "pytest -x tests" {
		t.Errorf("String() = %q, want %q", got, "pytest -x tests")
	}
}
