package inputval

import "testing"

func TestValidate(t *testing.T) {
	type TestInput struct {
		Name  string `validate:"required,max=10" label:"Full name"`
		Notes string `validate:"max=20" label:"Notes"`
	}

	tests := []struct {
		name       string
		input      TestInput
		wantErrors bool
		wantFirst  string
	}{
		{
			name:       "valid",
			input:      TestInput{Name: "John"},
			wantErrors: false,
		},
		{
			name:       "missing name",
			input:      TestInput{Name: ""},
			wantErrors: true,
			wantFirst:  "Full name is required.",
		},
		{
			name:       "name too long",
			input:      TestInput{Name: "VeryLongNameThatExceedsLimit"},
			wantErrors: true,
			wantFirst:  "Full name must be at most 10 characters.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.input)

			if result.HasErrors() != tt.wantErrors {
				t.Errorf("Validate() HasErrors = %v, want %v", result.HasErrors(), tt.wantErrors)
			}

			if tt.wantErrors && result.First() != tt.wantFirst {
				t.Errorf("Validate() First() = %q, want %q", result.First(), tt.wantFirst)
			}
		})
	}
}

func TestResult_All(t *testing.T) {
	t.Run("no errors", func(t *testing.T) {
		r := &Result{}
		if r.All() != "" {
			t.Errorf("All() = %q, want empty", r.All())
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		r := &Result{
			Errors: []FieldError{
				{Message: "Error 1"},
				{Message: "Error 2"},
			},
		}
		want := "Error 1; Error 2"
		if r.All() != want {
			t.Errorf("All() = %q, want %q", r.All(), want)
		}
	})
}

func TestResult_First(t *testing.T) {
	t.Run("no errors", func(t *testing.T) {
		r := &Result{}
		if r.First() != "" {
			t.Errorf("First() = %q, want empty", r.First())
		}
	})

	t.Run("with errors", func(t *testing.T) {
		r := &Result{
			Errors: []FieldError{
				{Message: "First error"},
				{Message: "Second error"},
			},
		}
		if r.First() != "First error" {
			t.Errorf("First() = %q, want %q", r.First(), "First error")
		}
	})
}
