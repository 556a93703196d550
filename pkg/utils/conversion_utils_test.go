package utils

import "testing"

func TestInt64ToStr(t *testing.T) {
	tests := []struct {
		name string
		in   int64
		want string
	}{
		{"Zero", 0, "0"},
		{"Positive", 42, "42"},
		{"Negative", -7, "-7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Int64ToStr(tt.in); got != tt.want {
				t.Errorf("Int64ToStr(%d) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStrToInt64(t *testing.T) {
	if got, err := StrToInt64("123"); err != nil || got != 123 {
		t.Errorf("StrToInt64(\"123\") = %d, %v, want 123, nil", got, err)
	}
	if got, err := StrToInt64("not-a-number"); err == nil {
		t.Errorf("StrToInt64(\"not-a-number\") = %d, want error", got)
	}
	if got, err := StrToInt64(""); err == nil {
		t.Errorf("StrToInt64(\"\") = %d, want error", got)
	}
}

func TestNewNullString(t *testing.T) {
	if got := NewNullString(""); got != nil {
		t.Errorf("NewNullString(\"\") = %q, want nil", *got)
	}
	got := NewNullString("hello")
	if got == nil || *got != "hello" {
		t.Errorf("NewNullString(\"hello\") = %v, want pointer to \"hello\"", got)
	}
}
