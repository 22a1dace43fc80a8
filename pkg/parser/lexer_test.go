package parser

import (
	"reflect"
	"testing"
)

func TestScan_Basic(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"   ", nil},
		{"3+4", []string{"3", "+", "4"}},
		{"3 + 4", []string{"3", "+", "4"}},
		{"  12.5*(2-1) ", []string{"12.5", "*", "(", "2", "-", "1", ")"}},
		{"sqrt(16)", []string{"sqrt", "(", "16", ")"}},
		{"-5 ^ 2", []string{"-", "5", "^", "2"}},
		{"x + 1", []string{"x", "+", "1"}},
		{"rate2/3", []string{"rate2", "/", "3"}},
	}

	for _, tt := range tests {
		if got := Scan(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Scan(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestScan_WhitespaceInsensitive(t *testing.T) {
	a := Scan("3 + 4")
	b := Scan("3+4")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Scan(\"3 + 4\") = %v, Scan(\"3+4\") = %v; want identical", a, b)
	}
}

func TestScan_NumericRuns(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{".5", []string{".5"}},
		{"1e3", []string{"1e3"}},
		{"2.5E-1", []string{"2.5E-1"}},
		{"5e+2", []string{"5e+2"}},
		// An incomplete exponent ends the numeric run, mirroring how
		// far a string-to-double parse would get.
		{"5e", []string{"5", "e"}},
		{"5e+", []string{"5", "e", "+"}},
		// A second decimal point starts a new numeric run.
		{"1.2.3", []string{"1.2", ".3"}},
	}

	for _, tt := range tests {
		if got := Scan(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Scan(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestScan_LoneDotTerminates(t *testing.T) {
	// A bare '.' must be consumed as its own token rather than
	// stalling the scanner.
	if got := Scan("."); !reflect.DeepEqual(got, []string{"."}) {
		t.Errorf("Scan(\".\") = %v, want [.]", got)
	}
}
