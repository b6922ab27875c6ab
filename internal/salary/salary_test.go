package salary

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		text string
		min  int
		max  int
	}{
		{
			name: "usd range",
			text: "$80,000-$100,000",
			min:  73600,
			max:  92000,
		},
		{
			name: "gbp single figure",
			text: "up to £50,000 per year",
			min:  59000,
			max:  59000,
		},
		{
			name: "eur default rate",
			text: "65000-75000 EUR",
			min:  65000,
			max:  75000,
		},
		{
			name: "single figure sets both bounds",
			text: "$90000",
			min:  82800,
			max:  82800,
		},
		{
			name: "first two tokens keep textual order",
			text: "90000 to 60000",
			min:  90000,
			max:  60000,
		},
		{
			name: "thousands separators and whitespace stripped",
			text: "70 000 -\t90 000",
			min:  70000,
			max:  90000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.text)
			if got.Min == nil || got.Max == nil {
				t.Fatalf("Normalize(%q) returned empty range", tt.text)
			}
			if *got.Min != tt.min || *got.Max != tt.max {
				t.Errorf("Normalize(%q) = (%d, %d), want (%d, %d)", tt.text, *got.Min, *got.Max, tt.min, tt.max)
			}
		})
	}
}

func TestNormalizeEmpty(t *testing.T) {
	for _, text := range []string{"", "no numbers here", "competitive salary", "5"} {
		got := Normalize(text)
		if !got.Empty() {
			t.Errorf("Normalize(%q) should be empty, got (%v, %v)", text, got.Min, got.Max)
		}
	}
}

func TestNormalizeUSDWinsOverGBP(t *testing.T) {
	// When both symbols appear the USD rate applies.
	got := Normalize("$50000 (£ equivalent)")
	if got.Empty() {
		t.Fatal("expected a parsed range")
	}
	if *got.Min != 46000 {
		t.Errorf("expected USD rate, got min %d", *got.Min)
	}
}

func TestNormalizeLongDigitRuns(t *testing.T) {
	// Digit runs are capped at 7, a longer run contributes its first 7 digits.
	got := Normalize("ref 123456789")
	if got.Empty() {
		t.Fatal("expected a parsed range")
	}
	if *got.Min != 1234567 {
		t.Errorf("got min %d, want 1234567", *got.Min)
	}
}
