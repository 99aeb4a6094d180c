package domain

import "testing"

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in      string
		want    Money
		wantErr bool
	}{
		{"12.34", Cents(1234), false},
		{"12,34", Cents(1234), false},
		{"12", Cents(1200), false},
		{"12.5", Cents(1250), false},
		{"0.005", Cents(1), false}, // third decimal rounds half-up
		{"0.004", Cents(0), false},
		{"-3.50", Cents(-350), false},
		{"+3.50", Cents(350), false},
		{".50", Cents(50), false},
		{"", 0, true},
		{"abc", 0, true},
		{"1.2.3", 0, true},
		{"12.3x", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMoney(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMoney(%q): expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMoney(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMoney(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMoneyString(t *testing.T) {
	tests := []struct {
		in   Money
		want string
	}{
		{Cents(1234), "12.34"},
		{Cents(5), "0.05"},
		{Cents(-350), "-3.50"},
		{Units(1000), "1000.00"},
		{0, "0.00"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("Money(%d).String() = %q, want %q", int64(tt.in), got, tt.want)
		}
	}
}

func TestMoneyCeilUnits(t *testing.T) {
	tests := []struct {
		in   Money
		want Money
	}{
		{Cents(10001), Units(101)},
		{Units(100), Units(100)},
		{Cents(99), Units(1)},
		{Cents(-150), Units(-1)},
	}
	for _, tt := range tests {
		if got := tt.in.CeilUnits(); got != tt.want {
			t.Errorf("CeilUnits(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMeanMoney(t *testing.T) {
	if got := MeanMoney(Units(600), 3); got != Units(200) {
		t.Errorf("MeanMoney(600, 3) = %v, want 200.00", got)
	}
	if got := MeanMoney(Cents(100), 3); got != Cents(33) {
		t.Errorf("MeanMoney(1.00, 3) = %v, want 0.33", got)
	}
	if got := MeanMoney(Units(500), 0); got != 0 {
		t.Errorf("MeanMoney(_, 0) = %v, want 0", got)
	}
}

func TestMoneyJSON(t *testing.T) {
	b, err := Cents(1250).MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(b) != "12.50" {
		t.Errorf("MarshalJSON = %s, want 12.50", b)
	}

	var m Money
	if err := m.UnmarshalJSON([]byte(`"99.99"`)); err != nil {
		t.Fatalf("UnmarshalJSON quoted: %v", err)
	}
	if m != Cents(9999) {
		t.Errorf("UnmarshalJSON quoted = %v, want 99.99", m)
	}
	if err := m.UnmarshalJSON([]byte(`100`)); err != nil {
		t.Fatalf("UnmarshalJSON number: %v", err)
	}
	if m != Units(100) {
		t.Errorf("UnmarshalJSON number = %v, want 100.00", m)
	}
}
