package input

import (
	"errors"
	"testing"

	"github.com/theirongolddev/savebonus/internal/model"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1000", 1000},
		{" 1,234.50 ", 1234.5},
		{"$2,000", 2000},
		{"-812.30", -812.3},
		{"-$15", -15},
		{"0", 0},
		{"+100", 100},
		{"+100.00", 100},
		{"+$1,000.50", 1000.5},
		{"- 20", -20},
		{"12,345,678", 12345678},
		{".5", 0.5},
	}
	for _, c := range cases {
		got, err := ParseAmount(FieldAvailableBalance, c.in)
		if err != nil {
			t.Errorf("ParseAmount(%q) unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseAmount_Malformed(t *testing.T) {
	for _, in := range []string{"", "abc", "12abc", "--5", "+-5", "-+5", "++5", "NaN", "inf", "$",
		"1,2,3", ",1000", "1000,", "1,0000", "12,34.5", "0x1p4", "0x10", "1e3", "1.2.3", "$-5", "."} {
		_, err := ParseAmount(FieldCurrentMonthADB, in)
		if !errors.Is(err, ErrMalformedNumber) {
			t.Errorf("ParseAmount(%q) err = %v, want ErrMalformedNumber", in, err)
		}
		var fe *FieldError
		if errors.As(err, &fe) && fe.Field != FieldCurrentMonthADB {
			t.Errorf("ParseAmount(%q) field = %q, want %q", in, fe.Field, FieldCurrentMonthADB)
		}
	}
}

func TestParseDay(t *testing.T) {
	if got, err := ParseDay(FieldBalanceAsOf, " 14 "); err != nil || got != 14 {
		t.Fatalf("ParseDay(\" 14 \") = %d, %v; want 14, nil", got, err)
	}
	if _, err := ParseDay(FieldBalanceAsOf, "14.5"); !errors.Is(err, ErrMalformedNumber) {
		t.Fatalf("ParseDay(\"14.5\") err = %v, want ErrMalformedNumber", err)
	}
}

func TestParseBuffer_DefaultWhenBlank(t *testing.T) {
	got, err := ParseBuffer("   ", model.DefaultBuffer)
	if err != nil || got != 50 {
		t.Fatalf("ParseBuffer(blank) = %v, %v; want 50, nil", got, err)
	}
	got, err = ParseBuffer("25", model.DefaultBuffer)
	if err != nil || got != 25 {
		t.Fatalf("ParseBuffer(\"25\") = %v, %v; want 25, nil", got, err)
	}
}

func TestValidate(t *testing.T) {
	ok := model.Inputs{AvailableBalance: 10, BalanceAsOf: 30, Buffer: 0}
	if err := Validate(ok, 30); err != nil {
		t.Fatalf("Validate(as-of on last day) = %v, want nil", err)
	}

	bad := []struct {
		name string
		in   model.Inputs
	}{
		{"as-of zero", model.Inputs{BalanceAsOf: 0}},
		{"as-of past month", model.Inputs{BalanceAsOf: 31}},
		{"negative balance", model.Inputs{AvailableBalance: -1, BalanceAsOf: 5}},
		{"negative buffer", model.Inputs{BalanceAsOf: 5, Buffer: -0.5}},
	}
	for _, c := range bad {
		if err := Validate(c.in, 30); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("%s: Validate err = %v, want ErrInvalidRange", c.name, err)
		}
	}
}

func TestFieldError_Message(t *testing.T) {
	err := CheckBalanceAsOf(32, 31)
	want := `balance as of: "32" is out of range (must be between 1 and 31)`
	if err == nil || err.Error() != want {
		t.Fatalf("err = %v, want %q", err, want)
	}
}

func TestParse(t *testing.T) {
	in, err := Parse(Raw{
		AvailableBalance:       "1,000",
		CurrentMonthADB:        "2000",
		ADBIncreaseVsLastMonth: "100",
		BalanceAsOf:            "10",
	}, 30, model.DefaultBuffer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := model.Inputs{AvailableBalance: 1000, CurrentMonthADB: 2000, ADBIncreaseVsLastMonth: 100, BalanceAsOf: 10, Buffer: 50}
	if in != want {
		t.Fatalf("Parse = %+v, want %+v", in, want)
	}

	_, err = Parse(Raw{AvailableBalance: "1", CurrentMonthADB: "1", ADBIncreaseVsLastMonth: "x", BalanceAsOf: "1"}, 30, 50)
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != FieldADBIncrease {
		t.Fatalf("Parse err = %v, want FieldError for %q", err, FieldADBIncrease)
	}
}
