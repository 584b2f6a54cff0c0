package currency

import "testing"

func TestFormat(t *testing.T) {
	usd := Currency{Code: "USD", Symbol: "$"}
	inr := Currency{Code: "INR", Symbol: "₹"}

	tests := []struct {
		name   string
		cur    Currency
		amount any
		want   string
	}{
		{"nil formats zero", usd, nil, "$0.00"},
		{"nil pointer formats zero", usd, (*float64)(nil), "$0.00"},
		{"unparsable string formats zero", usd, "not-a-number", "$0.00"},
		{"string amount", usd, "12.5", "$12.50"},
		{"float amount", usd, 12.5, "$12.50"},
		{"int amount", usd, 7, "$7.00"},
		{"rounds to two decimals", usd, 3.14159, "$3.14"},
		{"thousands separators", inr, 1234567.891, "₹1,234,567.89"},
		{"negative balance", usd, -42.0, "$-42.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cur.Format(tt.amount); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestCatalog(t *testing.T) {
	if len(Available()) != 12 {
		t.Fatalf("catalog must hold 12 currencies, got %d", len(Available()))
	}

	if Default().Code != "INR" {
		t.Errorf("default currency = %s, want INR", Default().Code)
	}

	c, ok := ByCode("usd")
	if !ok || c.Symbol != "$" {
		t.Errorf("ByCode(usd) = %+v, %v", c, ok)
	}

	if _, ok := ByCode("XXX"); ok {
		t.Error("unknown code must not resolve")
	}

	// Available returns a copy, not the catalog itself.
	list := Available()
	list[0].Code = "ZZZ"
	if Default().Code != "INR" {
		t.Error("mutating the returned slice must not affect the catalog")
	}
}
