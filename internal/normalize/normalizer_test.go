package normalize

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tirtawidya/aruskas/internal/model"
)

func TestToAmount(t *testing.T) {
	tests := []struct {
		input any
		name  string
		want  string
	}{
		{name: "numeric text", input: "150.5", want: "150.5"},
		{name: "integer text", input: "2400000", want: "2400000"},
		{name: "padded text", input: "  99.90 ", want: "99.9"},
		{name: "non-numeric text", input: "abc", want: "0"},
		{name: "empty text", input: "", want: "0"},
		{name: "nil", input: nil, want: "0"},
		{name: "float", input: 12.25, want: "12.25"},
		{name: "int", input: 42, want: "42"},
		{name: "negative clamps to zero", input: "-500", want: "0"},
		{name: "negative float clamps to zero", input: -3.5, want: "0"},
		{name: "bool is not an amount", input: true, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToAmount(tt.input)
			want := decimal.RequireFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("ToAmount(%v) = %s, want %s", tt.input, got, want)
			}
		})
	}
}

func TestToAmount_NaN(t *testing.T) {
	nan := 0.0
	nan /= nan
	if got := ToAmount(nan); !got.IsZero() {
		t.Errorf("ToAmount(NaN) = %s, want 0", got)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "plain date",
			input: "2024-03-05",
			want:  time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339 keeps written calendar date",
			input: "2024-01-31T23:30:00+07:00",
			want:  time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "datetime",
			input: "2024-06-10 14:30:00",
			want:  time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "not-a-date", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRecord_DirectionInference(t *testing.T) {
	tests := []struct {
		raw     RawRecord
		name    string
		want    model.Direction
		wantErr bool
	}{
		{
			name: "ledger masuk is inflow",
			raw:  RawLedgerRecord{Date: "2024-01-10", Amount: "100", Flow: "masuk"},
			want: model.DirectionInflow,
		},
		{
			name: "ledger keluar is outflow",
			raw:  RawLedgerRecord{Date: "2024-01-10", Amount: "100", Flow: "keluar"},
			want: model.DirectionOutflow,
		},
		{
			name:    "ledger unknown flow is rejected",
			raw:     RawLedgerRecord{Date: "2024-01-10", Amount: "100", Flow: "sideways"},
			wantErr: true,
		},
		{
			name: "maintenance is always outflow",
			raw:  RawMaintenanceRecord{Date: "2024-01-10", Cost: "100"},
			want: model.DirectionOutflow,
		},
		{
			name: "procurement is always outflow",
			raw:  RawProcurementRecord{Date: "2024-01-10", TotalCost: "100", Supplier: "PT Bahan"},
			want: model.DirectionOutflow,
		},
		{
			name: "production payroll is always outflow",
			raw:  RawProductionPayrollRecord{PaidAt: "2024-01-10", Wage: "100", Worker: "crew"},
			want: model.DirectionOutflow,
		},
		{
			name: "driver payroll is always outflow",
			raw:  RawDriverPayrollRecord{PaidAt: "2024-01-10", Wage: "100", Driver: "crew"},
			want: model.DirectionOutflow,
		},
		{
			name: "sales is always inflow",
			raw:  RawSalesRecord{Date: "2024-01-10", Total: "100", Customer: "Toko"},
			want: model.DirectionInflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := Record(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Record() expected error, got %+v", entry)
				}
				return
			}
			if err != nil {
				t.Fatalf("Record() unexpected error: %v", err)
			}
			if entry.Direction != tt.want {
				t.Errorf("Record() direction = %s, want %s", entry.Direction, tt.want)
			}
			if entry.Source != tt.raw.Source() {
				t.Errorf("Record() source = %s, want %s", entry.Source, tt.raw.Source())
			}
		})
	}
}

func TestRecords_SoftRejection(t *testing.T) {
	raws := []RawRecord{
		RawSalesRecord{Date: "2024-02-01", Total: "150.5", Customer: "Toko"},
		RawSalesRecord{Date: "no-date-here", Total: "999", Customer: "Toko"},
		RawLedgerRecord{Date: "2024-02-03", Amount: "abc", Flow: "masuk", Description: "typo amount"},
		RawMaintenanceRecord{Date: "", Cost: "100"},
	}

	res := Records(raws)

	if len(res.Entries) != 2 {
		t.Fatalf("Records() kept %d entries, want 2", len(res.Entries))
	}
	if len(res.Skipped) != 2 {
		t.Fatalf("Records() skipped %d, want 2", len(res.Skipped))
	}

	// Bad amount is coerced to zero, not rejected.
	if !res.Entries[1].Amount.IsZero() {
		t.Errorf("non-numeric amount = %s, want 0", res.Entries[1].Amount)
	}
	if got := res.Entries[0].Amount; !got.Equal(decimal.RequireFromString("150.5")) {
		t.Errorf("amount = %s, want 150.5", got)
	}

	// Both rejections were date failures.
	for _, s := range res.Skipped {
		if s.Reason == "" {
			t.Errorf("skipped record has empty reason")
		}
	}
}

func TestRecords_EmptyBatch(t *testing.T) {
	res := Records(nil)
	if len(res.Entries) != 0 || len(res.Skipped) != 0 {
		t.Errorf("Records(nil) = %+v, want empty result", res)
	}
}
