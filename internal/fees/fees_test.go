package fees

import "testing"

func TestCalculateItemizedBreakdown(t *testing.T) {
	got := Calculate(Input{
		WeightMT:       15,
		Material:       "Chemicals",
		TruckType:      "Any",
		TrucksRequired: 1,
	})

	if got.BaseFee != 99 {
		t.Errorf("base fee = %d, want 99", got.BaseFee)
	}
	if got.WeightFee != 150 {
		t.Errorf("weight fee = %d, want 150", got.WeightFee)
	}
	if got.MaterialFee != 200 {
		t.Errorf("material fee = %d, want 200", got.MaterialFee)
	}
	if got.TruckTypeFee != 100 {
		t.Errorf("truck type fee = %d, want 100", got.TruckTypeFee)
	}
	if got.TotalFee != 549 {
		t.Errorf("total fee = %d, want 549", got.TotalFee)
	}
}

func TestCalculateWeightFee(t *testing.T) {
	// 10 per MT, capped at 200; 50 flat when weight is unknown.
	cases := []struct {
		name     string
		weightMT float64
		want     int
	}{
		{"small load", 5, 50},
		{"at the cap", 20, 200},
		{"above the cap", 35, 200},
		{"no weight given", 0, 50},
		{"negative treated as unknown", -3, 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Calculate(Input{WeightMT: tc.weightMT, TrucksRequired: 1})
			if got.WeightFee != tc.want {
				t.Errorf("weight fee = %d, want %d", got.WeightFee, tc.want)
			}
		})
	}
}

func TestCalculateUnknownLookupsDefault(t *testing.T) {
	got := Calculate(Input{
		WeightMT:       10,
		Material:       "Plutonium",
		TruckType:      "Hovercraft",
		TrucksRequired: 1,
	})
	if got.MaterialFee != 100 {
		t.Errorf("material fee = %d, want default 100", got.MaterialFee)
	}
	if got.TruckTypeFee != 100 {
		t.Errorf("truck type fee = %d, want default 100", got.TruckTypeFee)
	}
}

func TestCalculateMultiTruckMultiplier(t *testing.T) {
	one := Calculate(Input{WeightMT: 10, Material: "Textiles", TruckType: "Pick Up / Chota Hathi", TrucksRequired: 1})
	two := Calculate(Input{WeightMT: 10, Material: "Textiles", TruckType: "Pick Up / Chota Hathi", TrucksRequired: 2})
	five := Calculate(Input{WeightMT: 10, Material: "Textiles", TruckType: "Pick Up / Chota Hathi", TrucksRequired: 5})

	// 99 + 100 + 60 + 50 = 309; two trucks bill at 1.5x.
	if one.TotalFee != 309 {
		t.Fatalf("single truck total = %d, want 309", one.TotalFee)
	}
	if want := 464; two.TotalFee != want {
		t.Errorf("two trucks total = %d, want %d", two.TotalFee, want)
	}
	// Anything beyond two trucks bills the same as two.
	if five.TotalFee != two.TotalFee {
		t.Errorf("five trucks total = %d, want same as two (%d)", five.TotalFee, two.TotalFee)
	}
}

func TestCalculateTotalCap(t *testing.T) {
	got := Calculate(Input{
		WeightMT:       40,
		Material:       "Machinery",
		TruckType:      "Truck 25MT / 14 Wheel",
		TrucksRequired: 2,
	})
	// (99 + 200 + 200 + 300) * 1.5 = 1198.5, capped.
	if got.TotalFee != 1000 {
		t.Errorf("total fee = %d, want cap 1000", got.TotalFee)
	}
}

func TestCalculateDeterministic(t *testing.T) {
	in := Input{WeightMT: 12.5, Material: "FMCG", TruckType: "Flat Bed Trailers", TrucksRequired: 2}
	first := Calculate(in)
	for i := 0; i < 10; i++ {
		if got := Calculate(in); got != first {
			t.Fatalf("run %d: breakdown %+v differs from first %+v", i, got, first)
		}
	}
}
