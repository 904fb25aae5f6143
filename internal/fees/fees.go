// Package fees computes the platform booking fee charged to post a load.
package fees

import "math"

// Fee structure: base ₹99, ₹10 per MT capped at ₹200 (₹50 default when the
// weight is unknown), material and truck-type surcharges from the tables
// below, 50% extra per additional truck up to two, global cap ₹1000.
const (
	baseFee         = 99
	weightRatePerMT = 10
	weightFeeCap    = 200
	weightFeeNoData = 50
	defaultLookup   = 100
	extraTruckScale = 0.5
	maxTrucksBilled = 2
	totalFeeCap     = 1000
)

var materialFees = map[string]int{
	"Packed Food":           100,
	"Electronics":           150,
	"Furniture":             80,
	"Machinery":             200,
	"Construction Material": 100,
	"Agricultural Products": 50,
	"Chemicals":             200, // hazardous
	"Textiles":              60,
	"Auto Parts":            120,
	"FMCG":                  80,
	"Others":                100,
}

var truckTypeFees = map[string]int{
	"Container Close Body 32FT MXL": 300,
	"Container Close Body 24FT SXL": 250,
	"Container Close Body 20FT":     200,
	"Flat Bed Trailers":             250,
	"Canters 19feet / 17feet":       150,
	"Truck 25MT / 14 Wheel":         300,
	"Truck 20MT / 12 Wheel":         250,
	"Truck 16MT / 10 Wheel":         200,
	"Truck 9MT / 6 Wheel":           150,
	"Pick Up / Chota Hathi":         50,
	"Any":                           100,
}

// Input are the load attributes the fee depends on.
type Input struct {
	WeightMT       float64
	Material       string
	TruckType      string
	TrucksRequired int
}

// Breakdown itemizes the computed fee in rupees.
type Breakdown struct {
	BaseFee      int `json:"baseFee"`
	WeightFee    int `json:"weightFee"`
	MaterialFee  int `json:"materialFee"`
	TruckTypeFee int `json:"truckTypeFee"`
	TotalFee     int `json:"totalFee"`
}

// Calculate is deterministic and side-effect-free: identical input always
// yields an identical breakdown.
func Calculate(in Input) Breakdown {
	weightFee := float64(weightFeeNoData)
	if in.WeightMT > 0 {
		weightFee = math.Min(in.WeightMT*weightRatePerMT, weightFeeCap)
	}

	materialFee, ok := materialFees[in.Material]
	if !ok {
		materialFee = defaultLookup
	}
	truckTypeFee, ok := truckTypeFees[in.TruckType]
	if !ok {
		truckTypeFee = defaultLookup
	}

	total := float64(baseFee) + weightFee + float64(materialFee) + float64(truckTypeFee)

	trucks := in.TrucksRequired
	if trucks < 1 {
		trucks = 1
	}
	if trucks > maxTrucksBilled {
		trucks = maxTrucksBilled
	}
	if trucks > 1 {
		total *= 1 + extraTruckScale*float64(trucks-1)
	}

	return Breakdown{
		BaseFee:      baseFee,
		WeightFee:    int(math.Round(weightFee)),
		MaterialFee:  materialFee,
		TruckTypeFee: truckTypeFee,
		TotalFee:     int(math.Min(math.Round(total), totalFeeCap)),
	}
}
