package pricing

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// FreeShippingThreshold is exclusive: a subtotal strictly above it
	// ships free.
	FreeShippingThreshold = 1999

	// LocalRegion ships at the reduced base rate; every other region,
	// including an unselected one, pays the remote rate.
	LocalRegion = "Gujarat"

	LocalRatePerKg  = 50
	RemoteRatePerKg = 80

	// HeavyCartThresholdKg is exclusive: strictly heavier carts pay a
	// doubled per-kilogram rate.
	HeavyCartThresholdKg = 1.0
)

// ComputeShipping applies the tiered shipping table. Weight is billed
// in whole kilograms, rounded up, so a zero-weight cart costs nothing
// regardless of the threshold.
func ComputeShipping(subtotal decimal.Decimal, totalWeightKg float64, region string) decimal.Decimal {
	if subtotal.GreaterThan(decimal.NewFromInt(FreeShippingThreshold)) {
		return decimal.Zero
	}

	ratePerKg := int64(RemoteRatePerKg)
	if strings.EqualFold(strings.TrimSpace(region), LocalRegion) {
		ratePerKg = LocalRatePerKg
	}
	if totalWeightKg > HeavyCartThresholdKg {
		ratePerKg *= 2
	}

	billedKg := int64(math.Ceil(totalWeightKg))
	return decimal.NewFromInt(billedKg * ratePerKg)
}
