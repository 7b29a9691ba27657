package domain

import (
	"fmt"
	"math"
)

// UnitSystem selects the convention a reading's weight and height were
// recorded under. It fixes which BMI formula applies and is never
// re-interpreted for stored rows.
type UnitSystem string

const (
	Metric   UnitSystem = "metric"   // kg, cm
	Imperial UnitSystem = "imperial" // lb, in
)

// ParseUnitSystem converts a raw string into a UnitSystem.
func ParseUnitSystem(s string) (UnitSystem, error) {
	switch UnitSystem(s) {
	case Metric, Imperial:
		return UnitSystem(s), nil
	}
	return "", fmt.Errorf("%w: unit must be %q or %q", ErrInvalidInput, Metric, Imperial)
}

// WeightUnit returns the weight unit label for the system.
func (u UnitSystem) WeightUnit() string {
	if u == Imperial {
		return "lb"
	}
	return "kg"
}

// HeightUnit returns the height unit label for the system.
func (u UnitSystem) HeightUnit() string {
	if u == Imperial {
		return "in"
	}
	return "cm"
}

// WHO-style BMI categories.
const (
	Underweight = "Underweight"
	Normal      = "Normal"
	Overweight  = "Overweight"
	Obese       = "Obese"
)

const (
	kgToLb = 2.2046226218
	cmToIn = 0.3937007874
)

// Compute calculates a BMI value from weight and height in the given unit
// system, rounded half away from zero to 2 decimal places. The rounding mode
// matters: stored BMI values are permanent, so it is applied identically
// everywhere a BMI is produced.
//
// Metric expects kg and cm, imperial expects lb and in. Only strict
// positivity (and finiteness) is enforced here; plausibility bounds are the
// caller's job via CheckRange.
func Compute(weight, height float64, unit UnitSystem) (float64, error) {
	if !isFinite(weight) || weight <= 0 {
		return 0, fmt.Errorf("%w: weight must be a positive finite number", ErrInvalidInput)
	}
	if !isFinite(height) || height <= 0 {
		return 0, fmt.Errorf("%w: height must be a positive finite number", ErrInvalidInput)
	}

	var bmi float64
	switch unit {
	case Imperial:
		bmi = 703.0 * weight / (height * height)
	case Metric:
		hm := height / 100.0
		bmi = weight / (hm * hm)
	default:
		return 0, fmt.Errorf("%w: unknown unit system %q", ErrInvalidInput, unit)
	}
	return round2(bmi), nil
}

// Classify maps a BMI value to its category. Thresholds are strict upper
// bounds: 18.5, 25.0 and 30.0 each belong to the higher band.
func Classify(bmi float64) string {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi < 25.0:
		return Normal
	case bmi < 30.0:
		return Overweight
	default:
		return Obese
	}
}

// Advice returns the guidance text shown alongside a category.
func Advice(category string) string {
	switch category {
	case Underweight:
		return "Consider a nutritious calorie-rich diet and consult a doctor if necessary."
	case Normal:
		return "Maintain your current lifestyle. Keep active and balanced diet."
	case Overweight:
		return "Consider regular exercise, reduce calorie intake, consult healthcare professional."
	case Obese:
		return "Strongly consider consulting a healthcare professional; focus on medically supervised plan."
	}
	return ""
}

// Advisory plausibility bounds, distinct from the hard positivity guard in
// Compute. Enforced by the calling layer, not the engine.
const (
	minWeightKg, maxWeightKg = 20, 500
	minHeightCm, maxHeightCm = 50, 272
	minWeightLb, maxWeightLb = 44, 1100
	minHeightIn, maxHeightIn = 20, 107
)

// CheckRange reports ErrValidation if weight or height fall outside the
// advisory range for the unit system.
func CheckRange(weight, height float64, unit UnitSystem) error {
	wMin, wMax, hMin, hMax := float64(minWeightKg), float64(maxWeightKg), float64(minHeightCm), float64(maxHeightCm)
	if unit == Imperial {
		wMin, wMax, hMin, hMax = minWeightLb, maxWeightLb, minHeightIn, maxHeightIn
	}
	if weight < wMin || weight > wMax {
		return fmt.Errorf("%w: weight (%s) must be between %g and %g",
			ErrValidation, unit.WeightUnit(), wMin, wMax)
	}
	if height < hMin || height > hMax {
		return fmt.Errorf("%w: height (%s) must be between %g and %g",
			ErrValidation, unit.HeightUnit(), hMin, hMax)
	}
	return nil
}

// ConvertWeight converts a weight value between unit systems.
// Returns v unchanged if from == to.
func ConvertWeight(v float64, from, to UnitSystem) float64 {
	if from == to {
		return v
	}
	if from == Metric {
		return v * kgToLb
	}
	return v / kgToLb
}

// ConvertHeight converts a height value between unit systems.
// Returns v unchanged if from == to.
func ConvertHeight(v float64, from, to UnitSystem) float64 {
	if from == to {
		return v
	}
	if from == Metric {
		return v * cmToIn
	}
	return v / cmToIn
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
