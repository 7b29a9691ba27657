package domain_test

import (
	"errors"
	"math"
	"testing"

	"bmitrack/internal/domain"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		height float64
		unit   domain.UnitSystem
		want   float64
	}{
		{"metric typical", 70, 175, domain.Metric, 22.86},
		{"metric tall", 82.5, 190, domain.Metric, 22.85},
		{"metric heavy", 120, 170, domain.Metric, 41.52},
		{"imperial typical", 154, 69, domain.Imperial, 22.74},
		{"imperial light", 100, 64, domain.Imperial, 17.16},
		{"rounds to 2 places", 68, 172, domain.Metric, 22.99},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := domain.Compute(tc.weight, tc.height, tc.unit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("Compute(%v, %v, %q) = %v; want %v",
					tc.weight, tc.height, tc.unit, got, tc.want)
			}
		})
	}
}

func TestCompute_MatchesFormula(t *testing.T) {
	for _, w := range []float64{45, 60.5, 88, 130} {
		for _, h := range []float64{150, 168.5, 181, 200} {
			want := math.Round(w/((h/100)*(h/100))*100) / 100
			got, err := domain.Compute(w, h, domain.Metric)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !almostEqual(got, want, 1e-9) {
				t.Errorf("Compute(%v, %v, metric) = %v; want %v", w, h, got, want)
			}

			want = math.Round(703.0*w/(h*h)*100) / 100
			got, err = domain.Compute(w, h, domain.Imperial)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !almostEqual(got, want, 1e-9) {
				t.Errorf("Compute(%v, %v, imperial) = %v; want %v", w, h, got, want)
			}
		}
	}
}

func TestCompute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		height float64
		unit   domain.UnitSystem
	}{
		{"zero weight", 0, 175, domain.Metric},
		{"negative weight", -70, 175, domain.Metric},
		{"zero height", 70, 0, domain.Metric},
		{"negative height", 70, -175, domain.Imperial},
		{"NaN weight", math.NaN(), 175, domain.Metric},
		{"infinite height", 70, math.Inf(1), domain.Metric},
		{"unknown unit", 70, 175, domain.UnitSystem("stone")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := domain.Compute(tc.weight, tc.height, tc.unit)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		bmi  float64
		want string
	}{
		{10.0, domain.Underweight},
		{18.49, domain.Underweight},
		{18.5, domain.Normal},
		{24.999, domain.Normal},
		{25.0, domain.Overweight},
		{29.99, domain.Overweight},
		{30.0, domain.Obese},
		{55.0, domain.Obese},
	}
	for _, tc := range tests {
		if got := domain.Classify(tc.bmi); got != tc.want {
			t.Errorf("Classify(%v) = %q; want %q", tc.bmi, got, tc.want)
		}
	}
}

func TestClassify_Monotonic(t *testing.T) {
	rank := map[string]int{
		domain.Underweight: 0,
		domain.Normal:      1,
		domain.Overweight:  2,
		domain.Obese:       3,
	}
	prev := -1
	for bmi := 10.0; bmi <= 45.0; bmi += 0.25 {
		r := rank[domain.Classify(bmi)]
		if r < prev {
			t.Fatalf("Classify not monotonic at bmi=%v", bmi)
		}
		prev = r
	}
}

func TestAdvice(t *testing.T) {
	for _, cat := range []string{domain.Underweight, domain.Normal, domain.Overweight, domain.Obese} {
		if domain.Advice(cat) == "" {
			t.Errorf("expected advice for %q", cat)
		}
	}
	if domain.Advice("bogus") != "" {
		t.Error("expected empty advice for unknown category")
	}
}

func TestCheckRange(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		height float64
		unit   domain.UnitSystem
		wantOK bool
	}{
		{"metric ok", 70, 175, domain.Metric, true},
		{"metric bounds", 20, 272, domain.Metric, true},
		{"metric weight low", 19.9, 175, domain.Metric, false},
		{"metric weight high", 501, 175, domain.Metric, false},
		{"metric height low", 70, 49, domain.Metric, false},
		{"imperial ok", 154, 69, domain.Imperial, true},
		{"imperial weight low", 43, 69, domain.Imperial, false},
		{"imperial height high", 154, 108, domain.Imperial, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := domain.CheckRange(tc.weight, tc.height, tc.unit)
			if tc.wantOK && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.wantOK && !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestParseUnitSystem(t *testing.T) {
	if u, err := domain.ParseUnitSystem("metric"); err != nil || u != domain.Metric {
		t.Errorf("ParseUnitSystem(metric) = %v, %v", u, err)
	}
	if u, err := domain.ParseUnitSystem("imperial"); err != nil || u != domain.Imperial {
		t.Errorf("ParseUnitSystem(imperial) = %v, %v", u, err)
	}
	if _, err := domain.ParseUnitSystem("stones"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestConvertWeight(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		from, to domain.UnitSystem
		want     float64
	}{
		{"kg to lb", 100.0, domain.Metric, domain.Imperial, 220.46226218},
		{"lb to kg", 220.46226218, domain.Imperial, domain.Metric, 100.0},
		{"same system", 80.0, domain.Metric, domain.Metric, 80.0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.ConvertWeight(tc.value, tc.from, tc.to)
			if !almostEqual(got, tc.want, 0.001) {
				t.Errorf("ConvertWeight(%v, %q, %q) = %v; want %v",
					tc.value, tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestConvertHeight(t *testing.T) {
	got := domain.ConvertHeight(175, domain.Metric, domain.Imperial)
	if !almostEqual(got, 68.897, 0.001) {
		t.Errorf("ConvertHeight(175, metric, imperial) = %v; want ~68.897", got)
	}
	back := domain.ConvertHeight(got, domain.Imperial, domain.Metric)
	if !almostEqual(back, 175, 0.001) {
		t.Errorf("round trip = %v; want 175", back)
	}
}
