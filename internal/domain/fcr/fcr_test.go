package fcr

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCompute_LoteDeMilAves(t *testing.T) {
	// 100 bultos = 2500 kg de alimento; último pesaje 2.2 kg; 1000 aves vivas.
	in := Input{
		StartDate: day("2026-01-01"),
		Consumptions: []Consumption{
			{Date: day("2026-01-10"), QuantityBags: decimal.NewFromInt(40), UnitCost: decimal.NewFromInt(900)},
			{Date: day("2026-02-01"), QuantityBags: decimal.NewFromInt(60), UnitCost: decimal.NewFromInt(950)},
		},
		Weighings: []Weighing{
			{Date: day("2026-02-12"), AverageWeight: decimal.RequireFromString("2.2"), Population: 1000},
			{Date: day("2026-01-20"), AverageWeight: decimal.RequireFromString("0.9"), Population: 1000},
		},
	}

	res := Compute(in)

	assert.True(t, decimal.NewFromInt(2500).Equal(res.TotalFeedKg))
	assert.True(t, decimal.NewFromInt(93000).Equal(res.TotalFeedCost))
	assert.True(t, decimal.RequireFromString("2.155").Equal(res.WeightGain))
	assert.True(t, decimal.NewFromInt(2155).Equal(res.TotalWeightGain))
	assert.Equal(t, "1.16", res.FCR.Round(2).String())
	assert.Equal(t, PerformanceExcellent, res.Performance)
	assert.Equal(t, "2.5", res.FeedPerBird.String())
	assert.Equal(t, 42, res.DaysOnFeed)

	require.Len(t, res.Trend, 2)
	assert.Equal(t, day("2026-01-20"), res.Trend[0].Date, "la tendencia va en orden cronológico")
	assert.True(t, decimal.NewFromInt(1000).Equal(res.Trend[0].CumulativeFeedKg))
	assert.True(t, decimal.NewFromInt(2500).Equal(res.Trend[1].CumulativeFeedKg))
}

func TestCompute_SinPesajes(t *testing.T) {
	res := Compute(Input{Consumptions: []Consumption{{QuantityBags: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(5)}}})

	assert.True(t, res.FCR.IsZero())
	assert.True(t, res.CostPerKg.IsZero())
	assert.Equal(t, PerformanceNoData, res.Performance)
	assert.Empty(t, res.Trend)
}

func TestCompute_PesoMenorAlInicial(t *testing.T) {
	res := Compute(Input{
		Consumptions: []Consumption{{QuantityBags: decimal.NewFromInt(1)}},
		Weighings:    []Weighing{{Date: day("2026-01-02"), AverageWeight: decimal.RequireFromString("0.04"), Population: 100}},
	})
	assert.True(t, res.TotalWeightGain.IsNegative())
	assert.True(t, res.FCR.IsZero())
	assert.Equal(t, PerformanceNoData, res.Performance)
}

func TestClassify(t *testing.T) {
	cases := map[string]string{
		"0":    PerformanceNoData,
		"1.2":  PerformanceExcellent,
		"1.6":  PerformanceExcellent,
		"1.61": PerformanceGood,
		"1.8":  PerformanceGood,
		"2.0":  PerformanceAverage,
		"2.2":  PerformanceBelowAverage,
		"2.21": PerformancePoor,
	}
	for in, want := range cases {
		assert.Equal(t, want, Classify(decimal.RequireFromString(in)), in)
	}
}

// Si la ganancia total de peso es <= 0 el FCR y el costo por kg son exactamente 0.
func TestCompute_GuardaDenominador(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("fcr = 0 cuando la ganancia no es positiva", prop.ForAll(
		func(bags int64, weightMilli int64, population int) bool {
			res := Compute(Input{
				Consumptions: []Consumption{{Date: day("2026-01-01"), QuantityBags: decimal.NewFromInt(bags), UnitCost: decimal.NewFromInt(10)}},
				Weighings: []Weighing{{
					Date:          day("2026-01-05"),
					AverageWeight: decimal.New(weightMilli, -3),
					Population:    population,
				}},
			})
			if res.TotalWeightGain.IsPositive() {
				return res.FCR.IsPositive() || bags == 0
			}
			return res.FCR.IsZero() && res.CostPerKg.IsZero()
		},
		gen.Int64Range(0, 1000),
		gen.Int64Range(0, 3000),
		gen.IntRange(0, 5000),
	))

	properties.TestingRun(t)
}
