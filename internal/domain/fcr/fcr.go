// Package fcr calcula el índice de conversión alimenticia (kg de alimento por kg de
// peso vivo ganado) de un lote a partir de su historial de consumo y pesajes.
package fcr

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// BagWeightKg peso fijo de un bulto de alimento.
	BagWeightKg = decimal.NewFromInt(25)
	// InitialChickWeightKg peso de referencia del pollito de un día.
	InitialChickWeightKg = decimal.RequireFromString("0.045")
)

// Etiquetas de desempeño.
const (
	PerformanceExcellent    = "Excellent"
	PerformanceGood         = "Good"
	PerformanceAverage      = "Average"
	PerformanceBelowAverage = "Below Average"
	PerformancePoor         = "Poor"
	PerformanceNoData       = "Not enough data"
)

var thresholds = []struct {
	max   decimal.Decimal
	label string
}{
	{decimal.RequireFromString("1.6"), PerformanceExcellent},
	{decimal.RequireFromString("1.8"), PerformanceGood},
	{decimal.RequireFromString("2.0"), PerformanceAverage},
	{decimal.RequireFromString("2.2"), PerformanceBelowAverage},
}

// Consumption consumo de alimento en bultos con su costo unitario.
type Consumption struct {
	Date         time.Time
	QuantityBags decimal.Decimal
	UnitCost     decimal.Decimal
}

// Weighing pesaje promedio (kg) con la población que se le atribuye.
type Weighing struct {
	Date          time.Time
	AverageWeight decimal.Decimal
	Population    int
}

// Input datos del lote.
type Input struct {
	StartDate    time.Time
	Consumptions []Consumption
	Weighings    []Weighing
}

// TrendPoint FCR acumulado a la fecha de cada pesaje.
type TrendPoint struct {
	Date             time.Time
	AverageWeight    decimal.Decimal
	Population       int
	CumulativeFeedKg decimal.Decimal
	WeightGainKg     decimal.Decimal
	FCR              decimal.Decimal
}

// Result métricas calculadas (sin redondear).
type Result struct {
	TotalFeedKg     decimal.Decimal
	TotalFeedCost   decimal.Decimal
	CurrentWeight   decimal.Decimal
	WeightGain      decimal.Decimal
	Population      int
	TotalWeightGain decimal.Decimal
	FCR             decimal.Decimal
	CostPerKg       decimal.Decimal
	FeedPerBird     decimal.Decimal
	DaysOnFeed      int
	Performance     string
	Trend           []TrendPoint
}

// Compute es puro: no consulta almacenamiento ni modifica el input.
func Compute(in Input) Result {
	res := Result{
		TotalFeedKg:     decimal.Zero,
		TotalFeedCost:   decimal.Zero,
		CurrentWeight:   decimal.Zero,
		WeightGain:      decimal.Zero,
		TotalWeightGain: decimal.Zero,
		FCR:             decimal.Zero,
		CostPerKg:       decimal.Zero,
		FeedPerBird:     decimal.Zero,
		Trend:           []TrendPoint{},
	}

	for _, c := range in.Consumptions {
		res.TotalFeedKg = res.TotalFeedKg.Add(c.QuantityBags.Mul(BagWeightKg))
		res.TotalFeedCost = res.TotalFeedCost.Add(c.QuantityBags.Mul(c.UnitCost))
	}

	weighings := make([]Weighing, len(in.Weighings))
	copy(weighings, in.Weighings)
	sort.SliceStable(weighings, func(i, j int) bool { return weighings[i].Date.Before(weighings[j].Date) })

	if len(weighings) > 0 {
		latest := weighings[len(weighings)-1]
		res.CurrentWeight = latest.AverageWeight
		res.WeightGain = latest.AverageWeight.Sub(InitialChickWeightKg)
		res.Population = latest.Population
		res.TotalWeightGain = res.WeightGain.Mul(decimal.NewFromInt(int64(latest.Population)))
		if !in.StartDate.IsZero() && latest.Date.After(in.StartDate) {
			res.DaysOnFeed = int(latest.Date.Sub(in.StartDate).Hours() / 24)
		}
	}

	res.FCR = ratio(res.TotalFeedKg, res.TotalWeightGain)
	res.CostPerKg = ratio(res.TotalFeedCost, res.TotalWeightGain)
	if res.Population > 0 {
		res.FeedPerBird = res.TotalFeedKg.Div(decimal.NewFromInt(int64(res.Population)))
	}
	res.Performance = Classify(res.FCR)

	for _, w := range weighings {
		cum := decimal.Zero
		for _, c := range in.Consumptions {
			if !c.Date.After(w.Date) {
				cum = cum.Add(c.QuantityBags.Mul(BagWeightKg))
			}
		}
		gain := w.AverageWeight.Sub(InitialChickWeightKg).Mul(decimal.NewFromInt(int64(w.Population)))
		res.Trend = append(res.Trend, TrendPoint{
			Date:             w.Date,
			AverageWeight:    w.AverageWeight,
			Population:       w.Population,
			CumulativeFeedKg: cum,
			WeightGainKg:     gain,
			FCR:              ratio(cum, gain),
		})
	}
	return res
}

// Classify etiqueta el FCR contra los umbrales de referencia. 0 significa sin datos.
func Classify(v decimal.Decimal) string {
	if !v.IsPositive() {
		return PerformanceNoData
	}
	for _, th := range thresholds {
		if v.LessThanOrEqual(th.max) {
			return th.label
		}
	}
	return PerformancePoor
}

// ratio devuelve num/den, o 0 si den <= 0.
func ratio(num, den decimal.Decimal) decimal.Decimal {
	if !den.IsPositive() {
		return decimal.Zero
	}
	return num.Div(den)
}
