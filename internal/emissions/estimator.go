// file: internal/emissions/estimator.go
package emissions

import (
	"math"
	"strconv"
)

// Answers is the flat bag of survey answers collected during onboarding.
// Values are either numeric strings ("150") or enumerated option strings
// ("Moderate Meat"). Every key is optional; missing numeric answers count
// as zero and missing enum answers fall back to documented defaults.
type Answers map[string]string

// Survey answer keys understood by the estimator.
const (
	KeyCarMiles        = "carMiles"
	KeyCarType         = "carType"
	KeyFlights         = "flights"
	KeyPublicTransport = "publicTransport"
	KeyMonthlyBill     = "monthlyBill"
	KeyEnergySource    = "energySource"
	KeyHomeSize        = "homeSize"
	KeyDietType        = "dietType"
	KeyLocalFood       = "localFood"
	KeyFoodWaste       = "foodWaste"
	KeyClothesShopping = "clothesShopping"
	KeySecondHand      = "secondHand"
	KeyOnlineShopping  = "onlineShopping"
	KeyRecycling       = "recycling"
	KeyComposting      = "composting"
	KeyPlastic         = "plastic"
)

// Breakdown holds the computed emissions figures in metric tons of CO2,
// rounded to 2 decimal places.
type Breakdown struct {
	Yearly         float64 `json:"yearly"`
	Monthly        float64 `json:"monthly"`
	Transportation float64 `json:"transportation"`
	Energy         float64 `json:"energy"`
	Diet           float64 `json:"diet"`
	Shopping       float64 `json:"shopping"`
	Waste          float64 `json:"waste"`
}

// ===============================
// EMISSION FACTOR TABLES
// ===============================

// Car emissions factors in kg CO2 per mile, keyed by declared vehicle type.
var carFactors = map[string]float64{
	"Hybrid":   0.25,
	"Electric": 0.10,
	"No car":   0,
}

const defaultCarFactor = 0.404 // gas car

// kgPerFlight is the average round-trip figure used per declared annual flight.
const kgPerFlight = 1000

// Public transport habit scales the combined transportation figure down.
var publicTransportMultipliers = map[string]float64{
	"Always":    0.5,
	"Often":     0.7,
	"Sometimes": 0.85,
}

// Grid emissions factors in kg CO2 per kWh, keyed by declared energy source.
var energySourceFactors = map[string]float64{
	"Coal/Gas":         0.8,
	"Some Renewable":   0.3,
	"Mostly Renewable": 0.1,
}

const defaultEnergyFactor = 0.5 // mixed grid

// kwhPerDollar converts a monthly electricity bill into consumption.
const kwhPerDollar = 10

var homeSizeMultipliers = map[string]float64{
	"Studio/1BR": 0.7,
	"2BR":        1.0,
	"3BR":        1.3,
	"4BR+":       1.6,
	"House":      2.0,
}

// Annual diet base emissions in kg CO2.
var dietBases = map[string]float64{
	"Vegan":         600,
	"Vegetarian":    1200,
	"Low Meat":      1800,
	"Moderate Meat": 2500,
	"Heavy Meat":    3600,
}

const defaultDietBase = 2500

var localFoodMultipliers = map[string]float64{
	"Always": 0.8,
	"Often":  0.9,
}

var foodWasteMultipliers = map[string]float64{
	"A lot": 1.3,
	"Some":  1.1,
}

// Annual clothes shopping base emissions in kg CO2.
var clothesBases = map[string]float64{
	"Weekly":           800,
	"Monthly":          400,
	"Few times a year": 200,
	"Rarely":           100,
}

const defaultClothesBase = 300

var secondHandMultipliers = map[string]float64{
	"Always":    0.3,
	"Often":     0.5,
	"Sometimes": 0.7,
}

// kgPerPackage is the average footprint of one online shopping delivery.
const kgPerPackage = 15

// baseWasteKg is the fixed annual household waste baseline.
const baseWasteKg = 300

var recyclingMultipliers = map[string]float64{
	"Never":     1.0,
	"Rarely":    0.9,
	"Sometimes": 0.7,
	"Often":     0.5,
	"Always":    0.3,
}

var compostingMultipliers = map[string]float64{
	"Always":    0.7,
	"Sometimes": 0.85,
}

var plasticMultipliers = map[string]float64{
	"Use regularly": 1.3,
	"Never use":     0.6,
}

// ===============================
// ESTIMATOR
// ===============================

// Estimate converts a survey answer bag into category-weighted annual CO2
// figures. The function is pure and total: any subset of answers produces a
// deterministic breakdown and it never fails.
func Estimate(answers Answers) Breakdown {
	transportation := estimateTransportation(answers)
	energy := estimateEnergy(answers)
	diet := estimateDiet(answers)
	shopping := estimateShopping(answers)
	waste := estimateWaste(answers)

	yearly := transportation + energy + diet + shopping + waste
	monthly := yearly / 12

	return Breakdown{
		Yearly:         toTons(yearly),
		Monthly:        toTons(monthly),
		Transportation: toTons(transportation),
		Energy:         toTons(energy),
		Diet:           toTons(diet),
		Shopping:       toTons(shopping),
		Waste:          toTons(waste),
	}
}

func estimateTransportation(answers Answers) float64 {
	var kg float64

	if miles := answers.number(KeyCarMiles); miles > 0 {
		factor := defaultCarFactor
		if f, ok := carFactors[answers[KeyCarType]]; ok {
			factor = f
		}
		kg += miles * 52 * factor
	}

	kg += answers.number(KeyFlights) * kgPerFlight

	// Regular public transport use displaces part of the total.
	if m, ok := publicTransportMultipliers[answers[KeyPublicTransport]]; ok {
		kg *= m
	}

	return kg
}

func estimateEnergy(answers Answers) float64 {
	var kg float64

	if bill := answers.number(KeyMonthlyBill); bill > 0 {
		annualKwh := bill * 12 * kwhPerDollar
		factor := defaultEnergyFactor
		if f, ok := energySourceFactors[answers[KeyEnergySource]]; ok {
			factor = f
		}
		kg = annualKwh * factor
	}

	if m, ok := homeSizeMultipliers[answers[KeyHomeSize]]; ok {
		kg *= m
	}

	return kg
}

func estimateDiet(answers Answers) float64 {
	kg := float64(defaultDietBase)
	if base, ok := dietBases[answers[KeyDietType]]; ok {
		kg = base
	}

	if m, ok := localFoodMultipliers[answers[KeyLocalFood]]; ok {
		kg *= m
	}
	if m, ok := foodWasteMultipliers[answers[KeyFoodWaste]]; ok {
		kg *= m
	}

	return kg
}

func estimateShopping(answers Answers) float64 {
	kg := float64(defaultClothesBase)
	if base, ok := clothesBases[answers[KeyClothesShopping]]; ok {
		kg = base
	}

	// Second-hand habit only discounts the clothes component.
	if m, ok := secondHandMultipliers[answers[KeySecondHand]]; ok {
		kg *= m
	}

	kg += answers.number(KeyOnlineShopping) * 12 * kgPerPackage

	return kg
}

func estimateWaste(answers Answers) float64 {
	kg := float64(baseWasteKg)

	if m, ok := recyclingMultipliers[answers[KeyRecycling]]; ok {
		kg *= m
	}
	if m, ok := compostingMultipliers[answers[KeyComposting]]; ok {
		kg *= m
	}
	if m, ok := plasticMultipliers[answers[KeyPlastic]]; ok {
		kg *= m
	}

	return kg
}

// number parses a numeric answer, treating missing or malformed values as 0.
func (a Answers) number(key string) float64 {
	v, ok := a[key]
	if !ok {
		return 0
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n < 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// toTons converts kg to metric tons rounded to 2 decimal places.
func toTons(kg float64) float64 {
	return math.Round(kg/1000*100) / 100
}
