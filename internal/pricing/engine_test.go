package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseRate(t *testing.T) {
	assert.Equal(t, 3.6, BaseRate("AF-CENTRAL", "EU-WEST"))
	assert.Equal(t, 1.2, BaseRate("EU-WEST", "EU-WEST"))

	// Для неизвестной пары зон действует тариф по умолчанию.
	assert.Equal(t, defaultBaseRate, BaseRate("AF-WEST", "ASIA"))
	assert.Equal(t, defaultBaseRate, BaseRate("UNKNOWN", "EU-WEST"))
}

func TestVolumetricWeight(t *testing.T) {
	assert.Equal(t, 20.0, VolumetricWeight(100, 50, 20))
	assert.Equal(t, 0.0, VolumetricWeight(0, 50, 20))
}

func TestChargeableWeight(t *testing.T) {
	// Лёгкий объёмный груз тарифицируется по объёмному весу.
	light := Package{CargoType: "general", WeightKg: 10, LengthCm: 100, WidthCm: 50, HeightCm: 20}
	assert.Equal(t, 20.0, ChargeableWeight(light))

	// Тяжёлый компактный груз — по фактическому.
	heavy := Package{CargoType: "general", WeightKg: 30, LengthCm: 100, WidthCm: 50, HeightCm: 20}
	assert.Equal(t, 30.0, ChargeableWeight(heavy))
}

func TestEstimatePackage(t *testing.T) {
	p := Package{CargoType: "general", WeightKg: 10, Quantity: 1}

	line, err := EstimatePackage("AF-CENTRAL", "EU-WEST", "air", "standard", p, nil)
	require.NoError(t, err)

	// 3.6 EUR/кг * 10 кг * 1.0 (general) * 2.5 (air) * 1.0 (standard)
	assert.Equal(t, 90.0, line.UnitPrice)
	assert.Equal(t, 90.0, line.LineTotal)
	assert.Equal(t, 10.0, line.ChargeableWeight)
}

func TestEstimatePackagePriorityFactor(t *testing.T) {
	p := Package{CargoType: "general", WeightKg: 10, Quantity: 1}

	standard, err := EstimatePackage("AF-CENTRAL", "EU-WEST", "air", "standard", p, nil)
	require.NoError(t, err)
	express, err := EstimatePackage("AF-CENTRAL", "EU-WEST", "air", "express", p, nil)
	require.NoError(t, err)

	// Надбавка за срочность — прямой коэффициент 1.5, а не отношение двух расчётов.
	assert.Equal(t, standard.UnitPrice*1.5, express.UnitPrice)
}

func TestEstimatePackageMinimumCharge(t *testing.T) {
	p := Package{CargoType: "documents", WeightKg: 1, Quantity: 1}

	line, err := EstimatePackage("EU-WEST", "EU-WEST", "sea", "standard", p, nil)
	require.NoError(t, err)

	// 1.2 * 1 * 0.8 * 0.7 = 0.672 — позиция поднимается до минимальной цены.
	assert.Equal(t, MinimumCharge, line.UnitPrice)
}

func TestEstimatePackageSurchargeRules(t *testing.T) {
	p := Package{CargoType: "general", WeightKg: 10, Quantity: 1}
	rules := []Rule{
		{Name: "Топливный сбор", Formula: "Base * 0.1"},
		{Name: "Обработка", Formula: "Quantity * 2"},
	}

	line, err := EstimatePackage("AF-CENTRAL", "EU-WEST", "air", "standard", p, rules)
	require.NoError(t, err)

	// base 90, надбавки 9 + 2
	assert.Equal(t, 11.0, line.Surcharge)
	assert.Equal(t, 101.0, line.UnitPrice)
}

func TestEstimatePackageBadRuleFormula(t *testing.T) {
	p := Package{CargoType: "general", WeightKg: 10}

	_, err := EstimatePackage("AF-CENTRAL", "EU-WEST", "air", "standard", p, []Rule{
		{Name: "broken", Formula: "Base *"},
	})
	assert.Error(t, err)
}

func TestEstimatePackageValidation(t *testing.T) {
	base := Package{CargoType: "general", WeightKg: 10}

	bad := base
	bad.CargoType = "liquid"
	_, err := EstimatePackage("AF-CENTRAL", "EU-WEST", "air", "standard", bad, nil)
	assert.Error(t, err)

	_, err = EstimatePackage("AF-CENTRAL", "EU-WEST", "teleport", "standard", base, nil)
	assert.Error(t, err)

	_, err = EstimatePackage("AF-CENTRAL", "EU-WEST", "air", "urgent", base, nil)
	assert.Error(t, err)

	bad = base
	bad.WeightKg = 0
	_, err = EstimatePackage("AF-CENTRAL", "EU-WEST", "air", "standard", bad, nil)
	assert.Error(t, err)
}

func TestEstimateQuoteAggregation(t *testing.T) {
	packages := []Package{
		{CargoType: "general", WeightKg: 10, Quantity: 2},
		{CargoType: "fragile", WeightKg: 15, Quantity: 1},
	}

	estimate, err := EstimateQuote("AF-CENTRAL", "EU-WEST", "road", "standard", packages, nil)
	require.NoError(t, err)

	// Позиция 1: 3.6 * 10 * 1.0 = 36, две единицы = 72.
	// Позиция 2: 3.6 * 15 * 1.3 = 70.2.
	assert.Equal(t, 142.2, estimate.Total)
	assert.Equal(t, 35.0, estimate.TotalWeight)
	assert.Equal(t, "EUR", estimate.Currency)
	require.Len(t, estimate.Lines, 2)
	assert.Equal(t, 72.0, estimate.Lines[0].LineTotal)
	assert.Equal(t, 70.2, estimate.Lines[1].LineTotal)

	// Доминирующий тип груза — по суммарному весу: general 20 кг против fragile 15 кг.
	assert.Equal(t, "general", estimate.DominantCargoType)
}

func TestEstimateQuoteDominantCargoByAggregateWeight(t *testing.T) {
	// Одна тяжёлая позиция dangerous перевешивает несколько general.
	packages := []Package{
		{CargoType: "general", WeightKg: 5, Quantity: 2},
		{CargoType: "dangerous", WeightKg: 40, Quantity: 1},
	}

	estimate, err := EstimateQuote("EU-WEST", "NA", "sea", "standard", packages, nil)
	require.NoError(t, err)
	assert.Equal(t, "dangerous", estimate.DominantCargoType)
}

func TestEstimateQuoteExpressScalesTotal(t *testing.T) {
	packages := []Package{
		{CargoType: "general", WeightKg: 10, Quantity: 2},
		{CargoType: "fragile", WeightKg: 15, Quantity: 1},
	}

	standard, err := EstimateQuote("AF-CENTRAL", "EU-WEST", "road", "standard", packages, nil)
	require.NoError(t, err)
	express, err := EstimateQuote("AF-CENTRAL", "EU-WEST", "road", "express", packages, nil)
	require.NoError(t, err)

	assert.InDelta(t, standard.Total*1.5, express.Total, 0.01)
}

func TestEstimateQuoteEmpty(t *testing.T) {
	_, err := EstimateQuote("AF-CENTRAL", "EU-WEST", "road", "standard", nil, nil)
	assert.Error(t, err)
}

func TestValidateFormula(t *testing.T) {
	assert.NoError(t, ValidateFormula("Base * 0.12"))
	assert.NoError(t, ValidateFormula("Weight * 0.05 + Quantity"))
	assert.Error(t, ValidateFormula("Base *"))
	// Формула обязана возвращать число, а не логическое значение.
	assert.Error(t, ValidateFormula("Base > 10"))
}
