// kmapin-logistics/internal/pricing/engine.go
// Ценовой движок котировок. Все расчёты ведутся в EUR (референсная валюта);
// конвертация в валюту отображения происходит отдельно, см. currency.go.
package pricing

import (
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
)

const (
	// VolumetricDivisor - стандартный делитель для объёмного веса (см³/кг).
	VolumetricDivisor = 5000.0

	// MinimumCharge - минимальная цена одной грузовой позиции, EUR.
	MinimumCharge = 25.0

	// defaultBaseRate применяется для пары зон, отсутствующей в тарифной таблице.
	defaultBaseRate = 4.5
)

// zoneRates - базовый тариф EUR/кг по паре (зона отправления, зона назначения).
var zoneRates = map[string]map[string]float64{
	"AF-CENTRAL": {
		"AF-CENTRAL": 1.8,
		"AF-WEST":    2.4,
		"EU-WEST":    3.6,
		"EU-EAST":    4.0,
		"NA":         5.2,
		"ASIA":       4.8,
	},
	"AF-WEST": {
		"AF-CENTRAL": 2.4,
		"AF-WEST":    1.6,
		"EU-WEST":    3.4,
		"NA":         5.0,
	},
	"EU-WEST": {
		"AF-CENTRAL": 3.6,
		"AF-WEST":    3.4,
		"EU-WEST":    1.2,
		"EU-EAST":    1.6,
		"NA":         2.8,
		"ASIA":       3.2,
	},
	"EU-EAST": {
		"EU-WEST": 1.6,
		"EU-EAST": 1.1,
		"ASIA":    2.9,
	},
	"NA": {
		"EU-WEST": 2.8,
		"NA":      1.4,
		"ASIA":    3.8,
	},
	"ASIA": {
		"EU-WEST": 3.2,
		"ASIA":    1.5,
	},
}

// Коэффициенты по типу груза.
var cargoFactors = map[string]float64{
	"documents":  0.8,
	"general":    1.0,
	"fragile":    1.3,
	"perishable": 1.5,
	"dangerous":  1.8,
}

// Коэффициенты по виду транспорта.
var modeFactors = map[string]float64{
	"sea":  0.7,
	"rail": 0.9,
	"road": 1.0,
	"air":  2.5,
}

// Коэффициенты срочности. Надбавка за приоритет берётся напрямую из таблицы,
// а не восстанавливается делением двух контрольных расчётов.
var priorityFactors = map[string]float64{
	"standard": 1.0,
	"express":  1.5,
}

// Package - входные данные одной грузовой позиции.
type Package struct {
	CargoType string
	WeightKg  float64
	LengthCm  float64
	WidthCm   float64
	HeightCm  float64
	Quantity  int
}

// Rule - надбавка, заданная формулой govaluate.
// Формуле доступны параметры Base, Weight и Quantity.
type Rule struct {
	Name    string
	Formula string
}

// Line - результат расчёта одной позиции.
type Line struct {
	CargoType        string  `json:"cargoType"`
	ChargeableWeight float64 `json:"chargeableWeight"`
	UnitPrice        float64 `json:"unitPrice"`
	Surcharge        float64 `json:"surcharge"`
	Quantity         int     `json:"quantity"`
	LineTotal        float64 `json:"lineTotal"`
}

// Estimate - итог расчёта котировки целиком.
type Estimate struct {
	Total             float64 `json:"total"`
	Currency          string  `json:"currency"`
	TotalWeight       float64 `json:"totalWeight"`
	DominantCargoType string  `json:"dominantCargoType"`
	Lines             []Line  `json:"lines"`
}

// BaseRate возвращает тариф EUR/кг для пары зон.
func BaseRate(originZone, destinationZone string) float64 {
	if dest, ok := zoneRates[originZone]; ok {
		if rate, ok := dest[destinationZone]; ok {
			return rate
		}
	}
	return defaultBaseRate
}

// VolumetricWeight вычисляет объёмный вес в кг по габаритам в сантиметрах.
func VolumetricWeight(lengthCm, widthCm, heightCm float64) float64 {
	return lengthCm * widthCm * heightCm / VolumetricDivisor
}

// ChargeableWeight - расчётный вес позиции: максимум из фактического и объёмного.
func ChargeableWeight(p Package) float64 {
	return math.Max(p.WeightKg, VolumetricWeight(p.LengthCm, p.WidthCm, p.HeightCm))
}

// EstimatePackage рассчитывает цену одной единицы грузовой позиции.
// Цена = тариф зоны × расчётный вес × коэффициенты груза, транспорта и срочности,
// плюс надбавки по правилам, но не меньше минимальной цены.
func EstimatePackage(originZone, destZone, mode, priority string, p Package, rules []Rule) (Line, error) {
	cargoFactor, ok := cargoFactors[p.CargoType]
	if !ok {
		return Line{}, fmt.Errorf("неизвестный тип груза: %q", p.CargoType)
	}
	modeFactor, ok := modeFactors[mode]
	if !ok {
		return Line{}, fmt.Errorf("неизвестный вид транспорта: %q", mode)
	}
	priorityFactor, ok := priorityFactors[priority]
	if !ok {
		return Line{}, fmt.Errorf("неизвестный приоритет: %q", priority)
	}
	if p.WeightKg <= 0 {
		return Line{}, fmt.Errorf("вес позиции должен быть положительным")
	}
	quantity := p.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	weight := ChargeableWeight(p)
	base := BaseRate(originZone, destZone) * weight * cargoFactor * modeFactor * priorityFactor

	surcharge, err := applyRules(base, weight, quantity, rules)
	if err != nil {
		return Line{}, err
	}

	unitPrice := base + surcharge
	if unitPrice < MinimumCharge {
		unitPrice = MinimumCharge
	}
	unitPrice = round2(unitPrice)

	return Line{
		CargoType:        p.CargoType,
		ChargeableWeight: round2(weight),
		UnitPrice:        unitPrice,
		Surcharge:        round2(surcharge),
		Quantity:         quantity,
		LineTotal:        round2(unitPrice * float64(quantity)),
	}, nil
}

// EstimateQuote рассчитывает котировку по всем позициям: цены позиций умножаются
// на количество и суммируются, вес складывается, доминирующий тип груза
// определяется по наибольшему суммарному весу.
func EstimateQuote(originZone, destZone, mode, priority string, packages []Package, rules []Rule) (Estimate, error) {
	if len(packages) == 0 {
		return Estimate{}, fmt.Errorf("котировка должна содержать хотя бы одну позицию")
	}

	estimate := Estimate{Currency: ReferenceCurrency}
	weightByCargo := make(map[string]float64)

	for i, p := range packages {
		line, err := EstimatePackage(originZone, destZone, mode, priority, p, rules)
		if err != nil {
			return Estimate{}, fmt.Errorf("позиция %d: %w", i+1, err)
		}
		estimate.Lines = append(estimate.Lines, line)
		estimate.Total += line.LineTotal
		lineWeight := p.WeightKg * float64(line.Quantity)
		estimate.TotalWeight += lineWeight
		weightByCargo[p.CargoType] += lineWeight
	}

	estimate.Total = round2(estimate.Total)
	estimate.TotalWeight = round2(estimate.TotalWeight)
	estimate.DominantCargoType = dominantCargoType(weightByCargo)

	return estimate, nil
}

// applyRules вычисляет сумму надбавок по формулам для одной позиции.
func applyRules(base, weight float64, quantity int, rules []Rule) (float64, error) {
	if len(rules) == 0 {
		return 0, nil
	}

	parameters := map[string]interface{}{
		"Base":     base,
		"Weight":   weight,
		"Quantity": float64(quantity),
	}

	var total float64
	for _, rule := range rules {
		expr, err := govaluate.NewEvaluableExpression(rule.Formula)
		if err != nil {
			return 0, fmt.Errorf("ошибка в формуле надбавки %q: %w", rule.Name, err)
		}
		result, err := expr.Evaluate(parameters)
		if err != nil {
			return 0, fmt.Errorf("не удалось вычислить формулу %q: %w", rule.Name, err)
		}
		amount, ok := result.(float64)
		if !ok {
			return 0, fmt.Errorf("результат формулы %q не является числом", rule.Name)
		}
		total += amount
	}
	return total, nil
}

// dominantCargoType возвращает тип груза с наибольшим суммарным весом.
// При равенстве выбирается лексикографически меньший тип, чтобы результат был детерминирован.
func dominantCargoType(weightByCargo map[string]float64) string {
	var dominant string
	var maxWeight float64
	for cargo, weight := range weightByCargo {
		if weight > maxWeight || (weight == maxWeight && (dominant == "" || cargo < dominant)) {
			dominant = cargo
			maxWeight = weight
		}
	}
	return dominant
}

// ValidateFormula проверяет, что формула надбавки разбирается и вычисляется
// на тестовых параметрах. Используется при сохранении правила.
func ValidateFormula(formula string) error {
	expr, err := govaluate.NewEvaluableExpression(formula)
	if err != nil {
		return err
	}
	result, err := expr.Evaluate(map[string]interface{}{
		"Base":     100.0,
		"Weight":   10.0,
		"Quantity": 1.0,
	})
	if err != nil {
		return err
	}
	if _, ok := result.(float64); !ok {
		return fmt.Errorf("результат формулы не является числом")
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
