// kmapin-logistics/internal/pricing/currency.go
package pricing

import "fmt"

// ReferenceCurrency - валюта, в которой хранится канонический расчёт.
const ReferenceCurrency = "EUR"

// exchangeRates - статичная таблица курсов относительно EUR.
// Применяется только к отображаемому значению, сохранённая сумма не пересчитывается.
var exchangeRates = map[string]float64{
	"EUR": 1.0,
	"USD": 1.09,
	"GBP": 0.85,
	"XAF": 655.96,
	"NGN": 1720.0,
}

// Convert переводит сумму из EUR в указанную валюту отображения.
func Convert(amountEUR float64, currency string) (float64, error) {
	rate, ok := exchangeRates[currency]
	if !ok {
		return 0, fmt.Errorf("неподдерживаемая валюта: %q", currency)
	}
	return round2(amountEUR * rate), nil
}

// SupportedCurrencies возвращает список валют, доступных для отображения.
func SupportedCurrencies() []string {
	return []string{"EUR", "USD", "GBP", "XAF", "NGN"}
}
