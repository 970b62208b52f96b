package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	usd, err := Convert(100, "USD")
	require.NoError(t, err)
	assert.Equal(t, 109.0, usd)

	xaf, err := Convert(100, "XAF")
	require.NoError(t, err)
	assert.Equal(t, 65596.0, xaf)

	// Конвертация в референсную валюту ничего не меняет.
	eur, err := Convert(42.5, "EUR")
	require.NoError(t, err)
	assert.Equal(t, 42.5, eur)
}

func TestConvertUnknownCurrency(t *testing.T) {
	_, err := Convert(100, "JPY")
	assert.Error(t, err)
}

func TestSupportedCurrencies(t *testing.T) {
	currencies := SupportedCurrencies()
	assert.Contains(t, currencies, ReferenceCurrency)
	for _, c := range currencies {
		_, err := Convert(1, c)
		assert.NoError(t, err)
	}
}
