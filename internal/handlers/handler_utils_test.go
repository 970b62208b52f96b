package handlers

import (
	"strings"
	"testing"

	"github.com/divan/num2words"
	"github.com/stretchr/testify/assert"
)

func TestNewQuoteReference(t *testing.T) {
	ref := newQuoteReference()
	assert.True(t, strings.HasPrefix(ref, "Q-"))
	assert.Len(t, ref, 10)
	assert.Equal(t, ref, strings.ToUpper(ref))

	// Номера должны быть уникальными.
	assert.NotEqual(t, ref, newQuoteReference())
}

func TestNewTrackingNumber(t *testing.T) {
	num := newTrackingNumber()
	assert.True(t, strings.HasPrefix(num, "KMP-"))
	assert.Len(t, num, 12)
	assert.NotEqual(t, num, newTrackingNumber())
}

func TestAmountInWords(t *testing.T) {
	// Целая сумма — без центов.
	assert.Equal(t, num2words.Convert(2)+" euro", amountInWords(2.00))

	// Сумма с центами.
	withCents := amountInWords(1250.50)
	assert.True(t, strings.HasPrefix(withCents, num2words.Convert(1250)+" euro"))
	assert.True(t, strings.HasSuffix(withCents, "50 cents"))
}
