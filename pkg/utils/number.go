package utils

import (
	"fmt"
	"math"

	"github.com/divan/num2words"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// AmountInWords escreve um valor monetário por extenso, ex.: "one thousand two hundred and fifty rupees and 50 paise"
func AmountInWords(amount float64, currency, subunit string) string {
	if amount < 0 {
		return "minus " + AmountInWords(-amount, currency, subunit)
	}

	cents := int64(math.Round(amount * 100))
	whole := int(cents / 100)
	fraction := int(cents % 100)

	words := fmt.Sprintf("%s %s", num2words.ConvertAnd(whole), currency)
	if fraction > 0 {
		words = fmt.Sprintf("%s and %d %s", words, fraction, subunit)
	}

	return words
}
