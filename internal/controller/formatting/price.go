package formatting

import "fmt"

// FormatPriceShort форматирует цену из копеек, без копеек если они равны 0
func FormatPriceShort(priceInCents int) string {
	price := float64(priceInCents) / 100
	if priceInCents%100 == 0 {
		return fmt.Sprintf("%.0f ₽", price)
	}
	return fmt.Sprintf("%.2f ₽", price)
}
