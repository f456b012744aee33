package utils

import "fmt"

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatRupee renders an amount with the currency sign for display and
// export cells.
func FormatRupee(amount float64) string {
	if amount < 0 {
		return "-₹" + FormatMoney(-amount)
	}
	return "₹" + FormatMoney(amount)
}
