package domain

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of decimal places money is rounded to.
const MoneyPlaces int32 = 2

// Round rounds an amount to MoneyPlaces, half away from zero like Postgres numeric round().
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// SignedAmount computes amount_currency for a line expressed in a target currency.
//
// In the company currency the amount is the rounded balance. In a foreign currency the
// magnitude of the previous amount is kept and its sign follows the balance: positive
// when debit exceeds credit, negative otherwise.
func SignedAmount(companyCurrency bool, debit, credit, previous decimal.Decimal) decimal.Decimal {
	balance := debit.Sub(credit)
	if companyCurrency {
		return Round(balance)
	}
	if balance.IsPositive() {
		return previous.Abs()
	}
	return previous.Abs().Neg()
}
