package pricing

import (
	"fmt"
	"math"
)

// amountTolerance absorbs floating point drift of up to one cent when
// comparing a claimed amount against the catalog price.
const amountTolerance = 0.01

// AmountValidation is the detailed outcome of an amount check, kept
// for diagnostics and rejection messages.
type AmountValidation struct {
	Valid           bool    `json:"is_valid"`
	ExpectedPrice   float64 `json:"expected_price"`
	ActualAmount    float64 `json:"actual_amount"`
	Difference      float64 `json:"difference"`
	Currency        string  `json:"currency"`
	TrainingProgram string  `json:"training_program"`
}

// ErrorMessage renders the standard rejection message for an invalid
// amount.
func (v AmountValidation) ErrorMessage() string {
	return fmt.Sprintf("Invalid payment amount for %q. Expected %g %s, but received %g %s.",
		v.TrainingProgram, v.ExpectedPrice, v.Currency, v.ActualAmount, v.Currency)
}

// ValidateAmount reports whether a claimed amount matches the catalog
// price for the program and currency within tolerance.
func (c *Catalog) ValidateAmount(amount float64, program, currency string) bool {
	return math.Abs(amount-c.PriceOf(program, currency)) <= amountTolerance
}

// ValidateAmountWithDetail performs the same check and surfaces the
// expected/actual values for logging and error bodies.
func (c *Catalog) ValidateAmountWithDetail(amount float64, program, currency string) AmountValidation {
	expected := c.PriceOf(program, currency)
	diff := math.Abs(amount - expected)
	return AmountValidation{
		Valid:           diff <= amountTolerance,
		ExpectedPrice:   expected,
		ActualAmount:    amount,
		Difference:      diff,
		Currency:        currency,
		TrainingProgram: program,
	}
}
