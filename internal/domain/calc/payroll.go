package calc

import (
	"fmt"

	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	"github.com/sangkips/gymdesk-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places payroll figures are stored with
const MoneyScale = 2

// PayrollInputs are the raw figures of a payroll record. Nil scalars count as zero.
type PayrollInputs struct {
	HoursWorked     *decimal.Decimal
	HourlyRate      *decimal.Decimal
	FixedSalary     *decimal.Decimal
	CommissionTotal *decimal.Decimal
	Bonuses         []entity.PayrollLineItem
	Deductions      []entity.PayrollLineItem
}

// PayrollTotals are the derived figures stored with the record
type PayrollTotals struct {
	HourlyTotal    decimal.Decimal
	BonusTotal     decimal.Decimal
	DeductionTotal decimal.Decimal
	NetPay         decimal.Decimal
}

// ComputeNetPay returns
//
//	hoursWorked*hourlyRate + fixedSalary + commissionTotal + Σbonuses − Σdeductions
//
// in exact decimal arithmetic. A negative result is returned as is.
// Every figure must fit in MoneyScale decimal places so the stored inputs
// always add up to the stored net pay.
func ComputeNetPay(in PayrollInputs) (PayrollTotals, error) {
	var errs []apperror.FieldError

	scalar := func(field string, v *decimal.Decimal) decimal.Decimal {
		if v == nil {
			return decimal.Zero
		}
		switch {
		case v.IsNegative():
			errs = append(errs, apperror.FieldError{Field: field, Message: "must not be negative"})
		case !fitsScale(*v):
			errs = append(errs, apperror.FieldError{Field: field, Message: scaleMessage})
		}
		return *v
	}

	hours := scalar("hours_worked", in.HoursWorked)
	rate := scalar("hourly_rate", in.HourlyRate)
	fixed := scalar("fixed_salary", in.FixedSalary)
	commission := scalar("commission_total", in.CommissionTotal)

	bonusTotal, bonusErrs := sumLineItems("bonuses", in.Bonuses)
	deductionTotal, deductionErrs := sumLineItems("deductions", in.Deductions)
	errs = append(errs, bonusErrs...)
	errs = append(errs, deductionErrs...)

	if len(errs) > 0 {
		return PayrollTotals{}, apperror.NewValidationError(errs)
	}

	// hours and rate each carry two places, so the product needs four
	hourlyTotal := hours.Mul(rate)
	net := hourlyTotal.
		Add(fixed).
		Add(commission).
		Add(bonusTotal).
		Sub(deductionTotal)

	return PayrollTotals{
		HourlyTotal:    hourlyTotal,
		BonusTotal:     bonusTotal,
		DeductionTotal: deductionTotal,
		NetPay:         net,
	}, nil
}

func sumLineItems(field string, items []entity.PayrollLineItem) (decimal.Decimal, []apperror.FieldError) {
	total := decimal.Zero
	var errs []apperror.FieldError
	for i, item := range items {
		name := fmt.Sprintf("%s[%d].amount", field, i)
		switch {
		case item.Amount == nil:
			errs = append(errs, apperror.FieldError{Field: name, Message: "amount is required"})
		case item.Amount.IsNegative():
			errs = append(errs, apperror.FieldError{Field: name, Message: "must not be negative"})
		case !fitsScale(*item.Amount):
			errs = append(errs, apperror.FieldError{Field: name, Message: scaleMessage})
		default:
			total = total.Add(*item.Amount)
		}
	}
	return total, errs
}

const scaleMessage = "must have at most 2 decimal places"

func fitsScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyScale))
}
