package validation

import (
	"fmt"

	"github.com/deppfellow/querybox/internal/errs"
	"github.com/deppfellow/querybox/internal/model"
	"github.com/go-playground/validator/v10"
)

// validate is safe for concurrent use and caches parsed tags.
var validate = validator.New()

var lottoRange = fmt.Sprintf("min=%d,max=%d", model.LottoMin, model.LottoMax)

// Messages returned to the client. Kept verbatim, including
// "numbers must an array".
const (
	MsgARequired       = "a is required"
	MsgBRequired       = "b is required"
	MsgANumber         = "a must be a number"
	MsgBNumber         = "b must be a number"
	MsgTextRequired    = "text is required"
	MsgShiftRequired   = "shift is required"
	MsgShiftNumber     = "shift must be a number"
	MsgNumbersRequired = "numbers is required"
	MsgNumbersArray    = "numbers must an array"
)

// MsgNumbersCount is returned when the guess does not hold exactly
// LottoPicks usable numbers.
var MsgNumbersCount = fmt.Sprintf("numbers must contain %d integers between %d and %d",
	model.LottoPicks, model.LottoMin, model.LottoMax)

// ValidateSum checks a and b in this order: a present, b present,
// a numeric, b numeric.
func ValidateSum(aRaw, bRaw Raw) (model.SumRequest, error) {
	if !aRaw.Present() {
		return model.SumRequest{}, errs.ValidationError("a", MsgARequired)
	}
	if !bRaw.Present() {
		return model.SumRequest{}, errs.ValidationError("b", MsgBRequired)
	}

	a, ok := ParseNumber(aRaw.String())
	if !ok {
		return model.SumRequest{}, errs.ValidationError("a", MsgANumber)
	}
	b, ok := ParseNumber(bRaw.String())
	if !ok {
		return model.SumRequest{}, errs.ValidationError("b", MsgBNumber)
	}

	return model.SumRequest{A: a, B: b}, nil
}

// ValidateCipher checks text present, shift present, shift numeric.
// Any non-empty text is accepted.
func ValidateCipher(textRaw, shiftRaw Raw) (model.CipherRequest, error) {
	if !textRaw.Present() {
		return model.CipherRequest{}, errs.ValidationError("text", MsgTextRequired)
	}
	if !shiftRaw.Present() {
		return model.CipherRequest{}, errs.ValidationError("shift", MsgShiftRequired)
	}

	shift, ok := ParseNumber(shiftRaw.String())
	if !ok {
		return model.CipherRequest{}, errs.ValidationError("shift", MsgShiftNumber)
	}

	return model.CipherRequest{Text: textRaw.String(), Shift: shift}, nil
}

// ValidateLotto checks numbers present and sent as a sequence, then keeps
// only the elements that parse as integers within the lotto range.
// Dropped elements are not reported; only the surviving count is checked.
func ValidateLotto(numbersRaw Raw) (model.LottoGuess, error) {
	if !numbersRaw.Present() {
		return nil, errs.ValidationError("numbers", MsgNumbersRequired)
	}
	if !numbersRaw.Array {
		return nil, errs.ValidationError("numbers", MsgNumbersArray)
	}

	guess := make(model.LottoGuess, 0, model.LottoPicks)
	for _, value := range numbersRaw.Values {
		n, ok := ParseInteger(value)
		if !ok {
			continue
		}
		if err := validate.Var(n, lottoRange); err != nil {
			continue
		}
		guess = append(guess, int(n))
	}

	if len(guess) != model.LottoPicks {
		return nil, errs.ValidationError("numbers", MsgNumbersCount)
	}

	return guess, nil
}
