package services

import (
	"strconv"
)

// PaymentService simulates gift card verification. A real payment gateway
// integration would replace the body of VerifyPayment only; the contract
// stays.
type PaymentService struct{}

// VerifyPayment is a pure check over the submitted payment fields. It returns
// whether the payment passes and a human-readable reason.
func (s *PaymentService) VerifyPayment(giftCardNumber, cardName, amount string) (bool, string) {
	if giftCardNumber == "" || cardName == "" || amount == "" {
		return false, "all payment fields are required"
	}

	if len(giftCardNumber) < 8 {
		return false, "invalid gift card number format"
	}

	value, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return false, "invalid amount format"
	}
	if value <= 0 {
		return false, "amount must be positive"
	}

	return true, "payment verification successful"
}
