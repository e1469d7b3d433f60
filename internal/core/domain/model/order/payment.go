package order

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"ordering/internal/pkg/errs"
)

// PaymentType is the payment channel chosen for an order.
type PaymentType string

const (
	PaymentCash       PaymentType = "CASH"
	PaymentUPI        PaymentType = "UPI"
	PaymentCard       PaymentType = "CARD"
	PaymentNetBanking PaymentType = "NETBANKING"
)

// Detail keys recognised per payment type.
const (
	DetailUPIID      = "upiId"
	DetailCardNumber = "cardNumber"
	DetailCardHolder = "cardHolder"
	DetailBankName   = "bankName"

	detailHolderAlias = "holder"
)

const (
	cardMaskChar    = "*"
	cardVisibleTail = 4
	cardMinDigits   = 12
	cardMaxDigits   = 19
)

func PaymentTypes() []PaymentType {
	return []PaymentType{PaymentCash, PaymentUPI, PaymentCard, PaymentNetBanking}
}

// ParsePaymentType accepts the wire names, case-insensitively.
func ParsePaymentType(s string) (PaymentType, error) {
	t := PaymentType(strings.ToUpper(strings.TrimSpace(s)))
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t PaymentType) Validate() error {
	switch t {
	case PaymentCash, PaymentUPI, PaymentCard, PaymentNetBanking:
		return nil
	case "":
		return errs.NewValueIsRequiredError("payment type")
	}
	return errs.NewValueIsInvalidErrorWithCause("payment type", fmt.Errorf("%q is not a supported payment type", string(t)))
}

func (t PaymentType) String() string {
	return string(t)
}

// PaymentMethod is the payment record of an order. Details are already
// normalized: CASH carries none and CARD carries only the masked number.
type PaymentMethod struct {
	paymentType PaymentType
	details     map[string]string
	completed   bool
}

// NewPaymentMethod validates raw client details for paymentType and masks
// sensitive fields. The result is not completed.
//
// Example:
//
//	pm, _ := order.NewPaymentMethod(order.PaymentCard, map[string]string{
//	    "cardNumber": "1234 5678 9012 3456",
//	})
//	pm.Details()["cardNumber"] // "************3456"
func NewPaymentMethod(paymentType PaymentType, details map[string]string) (*PaymentMethod, error) {
	if err := paymentType.Validate(); err != nil {
		return nil, err
	}

	normalized, err := normalizeDetails(paymentType, details)
	if err != nil {
		return nil, err
	}

	return &PaymentMethod{paymentType: paymentType, details: normalized}, nil
}

// RestorePaymentMethod rebuilds a stored payment method. Stored details are
// trusted as already normalized.
func RestorePaymentMethod(paymentType PaymentType, details map[string]string, completed bool) (*PaymentMethod, error) {
	if err := paymentType.Validate(); err != nil {
		return nil, err
	}
	if details == nil {
		details = map[string]string{}
	}
	return &PaymentMethod{paymentType: paymentType, details: maps.Clone(details), completed: completed}, nil
}

func (p *PaymentMethod) Type() PaymentType { return p.paymentType }
func (p *PaymentMethod) IsCompleted() bool { return p.completed }

// Details returns a copy of the normalized details.
func (p *PaymentMethod) Details() map[string]string {
	return maps.Clone(p.details)
}

func (p *PaymentMethod) complete() *PaymentMethod {
	return &PaymentMethod{paymentType: p.paymentType, details: maps.Clone(p.details), completed: true}
}

func normalizeDetails(paymentType PaymentType, details map[string]string) (map[string]string, error) {
	switch paymentType {
	case PaymentCash:
		return map[string]string{}, nil
	case PaymentUPI:
		upiID, err := requiredDetail(details, DetailUPIID)
		if err != nil {
			return nil, err
		}
		return map[string]string{DetailUPIID: upiID}, nil
	case PaymentNetBanking:
		bankName, err := requiredDetail(details, DetailBankName)
		if err != nil {
			return nil, err
		}
		return map[string]string{DetailBankName: bankName}, nil
	case PaymentCard:
		number, err := requiredDetail(details, DetailCardNumber)
		if err != nil {
			return nil, err
		}
		masked, err := MaskCardNumber(number)
		if err != nil {
			return nil, err
		}
		out := map[string]string{DetailCardNumber: masked}
		holder := strings.TrimSpace(details[DetailCardHolder])
		if holder == "" {
			holder = strings.TrimSpace(details[detailHolderAlias])
		}
		if holder != "" {
			out[DetailCardHolder] = holder
		}
		return out, nil
	}
	return nil, paymentType.Validate()
}

func requiredDetail(details map[string]string, key string) (string, error) {
	v := strings.TrimSpace(details[key])
	if v == "" {
		return "", errs.NewValueIsRequiredError(key)
	}
	return v, nil
}

// MaskCardNumber strips spaces and dashes, checks the digit count and
// replaces all but the last four digits with '*'.
func MaskCardNumber(number string) (string, error) {
	digits := strings.NewReplacer(" ", "", "-", "").Replace(number)
	if len(digits) < cardMinDigits || len(digits) > cardMaxDigits {
		return "", errs.NewValueIsInvalidErrorWithCause(DetailCardNumber,
			fmt.Errorf("must have %d to %d digits", cardMinDigits, cardMaxDigits))
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", errs.NewValueIsInvalidErrorWithCause(DetailCardNumber,
				errors.New("must contain only digits, spaces or dashes"))
		}
	}
	return strings.Repeat(cardMaskChar, len(digits)-cardVisibleTail) + digits[len(digits)-cardVisibleTail:], nil
}
