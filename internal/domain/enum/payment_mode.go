package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// PaymentMode represents how a membership payment was made
type PaymentMode int

const (
	PaymentModeCash         PaymentMode = 0
	PaymentModeCard         PaymentMode = 1
	PaymentModeMobileMoney  PaymentMode = 2
	PaymentModeBankTransfer PaymentMode = 3
)

var paymentModeNames = [...]string{"Cash", "Card", "MobileMoney", "BankTransfer"}

func (m PaymentMode) String() string {
	if m < 0 || int(m) >= len(paymentModeNames) {
		return "Unknown"
	}
	return paymentModeNames[m]
}

// ParsePaymentMode maps a case-insensitive name to a PaymentMode
func ParsePaymentMode(s string) (PaymentMode, error) {
	for i, name := range paymentModeNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return PaymentMode(i), nil
		}
	}
	return PaymentModeCash, fmt.Errorf("unknown payment mode %q", s)
}

func (m PaymentMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if i < 0 || i >= len(paymentModeNames) {
			return fmt.Errorf("unknown payment mode %d", i)
		}
		*m = PaymentMode(i)
		return nil
	}
	parsed, err := ParsePaymentMode(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m PaymentMode) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMode) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentModeCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMode(v)
	case int32:
		*m = PaymentMode(v)
	case int:
		*m = PaymentMode(v)
	default:
		return fmt.Errorf("cannot scan %T into PaymentMode", value)
	}
	return nil
}
