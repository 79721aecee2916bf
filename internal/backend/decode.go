package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"shopadmin/internal/domain"
)

// newValidator builds the schema checker used for every decoded payload.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("delivery_status", func(fl validator.FieldLevel) bool {
		return domain.DeliveryStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("payment_status", func(fl validator.FieldLevel) bool {
		return domain.PaymentStatus(fl.Field().String()).Valid()
	})
	return v
}

// envelope is the {success, message, data} wrapper most endpoints use.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// unwrapData returns body.data when present and non-null, otherwise the body itself.
func unwrapData(raw []byte) []byte {
	if firstByte(raw) != '{' {
		return raw
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return raw
	}
	if len(env.Data) == 0 || bytes.Equal(bytes.TrimSpace(env.Data), []byte("null")) {
		return raw
	}
	return env.Data
}

// pick returns obj[key] if raw is an object that has key, otherwise raw.
func pick(raw []byte, key string) []byte {
	if key == "" || firstByte(raw) != '{' {
		return raw
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return raw
	}
	if v, ok := m[key]; ok && firstByte(v) != 'n' {
		return v
	}
	return raw
}

func firstByte(raw []byte) byte {
	b := bytes.TrimSpace(raw)
	if len(b) == 0 {
		return 0
	}
	return b[0]
}

func decodeList[T any](v *validator.Validate, raw []byte) ([]T, error) {
	if firstByte(raw) != '[' {
		return nil, fmt.Errorf("%w: expected a list", ErrMalformedResponse)
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	for i := range out {
		if err := v.Struct(&out[i]); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrMalformedResponse, i, err)
		}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func decodeOne[T any](v *validator.Validate, raw []byte) (*T, error) {
	if firstByte(raw) != '{' {
		return nil, fmt.Errorf("%w: expected an object", ErrMalformedResponse)
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := v.Struct(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &out, nil
}

// errorMessage extracts {message} or {error} from an error body.
func errorMessage(raw []byte) string {
	if firstByte(raw) != '{' {
		return ""
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	if env.Message != "" {
		return env.Message
	}
	return env.Error
}
