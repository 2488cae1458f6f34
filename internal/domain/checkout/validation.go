// internal/domain/checkout/validation.go
package checkout

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ohana-chilli/storefront/internal/domain/order"
)

// ErrInvalidCustomer is wrapped by every ValidationError
var ErrInvalidCustomer = errors.New("invalid customer information")

var phonePattern = regexp.MustCompile(`^\+?[\d\s-]{10,}$`)

// CustomerInfo is the checkout form
type CustomerInfo struct {
	Name      string          `json:"name" validate:"required,min=2,max=100"`
	Phone     string          `json:"phone" validate:"required,phone"`
	OrderType order.OrderType `json:"order_type" validate:"required,oneof=pickup delivery"`
	Address   string          `json:"address" validate:"required_if=OrderType delivery,max=300"`
	Notes     string          `json:"notes" validate:"max=500"`
}

// FieldErrors maps form fields to the message shown next to them
type FieldErrors map[string]string

// ValidationError reports every rejected field of a checkout form
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return ErrInvalidCustomer.Error() + ": " + strings.Join(fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidCustomer
}

var fieldMessages = map[string]map[string]string{
	"name": {
		"required": "El nombre debe tener al menos 2 caracteres",
		"min":      "El nombre debe tener al menos 2 caracteres",
		"max":      "El nombre no puede superar los 100 caracteres",
	},
	"phone": {
		"required": "Ingresa un número de teléfono válido",
		"phone":    "Ingresa un número de teléfono válido",
	},
	"order_type": {
		"required": "Selecciona recoger en sucursal o entrega a domicilio",
		"oneof":    "Selecciona recoger en sucursal o entrega a domicilio",
	},
	"address": {
		"required_if": "La dirección es requerida para entregas a domicilio",
		"max":         "La dirección no puede superar los 300 caracteres",
	},
	"notes": {
		"max": "Las notas no pueden superar los 500 caracteres",
	},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Normalize trims every field and drops the address of pickup orders
func (c CustomerInfo) Normalize() CustomerInfo {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.OrderType = order.OrderType(strings.TrimSpace(string(c.OrderType)))
	c.Address = strings.TrimSpace(c.Address)
	c.Notes = strings.TrimSpace(c.Notes)
	if c.OrderType != order.OrderTypeDelivery {
		c.Address = ""
	}
	return c
}

// Validate checks a normalized form and returns a *ValidationError listing
// every rejected field
func (c CustomerInfo) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := FieldErrors{}
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		msg, ok := fieldMessages[fe.Field()][fe.Tag()]
		if !ok {
			msg = "Valor inválido"
		}
		fields[fe.Field()] = msg
	}
	return &ValidationError{Fields: fields}
}
