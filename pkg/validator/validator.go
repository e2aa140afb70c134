package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Reportar errores con el nombre JSON del campo, no el nombre Go.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Validate valida un struct con los tags de go-playground/validator.
func Validate(s any) error {
	return validate.Struct(s)
}

// Format convierte un validator.ValidationErrors en un mapa
// campo → mensaje legible. Con cualquier otro error devuelve mapa vacío.
func Format(err error) map[string]string {
	errs := make(map[string]string)
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return errs
	}
	for _, e := range ve {
		errs[e.Field()] = fieldMessage(e)
	}
	return errs
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "el campo es obligatorio"
	case "email":
		return "debe ser un email válido"
	case "min":
		return fmt.Sprintf("longitud mínima %s", e.Param())
	case "max":
		return fmt.Sprintf("longitud máxima %s", e.Param())
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual a %s", e.Param())
	case "oneof":
		return fmt.Sprintf("debe ser uno de: %s", e.Param())
	default:
		return fmt.Sprintf("falló la validación '%s'", e.Tag())
	}
}
