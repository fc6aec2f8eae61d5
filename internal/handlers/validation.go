package handlers

import (
	"fmt"
	"reflect"
	"strings"

	"stratbook/internal/models"

	"github.com/go-playground/validator/v10"
)

// newValidator builds the validator shared by all handlers. Field names in
// error output follow the json tag, and the closed strategy enumerations are
// registered as custom rules so the model constants stay the single source
// of truth.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("gamemap", func(fl validator.FieldLevel) bool {
		return models.GameMap(fl.Field().String()).Valid()
	})
	v.RegisterValidation("strategytype", func(fl validator.FieldLevel) bool {
		return models.StrategyType(fl.Field().String()).Valid()
	})
	v.RegisterValidation("playerside", func(fl validator.FieldLevel) bool {
		return models.PlayerSide(fl.Field().String()).Valid()
	})

	return v
}

// validationMessages flattens validator output into a field -> message map.
// All violations of a request are reported together, one entry per field.
func validationMessages(err error) map[string]string {
	messages := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		messages["request"] = err.Error()
		return messages
	}
	for _, e := range validationErrors {
		messages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' rule", e.Field(), e.Tag())
	}
	return messages
}
