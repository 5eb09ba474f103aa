package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/judgebase/judgebase-api/internal/types"
)

func optionalValue(field reflect.Value) any {
	if o, ok := field.Interface().(interface{ ValidationValue() any }); ok {
		return o.ValidationValue()
	}
	return nil
}

// Echo compatible validator with proper tag semantics
type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	return cv.validator.Struct(i)
}

// Validates a single value against a tag expression, e.g. "required,email"
func (cv *CustomValidator) Var(field any, tag string) error {
	return cv.validator.Var(field, tag)
}

func Create() CustomValidator {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		paramName := strings.SplitN(field.Tag.Get("param"), ",", 2)[0]
		if paramName != "" {
			return paramName
		}

		jsonName := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if jsonName == "-" {
			return ""
		}
		if jsonName == "-," {
			return "-"
		}
		return jsonName
	})

	// rejects strings that are only whitespace
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return true
		}
		return strings.TrimSpace(field.String()) != ""
	})

	validate.RegisterCustomTypeFunc(optionalValue,
		types.Optional[string]{},
		types.Optional[[]string]{},
		types.Optional[bool]{},
		types.Optional[types.ReviewStatus]{},
	)

	return CustomValidator{validator: validate}
}
