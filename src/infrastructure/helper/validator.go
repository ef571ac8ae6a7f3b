package helper

import (
	"fmt"

	logger "notification-dispatch-api/src/infrastructure/logger"

	"github.com/go-playground/validator/v10"
)

// Validator translates validator.FieldError values into user-facing messages.
type Validator interface {
	GetErrorMsg(fe validator.FieldError) string
}

type validatorHelper struct {
	Logger *logger.Logger
}

func NewValidator(loggerInstance *logger.Logger) Validator {
	return &validatorHelper{
		Logger: loggerInstance,
	}
}

func (v *validatorHelper) GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email address"
	case "gte":
		return fmt.Sprintf("Should be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Should be less than or equal to %s", fe.Param())
	case "min":
		return fmt.Sprintf("Should be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("Should be at most %s characters long", fe.Param())
	case "oneof":
		return fmt.Sprintf("Should be one of: %s", fe.Param())
	case "uuid":
		return "Invalid UUID"
	}
	return "Unknown validation error"
}
