package controllers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

// RegisterValidations adds the custom binding tags used by request structs.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}
	return v.RegisterValidation("staffrole", func(fl validator.FieldLevel) bool {
		role := fl.Field().String()
		return role == models.RoleAdmin || role == models.RoleHost
	})
}

// bindingFailure turns a ShouldBindJSON error into a 400 RequestError with
// one message per failing field.
func bindingFailure(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return utils.BadRequest(err.Error())
	}
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("Required field: %s is missing", field))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email address", field))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters long", field, fe.Param()))
		case "staffrole":
			messages = append(messages, fmt.Sprintf("%s must be %s or %s", field, models.RoleAdmin, models.RoleHost))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", field))
		}
	}
	return utils.BadRequest(messages...)
}
