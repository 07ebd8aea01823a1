package model

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validator общий валидатор для входных структур
func Validator() *validator.Validate {
	return validate
}
