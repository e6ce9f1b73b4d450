package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/d60-Lab/drinklog/internal/policy"
)

// RegisterValidators 注册自定义校验 tag：password_policy
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("password_policy", func(fl validator.FieldLevel) bool {
		return policy.IsSecurePassword(fl.Field().String())
	})
}
