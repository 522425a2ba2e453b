package user

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/AnnonDomini/Exam-Bombers-V1/core"
)

var (
	roleTag  = "role"
	roleText = "invalid role"

	assignableRoleTag = "assignablerole"
)

// InitValidators registers the user validation tags on validate.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(roleTag, oneOfValidation(AllRoles))
	core.RegisterCustomTranslation(validate, translator, roleTag, roleText)

	_ = validate.RegisterValidation(assignableRoleTag, oneOfValidation(AssignableRoles))
	core.RegisterCustomTranslation(validate, translator, assignableRoleTag, roleText)
}

func oneOfValidation(choices []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		for _, choice := range choices {
			if val == choice {
				return true
			}
		}
		return false
	}
}
