package course

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/AnnonDomini/Exam-Bombers-V1/core"
)

var (
	answerRangeTag  = "answerrange"
	answerRangeText = "{0} must be the index of one of the options"
)

// InitValidators registers the course validation rules on validate.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(questionStructValidation, NewQuestion{})
	core.RegisterCustomTranslation(validate, translator, answerRangeTag, answerRangeText)
}

// questionStructValidation checks that NewQuestion.CorrectAnswer points into NewQuestion.Options.
func questionStructValidation(sl validator.StructLevel) {
	nq := sl.Current().Interface().(NewQuestion)
	if nq.CorrectAnswer == nil || len(nq.Options) < 2 {
		return // reported by field tags
	}
	if ca := *nq.CorrectAnswer; ca < 0 || ca >= len(nq.Options) {
		sl.ReportError(nq.CorrectAnswer, "correctAnswer", "CorrectAnswer", answerRangeTag, "")
	}
}
