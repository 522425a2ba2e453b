package progress

import (
	"math"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/AnnonDomini/Exam-Bombers-V1/core/course"
)

// Progress is one recorded submission of a user on a topic.
type Progress struct {
	ID          int        `json:"id"`
	UserID      int        `json:"userId"`
	TopicID     int        `json:"topicId"`
	Score       int        `json:"score"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

type NewProgress struct {
	Score     *int `json:"score" validate:"required,min=0,max=100"`
	Completed bool `json:"completed"`
}

func (np *NewProgress) Validate(validate *validator.Validate) error {
	return validate.Struct(np)
}

// Attempt is a full quiz submission: one answer index per question, in question order.
type Attempt struct {
	Answers []int `json:"answers" validate:"required"`
}

func (a *Attempt) Validate(validate *validator.Validate) error {
	return validate.Struct(a)
}

type AttemptResult struct {
	Progress Progress `json:"progress"`
	Correct  int      `json:"correct"`
	Total    int      `json:"total"`
}

// Grade counts the answers matching each question's correct option and converts it to a 0-100 score.
// Missing answers count as wrong; no questions means a score of 0.
func Grade(questions []course.Question, answers []int) (correct, score int) {
	if len(questions) == 0 {
		return 0, 0
	}
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			correct++
		}
	}
	score = int(math.Round(100 * float64(correct) / float64(len(questions))))
	return correct, score
}
