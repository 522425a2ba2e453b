package course

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/AnnonDomini/Exam-Bombers-V1/core"
)

type (
	Subject struct {
		ID          int       `json:"id"`
		Name        string    `json:"name"`
		Description string    `json:"description"`
		ImageURL    string    `json:"imageUrl"`
		TeacherID   int       `json:"teacherId"`
		CreatedAt   time.Time `json:"createdAt"`
	}

	Topic struct {
		ID        int       `json:"id"`
		SubjectID int       `json:"subjectId"`
		TeacherID int       `json:"teacherId"`
		Name      string    `json:"name"`
		Content   string    `json:"content"`
		CreatedAt time.Time `json:"createdAt"`
	}

	Question struct {
		ID            int      `json:"id"`
		TopicID       int      `json:"topicId"`
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer int      `json:"correctAnswer"`
	}
)

type NewSubject struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	ImageURL    string `json:"imageUrl" validate:"required"` // absolute URL or site relative path
}

func (ns *NewSubject) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Description = core.CleanString(ns.Description)
	ns.ImageURL = core.CleanString(ns.ImageURL)
	return validate.Struct(ns)
}

type NewTopic struct {
	Name    string `json:"name" validate:"required"`
	Content string `json:"content" validate:"required"`
}

func (nt *NewTopic) Validate(validate *validator.Validate) error {
	nt.Name = core.CleanString(nt.Name)
	nt.Content = core.CleanString(nt.Content)
	return validate.Struct(nt)
}

// TopicPatch holds the fields of a Topic that may change; nil fields are left untouched.
// TeacherID is the editing teacher and always replaces the stored one.
type TopicPatch struct {
	Name      *string `json:"name" validate:"omitempty,notblank"`
	Content   *string `json:"content" validate:"omitempty,notblank"`
	SubjectID *int    `json:"subjectId" validate:"omitempty,gt=0"`
	TeacherID int     `json:"-"`
}

func (tp *TopicPatch) Validate(validate *validator.Validate) error {
	tp.Name = core.CleanStringPtr(tp.Name)
	tp.Content = core.CleanStringPtr(tp.Content)
	return validate.Struct(tp)
}

type NewQuestion struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"required,min=2,dive,required"`
	CorrectAnswer *int     `json:"correctAnswer" validate:"required"`
}

func (nq *NewQuestion) Validate(validate *validator.Validate) error {
	nq.Question = core.CleanString(nq.Question)
	for i := range nq.Options {
		nq.Options[i] = core.CleanString(nq.Options[i])
	}
	return validate.Struct(nq)
}
