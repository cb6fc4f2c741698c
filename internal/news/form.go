package news

import (
	"strconv"
	"strings"

	"xnews/internal/forms"
	"xnews/pkg/models"
)

const (
	MsgTitleTooBig    = "Title is too big!"
	MsgBadCategory    = "Not a valid choice"
	MsgDuplicateTitle = "News with this title already exists!"
)

var messages = forms.Messages{
	"notblank":  forms.MsgRequired,
	"title.max": MsgTitleTooBig,
}

// Submission holds the raw create-news form fields.
type Submission struct {
	Title    string `form:"title" validate:"notblank,nonul,max=255"`
	Text     string `form:"text" validate:"notblank,nonul"`
	Category string `form:"category" validate:"notblank"`
}

// Input is a submission that passed validation.
type Input struct {
	CategoryID int64
	Title      string
	Text       string
}

func (s Submission) normalize() Submission {
	s.Title = strings.TrimSpace(s.Title)
	s.Category = strings.TrimSpace(s.Category)
	return s
}

// Values is what the form shows again after a rejected submission.
func (s Submission) Values() map[string]string {
	return map[string]string{
		"title":    s.Title,
		"text":     s.Text,
		"category": strings.TrimSpace(s.Category),
	}
}

// Validate checks s against the existing categories. It never touches the store.
func Validate(s Submission, categories []models.Category) (Input, forms.Errors) {
	s = s.normalize()
	errs := forms.Struct(s, messages)

	var categoryID int64
	if !errs.Has("category") {
		id, err := strconv.ParseInt(s.Category, 10, 64)
		if err != nil || !hasCategory(categories, id) {
			errs.Add("category", MsgBadCategory)
		}
		categoryID = id
	}

	if errs.Any() {
		return Input{}, errs
	}
	return Input{CategoryID: categoryID, Title: s.Title, Text: s.Text}, errs
}

func hasCategory(categories []models.Category, id int64) bool {
	for _, c := range categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
