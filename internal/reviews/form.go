package reviews

import (
	"strconv"
	"strings"

	"xnews/internal/forms"
)

const (
	MsgNameTooBig  = "Name is too big!"
	MsgEmailTooBig = "Email is too big!"
	MsgRatingRange = "Rating should be from 0 to 10!"
)

const ratingRange = "min=0,max=10"

var messages = forms.Messages{
	"notblank":      forms.MsgRequired,
	"name.max":      MsgNameTooBig,
	"email.max":     MsgEmailTooBig,
	"rating.number": MsgRatingRange,
}

// Submission holds the raw create-review form fields. The email is any
// non-empty string up to 64 characters; its format is not checked.
type Submission struct {
	Name   string `form:"name" validate:"notblank,nonul,max=64"`
	Text   string `form:"text" validate:"notblank,nonul"`
	Email  string `form:"email" validate:"notblank,nonul,max=64"`
	Rating string `form:"rating" validate:"notblank,number"`
}

type Input struct {
	Name   string
	Text   string
	Email  string
	Rating int
}

func (s Submission) normalize() Submission {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Rating = strings.TrimSpace(s.Rating)
	return s
}

func (s Submission) Values() map[string]string {
	return map[string]string{
		"name":   s.Name,
		"text":   s.Text,
		"email":  s.Email,
		"rating": s.Rating,
	}
}

// Validate turns a raw submission into an Input or a set of field errors.
// Non-integer and out-of-range ratings share one message.
func Validate(s Submission) (Input, forms.Errors) {
	s = s.normalize()
	errs := forms.Struct(s, messages)

	var rating int
	if !errs.Has("rating") {
		n, err := strconv.Atoi(s.Rating)
		if err != nil || !forms.Var(n, ratingRange) {
			errs.Add("rating", MsgRatingRange)
		}
		rating = n
	}

	if errs.Any() {
		return Input{}, errs
	}
	return Input{Name: s.Name, Text: s.Text, Email: s.Email, Rating: rating}, errs
}
