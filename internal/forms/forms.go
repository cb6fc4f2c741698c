// Package forms holds the validation plumbing shared by the submission forms:
// a validator engine keyed on `form` tag names, a field error set and the
// view model the templates render.
package forms

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MsgRequired = "This field can not be empty!"
	MsgCSRF     = "The CSRF token is missing or invalid."
	MsgInvalid  = "Invalid form submission."
	MsgBadChars = "This field contains invalid characters."
)

// FormLevel is the Errors key for problems not tied to one field.
const FormLevel = "_form"

var engine = newEngine()

func newEngine() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	// whitespace-only input counts as empty
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// the store counts text length up to the first NUL
	_ = v.RegisterValidation("nonul", func(fl validator.FieldLevel) bool {
		return !strings.ContainsRune(fl.Field().String(), 0)
	})
	return v
}

// Messages maps "field.tag" (or just "tag") to the text shown for that failure.
type Messages map[string]string

func (m Messages) lookup(field, tag string) string {
	if msg, ok := m[field+"."+tag]; ok {
		return msg
	}
	if msg, ok := m[tag]; ok {
		return msg
	}
	if tag == "nonul" {
		return MsgBadChars
	}
	return MsgRequired
}

// Struct validates s against its `validate` tags. The first failing rule of
// each field produces one message.
func Struct(s any, msgs Messages) Errors {
	errs := Errors{}
	err := engine.Struct(s)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add(FormLevel, MsgInvalid)
		return errs
	}
	for _, fe := range verrs {
		errs.Add(fe.Field(), msgs.lookup(fe.Field(), fe.Tag()))
	}
	return errs
}

// Var validates a single value against a tag list, e.g. "min=0,max=10".
func Var(v any, tags string) bool {
	return engine.Var(v, tags) == nil
}

// Errors collects messages per field name.
type Errors map[string][]string

func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e Errors) Any() bool {
	return len(e) > 0
}

func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// Get returns the first message for field, or "".
func (e Errors) Get(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Form is what the create templates render: submitted values, their errors
// and the anti-forgery token for the next submission.
type Form struct {
	Values    map[string]string
	Errors    Errors
	CSRFToken string
}

func New(token string) *Form {
	return &Form{
		Values:    map[string]string{},
		Errors:    Errors{},
		CSRFToken: token,
	}
}

func (f *Form) Value(field string) string {
	return f.Values[field]
}

func (f *Form) Error(field string) string {
	return f.Errors.Get(field)
}

// Selected reports whether the submitted value of field is the option id.
func (f *Form) Selected(field string, id int64) bool {
	return f.Values[field] == strconv.FormatInt(id, 10)
}
