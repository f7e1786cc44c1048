package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"chatbot-backend/internal/models"
)

const (
	MaxQuestionLength  = 1000
	DefaultRecentLimit = 10
	MaxRecentLimit     = 100
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so the client sees "question", not "Question".
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// PostgreSQL text columns cannot hold NUL, so both stores refuse it up front.
	_ = v.RegisterValidation("nonul", func(fl validator.FieldLevel) bool {
		return !strings.ContainsRune(fl.Field().String(), 0)
	})

	return v
}

// ValidateAskQuestion checks the askQuestion input: non-blank, at most
// MaxQuestionLength characters and free of NUL bytes.
func ValidateAskQuestion(req models.AskQuestionRequest) error {
	return validateStruct(req)
}

// ValidateRecentMessages checks the optional limit is within [1, MaxRecentLimit].
func ValidateRecentMessages(req models.RecentMessagesRequest) error {
	return validateStruct(req)
}

// ResolveLimit returns the requested limit or DefaultRecentLimit when absent.
func ResolveLimit(req models.RecentMessagesRequest) int {
	if req.Limit == nil {
		return DefaultRecentLimit
	}
	return *req.Limit
}

func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return &ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "question":
		switch fe.Tag() {
		case "max":
			return "Question too long"
		case "nonul":
			return "Question cannot contain NUL characters"
		}
		return "Question cannot be empty"
	case "limit":
		return "Limit must be an integer between 1 and 100"
	}
	return "Invalid value"
}
