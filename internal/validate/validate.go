package validate

import (
	"fmt"
	"net/mail"
	"strings"
)

// FieldError names one invalid input field. Handlers render the full set so
// a client can fix everything in one round trip.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(fe))
	for _, f := range fe {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

const (
	maxUsernameLen    = 50
	maxEmailLen       = 100
	minPasswordLen    = 6
	maxDisplayNameLen = 100
	maxProjectNameLen = 100
	maxDocTitleLen    = 255
	maxTopK           = 100
)

func Register(username, email, password, displayName string) FieldErrors {
	var errs FieldErrors
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		errs = append(errs, FieldError{Field: "username", Message: "must not be blank"})
	} else if len(username) > maxUsernameLen {
		errs = append(errs, FieldError{Field: "username", Message: fmt.Sprintf("must be at most %d characters", maxUsernameLen)})
	}

	if email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "must not be blank"})
	} else if len(email) > maxEmailLen {
		errs = append(errs, FieldError{Field: "email", Message: fmt.Sprintf("must be at most %d characters", maxEmailLen)})
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs = append(errs, FieldError{Field: "email", Message: "format is invalid"})
	}

	if password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "must not be blank"})
	} else if len(password) < minPasswordLen {
		errs = append(errs, FieldError{Field: "password", Message: fmt.Sprintf("must be at least %d characters", minPasswordLen)})
	}

	if len(displayName) > maxDisplayNameLen {
		errs = append(errs, FieldError{Field: "display_name", Message: fmt.Sprintf("must be at most %d characters", maxDisplayNameLen)})
	}
	return errs
}

func Login(username, password string) FieldErrors {
	var errs FieldErrors
	if strings.TrimSpace(username) == "" {
		errs = append(errs, FieldError{Field: "username", Message: "must not be blank"})
	}
	if password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "must not be blank"})
	}
	return errs
}

func Project(name string) FieldErrors {
	var errs FieldErrors
	name = strings.TrimSpace(name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "must not be blank"})
	} else if len(name) > maxProjectNameLen {
		errs = append(errs, FieldError{Field: "name", Message: fmt.Sprintf("must be at most %d characters", maxProjectNameLen)})
	}
	return errs
}

func KbDoc(title, content string) FieldErrors {
	var errs FieldErrors
	if strings.TrimSpace(title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "must not be blank"})
	} else if len(title) > maxDocTitleLen {
		errs = append(errs, FieldError{Field: "title", Message: fmt.Sprintf("must be at most %d characters", maxDocTitleLen)})
	}
	if strings.TrimSpace(content) == "" {
		errs = append(errs, FieldError{Field: "content", Message: "must not be blank"})
	}
	return errs
}

func KbSearch(query string, topK int) FieldErrors {
	var errs FieldErrors
	if strings.TrimSpace(query) == "" {
		errs = append(errs, FieldError{Field: "query", Message: "must not be blank"})
	}
	if topK < 0 || topK > maxTopK {
		errs = append(errs, FieldError{Field: "top_k", Message: fmt.Sprintf("must be between 1 and %d", maxTopK)})
	}
	return errs
}
