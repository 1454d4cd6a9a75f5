package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ValidationErrorDetail describes one rejected field.
type ValidationErrorDetail struct {
	Field    string      `json:"field"`
	Message  string      `json:"message"`
	Expected string      `json:"expected"`
	Received interface{} `json:"received"`
}

type ValidationErrorData struct {
	Errors        []ValidationErrorDetail `json:"errors"`
	Documentation string                  `json:"documentation"`
}

const DocumentationLink = "/swagger/index.html"

var registerTagNames sync.Once

// useJSONFieldNames makes gin's validator report fields by their json name, so nested
// and pointer fields come back the way clients spelled them.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// rules renders the message and expectation for the tags our DTOs use.
var rules = map[string]func(field, param string) (string, string){
	"required": func(field, _ string) (string, string) {
		return fmt.Sprintf("Field '%s' is required", field), "not empty"
	},
	"email": func(field, _ string) (string, string) {
		return fmt.Sprintf("Field '%s' must be a valid email address", field), "email format"
	},
	"min": func(field, param string) (string, string) {
		return fmt.Sprintf("Field '%s' must be at least %s characters long", field, param), "min length " + param
	},
	"max": func(field, param string) (string, string) {
		return fmt.Sprintf("Field '%s' must be at most %s characters long", field, param), "max length " + param
	},
	"oneof": func(field, param string) (string, string) {
		return fmt.Sprintf("Field '%s' must be one of [%s]", field, param), param
	},
}

func describe(e validator.FieldError) ValidationErrorDetail {
	field := e.Field()
	detail := ValidationErrorDetail{Field: field, Received: e.Value()}
	// A nil pointer has no meaningful value to echo.
	if rv := reflect.ValueOf(detail.Received); rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			detail.Received = nil
		} else {
			detail.Received = rv.Elem().Interface()
		}
	}

	if render, ok := rules[e.Tag()]; ok {
		detail.Message, detail.Expected = render(field, e.Param())
		return detail
	}
	detail.Message = fmt.Sprintf("Field '%s' failed on the '%s' rule", field, e.Tag())
	detail.Expected = e.Tag()
	if e.Param() != "" {
		detail.Expected += "=" + e.Param()
	}
	return detail
}

func describeBindError(err error) []ValidationErrorDetail {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		out := make([]ValidationErrorDetail, 0, len(fieldErrs))
		for _, e := range fieldErrs {
			out = append(out, describe(e))
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []ValidationErrorDetail{{
			Field:    typeErr.Field,
			Message:  fmt.Sprintf("Field '%s' has invalid type", typeErr.Field),
			Expected: typeErr.Type.String(),
			Received: typeErr.Value,
		}}
	}

	if errors.Is(err, io.EOF) {
		return []ValidationErrorDetail{{
			Field:    "body",
			Message:  "Request body is empty",
			Expected: "JSON object",
			Received: nil,
		}}
	}

	return []ValidationErrorDetail{{
		Field:    "body",
		Message:  "Malformed JSON or invalid request body",
		Expected: "valid JSON",
		Received: "invalid",
	}}
}

// BindAndValidate decodes the JSON body into obj. On failure it writes a 400 listing
// every rejected field and returns false.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	useJSONFieldNames()

	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	c.JSON(http.StatusBadRequest, NewResponse(http.StatusBadRequest, "Invalid request parameters", ValidationErrorData{
		Errors:        describeBindError(err),
		Documentation: DocumentationLink,
	}))
	return false
}
