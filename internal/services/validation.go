package services

import (
	"errors"
	"fmt"
	"strings"

	"praia-backend/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateStruct runs struct-tag validation and reports failures as models.ErrValidation.
func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", strings.ToLower(e.Field())))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters long", strings.ToLower(e.Field()), e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed on %s", strings.ToLower(e.Field()), e.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", models.ErrValidation, strings.Join(msgs, "; "))
}

func checkTaxonomy(category models.Category, framework models.Framework) error {
	if !category.Valid() {
		return fmt.Errorf("%w: unknown category %q", models.ErrValidation, category)
	}
	if framework != "" && !framework.Valid() {
		return fmt.Errorf("%w: unknown framework %q", models.ErrValidation, framework)
	}
	return nil
}
