// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate checks user input against struct tags and reports
// failures as types.ErrValidation.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pdiddy/movie-search/pkg/types"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct validates s by its `validate` tags. The returned error wraps
// types.ErrValidation and names each failing field.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", types.ErrValidation, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", types.ErrValidation, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "number":
		return fmt.Sprintf("%s must be numeric", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// SearchInput is a submitted search.
type SearchInput struct {
	Query string `validate:"required"`
	Page  int    `validate:"min=1"`
}

// MovieID is a metadata service identifier as typed or clicked by the user.
type MovieID struct {
	ID string `validate:"required,number"`
}

// RatingInput is a star rating for one movie.
type RatingInput struct {
	ID     string `validate:"required"`
	Rating int    `validate:"min=1,max=5"`
}

// Message returns the user-facing part of a validation error, without the
// error-kind prefix.
func Message(err error) string {
	return strings.TrimPrefix(err.Error(), types.ErrValidation.Error()+": ")
}
