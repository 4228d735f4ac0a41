// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/constants"
	lfxerrors "github.com/linuxfoundation/lfx-v2-decision-service/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/utils"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the custom binding tags and reports field names
// by their JSON name
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldNameFromTag)
		_ = v.RegisterValidation("isodate", validateISODate)
	})
}

func fieldNameFromTag(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// validateISODate accepts calendar dates in YYYY-MM-DD form
func validateISODate(fl validator.FieldLevel) bool {
	_, err := utils.ParseDate(fl.Field().String())
	return err == nil
}

// bindingError turns a gin binding failure into a validation error with a
// readable message
func bindingError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return lfxerrors.NewValidation("invalid request body", err)
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", fe.Field()))
		case "isodate":
			messages = append(messages, fmt.Sprintf("%s: %s", fe.Field(), constants.ErrInvalidDateFormat))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return lfxerrors.NewValidation(strings.Join(messages, "; "))
}
