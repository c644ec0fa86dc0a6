// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var metricNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

var (
	tagValidator     *validator.Validate
	tagValidatorOnce sync.Once
)

func structValidator() *validator.Validate {
	tagValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Field paths follow the config keys, not the Go names.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := fld.Tag.Get("config")
			if name == "-" {
				return ""
			}
			if idx := strings.Index(name, ","); idx != -1 {
				name = name[:idx]
			}
			if name == "" {
				return fld.Name
			}

			return name
		})

		if err := v.RegisterValidation("metric_name", func(fl validator.FieldLevel) bool {
			return metricNamePattern.MatchString(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("config: register metric_name validator: %v", err))
		}

		tagValidator = v
	})

	return tagValidator
}

// ValidateStruct checks the `validate` tags of s, a struct or pointer to
// struct. Every failure becomes one [*Error] carrying source, the dotted
// config path of the field and the "validate" operation; the result joins
// them in field order.
func ValidateStruct(source string, s any) error {
	err := structValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewError(source, "validate", err)
	}

	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, NewFieldError(source, fieldPath(fe), "validate", describe(fe)))
	}

	return errors.Join(errs...)
}

// fieldPath strips the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx != -1 {
		return ns[idx+1:]
	}

	return ns
}

func describe(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return errors.New("must not be empty")
	case "required_without":
		return fmt.Errorf("must be set when %s is empty", fe.Param())
	case "oneof":
		return fmt.Errorf("must be one of [%s], got %q", fe.Param(), fmt.Sprint(fe.Value()))
	case "gte":
		return fmt.Errorf("must be at least %s, got %v", fe.Param(), fe.Value())
	case "lte":
		return fmt.Errorf("must be at most %s, got %v", fe.Param(), fe.Value())
	case "min":
		return fmt.Errorf("must have at least %s entries", fe.Param())
	case "metric_name":
		return fmt.Errorf("%q is not a valid metric name prefix", fmt.Sprint(fe.Value()))
	default:
		return fmt.Errorf("failed %q check, got %v", fe.Tag(), fe.Value())
	}
}
