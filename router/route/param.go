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

package route

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Kind identifies the type of a path parameter.
type Kind uint8

const (
	KindNumeric Kind = iota + 1
	KindAlpha
	KindAlphaNumeric
	KindAlphaNumericExtended
	KindUUID
	KindRegex
	KindEnum
)

// Regex fragments of the built-in kinds. Fragments are never anchored and
// never contain capturing groups.
const (
	PatternNumeric              = `[0-9]+`
	PatternAlpha                = `[a-zA-Z]+`
	PatternAlphaNumeric         = `[a-zA-Z0-9]+`
	PatternAlphaNumericExtended = `[-_a-zA-Z0-9]+`
	PatternUUID                 = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`
)

var kindNames = map[Kind]string{
	KindNumeric:              "numeric",
	KindAlpha:                "alpha",
	KindAlphaNumeric:         "alphanumeric",
	KindAlphaNumericExtended: "alphanumeric_extended",
	KindUUID:                 "uuid",
	KindRegex:                "regex",
	KindEnum:                 "enum",
}

// String returns the name used for the kind in route files.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind resolves a kind from its route file spelling. Besides the short
// names returned by [Kind.String] it accepts camel-cased and class-style
// spellings such as "AlphaNumericExtended" or `\YapepBase\Router\Entity\Param\Numeric`.
func ParseKind(s string) (Kind, error) {
	name := s
	if i := strings.LastIndexAny(name, `\.`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.ToLower(strings.NewReplacer("_", "", "-", "").Replace(name))

	switch name {
	case "numeric", "num", "int":
		return KindNumeric, nil
	case "alpha":
		return KindAlpha, nil
	case "alphanumeric", "alphanum":
		return KindAlphaNumeric, nil
	case "alphanumericextended":
		return KindAlphaNumericExtended, nil
	case "uuid":
		return KindUUID, nil
	case "regex", "regexp":
		return KindRegex, nil
	case "enum":
		return KindEnum, nil
	}
	return 0, invalidArgument("param type", s, "unknown parameter type")
}

// Param is a typed path parameter. It binds a placeholder name to the regex
// fragment a value for that placeholder must satisfy.
//
// Params are immutable value objects and may be shared between paths and
// goroutines.
type Param struct {
	kind    Kind
	name    string
	pattern string
	values  []string // KindEnum only
}

// NewParam creates a parameter of the given kind. pattern is only used by
// [KindRegex] and values only by [KindEnum].
func NewParam(kind Kind, name, pattern string, values []string) (Param, error) {
	if name == "" {
		return Param{}, invalidArgument("param", "", "name must not be empty")
	}

	p := Param{kind: kind, name: name}
	switch kind {
	case KindNumeric:
		p.pattern = PatternNumeric
	case KindAlpha:
		p.pattern = PatternAlpha
	case KindAlphaNumeric:
		p.pattern = PatternAlphaNumeric
	case KindAlphaNumericExtended:
		p.pattern = PatternAlphaNumericExtended
	case KindUUID:
		p.pattern = PatternUUID
	case KindRegex:
		if err := validateFragment(name, pattern); err != nil {
			return Param{}, err
		}
		p.pattern = pattern
	case KindEnum:
		if len(values) == 0 {
			return Param{}, invalidArgument("param", name, "enum values must not be empty")
		}
		escaped := make([]string, 0, len(values))
		for _, v := range values {
			if v == "" {
				return Param{}, invalidArgument("param", name, "enum values must not contain an empty string")
			}
			escaped = append(escaped, regexp.QuoteMeta(v))
		}
		p.values = slices.Clone(values)
		p.pattern = "(?:" + strings.Join(escaped, "|") + ")"
	default:
		return Param{}, invalidArgument("param", name, fmt.Sprintf("unsupported parameter kind %s", kind))
	}

	return p, nil
}

// validateFragment checks a caller-supplied regex fragment.
func validateFragment(name, pattern string) error {
	if pattern == "" {
		return invalidArgument("param", name, "regex pattern must not be empty")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return invalidArgument("param", name, err.Error())
	}
	if re.NumSubexp() > 0 {
		return invalidArgument("param", name, "regex pattern must not contain capturing groups, use (?:...)")
	}
	return nil
}

// Numeric creates a parameter matching one or more digits.
func Numeric(name string) (Param, error) {
	return NewParam(KindNumeric, name, "", nil)
}

// Alpha creates a parameter matching one or more ASCII letters.
func Alpha(name string) (Param, error) {
	return NewParam(KindAlpha, name, "", nil)
}

// AlphaNumeric creates a parameter matching one or more ASCII letters or digits.
func AlphaNumeric(name string) (Param, error) {
	return NewParam(KindAlphaNumeric, name, "", nil)
}

// AlphaNumericExtended creates a parameter matching ASCII letters, digits, '-' and '_'.
func AlphaNumericExtended(name string) (Param, error) {
	return NewParam(KindAlphaNumericExtended, name, "", nil)
}

// UUID creates a parameter matching the canonical 8-4-4-4-12 hex form.
func UUID(name string) (Param, error) {
	return NewParam(KindUUID, name, "", nil)
}

// Regex creates a parameter with a caller-supplied fragment.
// The fragment must compile and must not contain capturing groups.
//
// Example:
//
//	code, err := route.Regex("code", `[A-Z]{3}`)
func Regex(name, pattern string) (Param, error) {
	return NewParam(KindRegex, name, pattern, nil)
}

// Enum creates a parameter that only matches one of the given literal values.
// Values are escaped, so "a.b" only matches "a.b".
//
// Example:
//
//	state, err := route.Enum("state", "active", "pending")
func Enum(name string, values ...string) (Param, error) {
	return NewParam(KindEnum, name, "", values)
}

// MustParam panics if err is non-nil and returns p otherwise.
// It is meant for static route tables defined in code.
//
// Example:
//
//	id := route.MustParam(route.Numeric("id"))
func MustParam(p Param, err error) Param {
	if err != nil {
		panic(err)
	}
	return p
}

// Name returns the placeholder name.
func (p Param) Name() string {
	return p.name
}

// Kind returns the parameter kind.
func (p Param) Kind() Kind {
	return p.kind
}

// Pattern returns the regex fragment for values of this parameter.
func (p Param) Pattern() string {
	return p.pattern
}

// Values returns the allowed values of an enum parameter.
func (p Param) Values() []string {
	return slices.Clone(p.values)
}

// String returns a readable form such as "id:numeric".
func (p Param) String() string {
	return p.name + ":" + p.kind.String()
}
