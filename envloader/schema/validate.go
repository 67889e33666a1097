// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package schema

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Validator aplica as regras estáticas dos descritores.
type Validator struct {
	validate *validator.Validate
}

// NewValidator cria uma nova instância do validador
func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(),
	}
}

var defaultValidator = NewValidator()

// Validate valida s e todas as structs aninhadas com o validador padrão.
func Validate(s *Struct) error {
	return defaultValidator.Validate(s)
}

// Validate realiza validações estruturais (tags) e semânticas (combinações
// de modificadores). Nunca lê o ambiente.
func (v *Validator) Validate(s *Struct) error {
	if s == nil {
		return &SchemaError{Reason: "missing structure descriptor"}
	}

	// 1. Validação Estrutural (Tags do descritor)
	if err := v.structural(s.Name, "", s); err != nil {
		return err
	}

	for i := range s.Fields {
		f := &s.Fields[i]
		if err := v.structural(s.Name, f.Name, f); err != nil {
			return err
		}

		// 2. Validação Semântica
		if err := validateSemantics(s.Name, f); err != nil {
			return err
		}

		if f.Nested {
			if err := v.Validate(f.Struct); err != nil {
				return err
			}
		}
	}

	return nil
}

func (v *Validator) structural(structName, fieldName string, target any) error {
	err := v.validate.Struct(target)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return &SchemaError{Struct: structName, Field: fieldName, Reason: "structural validation failed", Err: err}
	}

	// Reporta apenas a primeira violação
	e := validationErrors[0]
	modifier := ""
	switch e.StructField() {
	case "Rename":
		modifier = "rename"
	case "Prefix":
		modifier = "prefix"
	case "Policy":
		modifier = "default"
	}

	var reason string
	switch e.Tag() {
	case "min":
		reason = "must not be empty"
	case "required":
		reason = fmt.Sprintf("%s is required", e.Field())
	case "oneof":
		reason = fmt.Sprintf("unknown policy %v", e.Value())
	default:
		reason = fmt.Sprintf("field '%s' failed rule '%s'", e.Field(), e.Tag())
	}

	return &SchemaError{Struct: structName, Field: fieldName, Modifier: modifier, Reason: reason}
}

func validateSemantics(structName string, f *Field) error {
	fail := func(modifier, reason string) error {
		return &SchemaError{Struct: structName, Field: f.Name, Modifier: modifier, Reason: reason}
	}

	if f.Nested {
		switch {
		case f.Rename != nil:
			return fail("rename", "cannot be set on a field marked as `nested`")
		case f.Separator != nil:
			return fail("separator", "cannot be set on a field marked as `nested`")
		case f.Policy() == Literal:
			return fail("default", "cannot set a literal value on a field marked as `nested`")
		case f.Policy() == FromEnv:
			return fail("default", "cannot set an env fallback on a field marked as `nested`")
		case f.Struct == nil:
			return fail("nested", "missing nested structure descriptor")
		case f.Kind != nil:
			return fail("nested", "nested field cannot have a value kind")
		}
		return nil
	}

	if f.Kind == nil {
		return fail("", "missing value kind")
	}
	if f.Separator != nil {
		if !f.Kind.IsCollection() {
			return fail("separator", "only valid on collection fields, got "+f.Kind.String())
		}
		if !utf8.ValidRune(*f.Separator) {
			return fail("separator", "invalid character")
		}
	}
	if f.Policy() == FromEnv && f.Default.Value == "" {
		return fail("default", "env fallback requires a variable name")
	}
	return nil
}
