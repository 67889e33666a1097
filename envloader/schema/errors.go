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
	"reflect"
	"strings"
)

// ErrInvalidSchema é o sentinela de todos os erros de descritor.
// Use errors.Is(err, ErrInvalidSchema) para identificá-los.
var ErrInvalidSchema = errors.New("envloader: invalid schema")

// SchemaError é retornado quando um descritor de struct ou de campo viola
// uma regra estática. É sempre reportado antes de qualquer leitura de ambiente.
type SchemaError struct {
	// Struct é o nome da struct que contém o problema.
	Struct string
	// Field é o nome do campo, vazio quando o problema é da própria struct.
	Field string
	// Modifier é o modificador envolvido (ex: "rename", "separator").
	Modifier string
	// Reason descreve a regra violada.
	Reason string
	// Err é a causa original, quando existe (ex: erro de sintaxe YAML).
	Err error
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("envloader: invalid schema")

	target := e.Struct
	if e.Field != "" {
		if target != "" {
			target += "."
		}
		target += e.Field
	}
	if target != "" {
		b.WriteString(" at ")
		b.WriteString(target)
	}
	if e.Modifier != "" {
		fmt.Fprintf(&b, ": `%s` modifier", e.Modifier)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Is permite errors.Is(err, ErrInvalidSchema).
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// UnsupportedTypeError é retornado quando o tipo de um campo não corresponde
// a nenhum Kind conhecido.
type UnsupportedTypeError struct {
	Type   reflect.Type
	Reason string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("unsupported type %s", e.Type)
	}
	return fmt.Sprintf("unsupported type %s: %s", e.Type, e.Reason)
}
