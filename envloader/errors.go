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
package envloader

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/raywall/fast-env-toolkit/envloader/schema"
)

// Sentinelas para distinguir o tipo de falha com errors.Is.
var (
	ErrMissingVariable = errors.New("envloader: missing env var")
	ErrInvalidEncoding = errors.New("envloader: env var is not unicode")
	ErrParse           = errors.New("envloader: cannot parse env var")
	// ErrInvalidSchema é o mesmo sentinela de schema.ErrInvalidSchema.
	ErrInvalidSchema = schema.ErrInvalidSchema
)

// InvalidConfigError é retornado quando a função Load recebe um argumento 'config'
// que não é um ponteiro para uma struct.
type InvalidConfigError struct {
	// Value é o tipo refletido que foi fornecido (ex: reflect.String, reflect.Ptr).
	Value reflect.Type
}

// Error retorna uma mensagem formatada indicando o tipo de argumento inválido.
//
// Exemplo de Retorno: "envloader: config must be a pointer to struct, got string"
func (e *InvalidConfigError) Error() string {
	if e.Value == nil {
		return "envloader: config must be a pointer to struct, got nil"
	}
	if e.Value.Kind() != reflect.Ptr {
		return fmt.Sprintf("envloader: config must be a pointer to struct, got %s", e.Value.Kind())
	}
	return fmt.Sprintf("envloader: config must be a pointer to struct, got pointer to %s", e.Value.Elem().Kind())
}

// MissingVariableError é retornado quando a variável (ou a variável
// alternativa de um default `envFallback`) não está definida e nenhuma
// política de default a substitui.
type MissingVariableError struct {
	// Name é o nome da variável ausente (ex: "APP_PORT").
	Name string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("envloader: missing env var `%s`", e.Name)
}

func (e *MissingVariableError) Is(target error) bool {
	return target == ErrMissingVariable
}

// InvalidEncodingError é retornado quando os bytes da variável não são
// texto UTF-8 válido e o campo não é []byte.
type InvalidEncodingError struct {
	Name string
}

func (e *InvalidEncodingError) Error() string {
	return fmt.Sprintf("envloader: env var is not unicode `%s`", e.Name)
}

func (e *InvalidEncodingError) Is(target error) bool {
	return target == ErrInvalidEncoding
}

// ParseError é retornado quando o texto foi obtido mas o parser do tipo o
// rejeitou.
//
// Tipicamente encapsula um erro de conversão (`strconv`) ou o erro de um
// encoding.TextUnmarshaler.
type ParseError struct {
	// Name é a variável de onde o texto veio.
	Name string
	// Value é o texto bruto que causou o erro.
	Value string
	// Err é o erro original do parser (ex: *strconv.NumError).
	Err error
}

// Error não inclui Value, que pode conter segredos.
func (e *ParseError) Error() string {
	return fmt.Sprintf("envloader: cannot parse env var `%s`: %s", e.Name, e.Detail())
}

// Detail é a mensagem do parser original.
func (e *ParseError) Detail() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Unwrap retorna o erro original que causou o ParseError.
func (e *ParseError) Unwrap() error {
	return e.Err
}
