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
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Shape classifica o formato de um valor folha.
type Shape int

const (
	// Scalar é um valor único interpretado pelo parser do tipo.
	Scalar Shape = iota
	// RawBytes é um []byte opaco; aceita qualquer encoding.
	RawBytes
	// Optional é um ponteiro; nil quando a variável está ausente.
	Optional
	// Collection é um slice cujos elementos vêm de uma lista separada.
	Collection
)

func (s Shape) String() string {
	switch s {
	case Scalar:
		return "scalar"
	case RawBytes:
		return "bytes"
	case Optional:
		return "optional"
	case Collection:
		return "collection"
	default:
		return "unknown"
	}
}

type parseFunc func(text string) (reflect.Value, error)

// Kind é o tipo de valor de um campo folha, derivado do tipo Go declarado.
type Kind struct {
	Shape Shape
	Type  reflect.Type
	// Elem é o Kind interno de Optional e Collection.
	Elem  *Kind
	parse parseFunc
}

var (
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

	parsersMu sync.RWMutex
	parsers   = map[reflect.Type]parseFunc{
		reflect.TypeOf(time.Duration(0)): func(text string) (reflect.Value, error) {
			d, err := time.ParseDuration(text)
			return reflect.ValueOf(d), err
		},
	}
)

// RegisterParser registra o parser de texto usado para campos do tipo T.
// Um parser registrado tem precedência sobre encoding.TextUnmarshaler e
// sobre os parsers nativos. Deve ser chamado antes do primeiro Load que
// envolva T, pois os descritores são mantidos em cache.
func RegisterParser[T any](fn func(text string) (T, error)) {
	typ := reflect.TypeOf((*T)(nil)).Elem()

	parsersMu.Lock()
	defer parsersMu.Unlock()
	parsers[typ] = func(text string) (reflect.Value, error) {
		v, err := fn(text)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(&v).Elem(), nil
	}
}

func registeredParser(t reflect.Type) (parseFunc, bool) {
	parsersMu.RLock()
	defer parsersMu.RUnlock()
	fn, ok := parsers[t]
	return fn, ok
}

// KindOf deriva o Kind de um tipo Go.
//
// Regras, em ordem: parser registrado ou encoding.TextUnmarshaler viram
// Scalar; []byte vira RawBytes; *K vira Optional; []K vira Collection; tipos
// básicos (string, bool, inteiros, floats) viram Scalar.
func KindOf(t reflect.Type) (*Kind, error) {
	if fn, ok := registeredParser(t); ok {
		return &Kind{Shape: Scalar, Type: t, parse: fn}, nil
	}
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return &Kind{Shape: Scalar, Type: t, parse: textParser(t)}, nil
	}

	switch t.Kind() {
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return &Kind{Shape: RawBytes, Type: t}, nil
		}
		elem, err := KindOf(t.Elem())
		if err != nil {
			return nil, err
		}
		if elem.Shape != Scalar && elem.Shape != RawBytes {
			return nil, &UnsupportedTypeError{Type: t, Reason: "collection elements must be scalars or byte strings"}
		}
		return &Kind{Shape: Collection, Type: t, Elem: elem}, nil

	case reflect.Pointer:
		elem, err := KindOf(t.Elem())
		if err != nil {
			return nil, err
		}
		if elem.Shape == Optional {
			return nil, &UnsupportedTypeError{Type: t, Reason: "optional of optional"}
		}
		return &Kind{Shape: Optional, Type: t, Elem: elem}, nil

	case reflect.Struct:
		return nil, &UnsupportedTypeError{Type: t, Reason: "struct fields must be marked as `nested`"}
	}

	if fn := basicParser(t); fn != nil {
		return &Kind{Shape: Scalar, Type: t, parse: fn}, nil
	}
	return nil, &UnsupportedTypeError{Type: t}
}

func textParser(t reflect.Type) parseFunc {
	return func(text string) (reflect.Value, error) {
		ptr := reflect.New(t)
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text)); err != nil {
			return reflect.Value{}, err
		}
		return ptr.Elem(), nil
	}
}

// basicParser preserva tipos nomeados (ex: type Level string) criando o
// valor com reflect.New(t).
func basicParser(t reflect.Type) parseFunc {
	switch t.Kind() {
	case reflect.String:
		return func(text string) (reflect.Value, error) {
			v := reflect.New(t).Elem()
			v.SetString(text)
			return v, nil
		}

	case reflect.Bool:
		return func(text string) (reflect.Value, error) {
			b, err := strconv.ParseBool(strings.ToLower(text))
			if err != nil {
				return reflect.Value{}, err
			}
			v := reflect.New(t).Elem()
			v.SetBool(b)
			return v, nil
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(text string) (reflect.Value, error) {
			i, err := strconv.ParseInt(text, 10, t.Bits())
			if err != nil {
				return reflect.Value{}, err
			}
			v := reflect.New(t).Elem()
			v.SetInt(i)
			return v, nil
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(text string) (reflect.Value, error) {
			u, err := strconv.ParseUint(text, 10, t.Bits())
			if err != nil {
				return reflect.Value{}, err
			}
			v := reflect.New(t).Elem()
			v.SetUint(u)
			return v, nil
		}

	case reflect.Float32, reflect.Float64:
		return func(text string) (reflect.Value, error) {
			f, err := strconv.ParseFloat(text, t.Bits())
			if err != nil {
				return reflect.Value{}, err
			}
			v := reflect.New(t).Elem()
			v.SetFloat(f)
			return v, nil
		}
	}
	return nil
}

// IsCollection informa se o valor é um slice, direto ou dentro de Optional.
func (k *Kind) IsCollection() bool {
	switch k.Shape {
	case Collection:
		return true
	case Optional:
		return k.Elem.IsCollection()
	default:
		return false
	}
}

// AcceptsAnyEncoding informa se o elemento mais interno é RawBytes, caso em
// que o texto não precisa ser UTF-8 válido.
func (k *Kind) AcceptsAnyEncoding() bool {
	if k.Elem != nil {
		return k.Elem.AcceptsAnyEncoding()
	}
	return k.Shape == RawBytes
}

// Zero é o valor usado pela política Standard. Nunca passa pelo parser.
//
// Optional resulta em ponteiro para o zero do Kind interno e Collection em
// slice vazio não-nil.
func (k *Kind) Zero() reflect.Value {
	switch k.Shape {
	case Optional:
		ptr := reflect.New(k.Elem.Type)
		ptr.Elem().Set(k.Elem.Zero())
		return ptr
	case Collection:
		return reflect.MakeSlice(k.Type, 0, 0)
	default:
		return reflect.Zero(k.Type)
	}
}

// Coerce converte o texto bruto em um valor do tipo k.Type. Coleções são
// divididas em sep; o primeiro elemento inválido aborta a conversão.
func (k *Kind) Coerce(text string, sep rune) (reflect.Value, error) {
	switch k.Shape {
	case Scalar:
		return k.parse(text)

	case RawBytes:
		return reflect.ValueOf([]byte(text)).Convert(k.Type), nil

	case Optional:
		v, err := k.Elem.Coerce(text, sep)
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(k.Elem.Type)
		ptr.Elem().Set(v)
		return ptr, nil

	case Collection:
		pieces := Split(text, sep)
		out := reflect.MakeSlice(k.Type, 0, len(pieces))
		for _, piece := range pieces {
			v, err := k.Elem.Coerce(piece, sep)
			if err != nil {
				return reflect.Value{}, err
			}
			out = reflect.Append(out, v)
		}
		return out, nil
	}
	return reflect.Value{}, fmt.Errorf("unknown value kind %d", k.Shape)
}

// Split divide text em sep, remove espaços ao redor de cada parte e descarta
// as partes vazias.
func Split(text string, sep rune) []string {
	parts := strings.Split(text, string(sep))
	pieces := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		pieces = append(pieces, part)
	}
	return pieces
}

func (k *Kind) String() string {
	switch k.Shape {
	case Optional, Collection:
		return fmt.Sprintf("%s<%s>", k.Shape, k.Elem)
	default:
		return fmt.Sprintf("%s(%s)", k.Shape, k.Type)
	}
}
