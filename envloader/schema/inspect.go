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
	"reflect"
	"sync"
)

// Prefixer é implementado por structs que declaram o próprio prefixo.
//
//	type Database struct {
//		Host string
//	}
//
//	func (Database) EnvPrefix() string { return "DB_" }
type Prefixer interface {
	EnvPrefix() string
}

var (
	prefixerType = reflect.TypeOf((*Prefixer)(nil)).Elem()

	cache sync.Map // reflect.Type -> *Struct
)

// Inspect constrói e valida o descritor de uma struct Go.
//
// O resultado é imutável e fica em cache por tipo; chamadas concorrentes são
// seguras. Erros retornados são sempre *SchemaError.
func Inspect(t reflect.Type) (*Struct, error) {
	if cached, ok := cache.Load(t); ok {
		return cached.(*Struct), nil
	}

	s, err := build(t, map[reflect.Type]bool{})
	if err != nil {
		return nil, err
	}
	if err := Validate(s); err != nil {
		return nil, err
	}

	actual, _ := cache.LoadOrStore(t, s)
	return actual.(*Struct), nil
}

func build(t reflect.Type, visiting map[reflect.Type]bool) (*Struct, error) {
	name := t.Name()
	if name == "" {
		name = t.String()
	}
	if t.Kind() != reflect.Struct {
		return nil, &SchemaError{Struct: name, Reason: "configuration must be a struct, got " + t.Kind().String()}
	}
	if visiting[t] {
		return nil, &SchemaError{Struct: name, Modifier: "nested", Reason: "recursive nested structure"}
	}
	visiting[t] = true
	defer delete(visiting, t)

	s := &Struct{Name: name}

	if t.Implements(prefixerType) || reflect.PointerTo(t).Implements(prefixerType) {
		prefix := reflect.New(t).Interface().(Prefixer).EnvPrefix()
		s.Prefix = &prefix
	}

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)

		if sf.Name == "_" {
			prefix, err := parsePrefixMarker(name, sf)
			if err != nil {
				return nil, err
			}
			if prefix == nil {
				continue
			}
			if s.Prefix != nil {
				return nil, &SchemaError{Struct: name, Modifier: "prefix", Reason: "cannot declare the prefix more than once"}
			}
			s.Prefix = prefix
			continue
		}

		// Campos não exportados nunca são carregados
		if !sf.IsExported() {
			continue
		}

		field, skip, err := parseFieldTags(name, sf)
		if err != nil {
			return nil, err
		}
		if skip {
			continue
		}
		field.Index = i

		if field.Nested {
			nt := sf.Type
			if nt.Kind() == reflect.Pointer {
				nt = nt.Elem()
			}
			if nt.Kind() != reflect.Struct {
				return nil, &SchemaError{Struct: name, Field: sf.Name, Modifier: "nested", Reason: "requires a struct or pointer to struct, got " + sf.Type.String()}
			}
			child, err := build(nt, visiting)
			if err != nil {
				return nil, err
			}
			field.Struct = child
		} else {
			kind, err := KindOf(sf.Type)
			if err != nil {
				return nil, &SchemaError{Struct: name, Field: sf.Name, Reason: "cannot derive value kind", Err: err}
			}
			field.Kind = kind
		}

		s.Fields = append(s.Fields, field)
	}

	return s, nil
}
