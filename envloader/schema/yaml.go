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
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// yamlTypes são os tipos folha aceitos pelo schema declarativo.
var yamlTypes = map[string]reflect.Type{
	"string":   reflect.TypeOf(""),
	"bytes":    reflect.TypeOf([]byte(nil)),
	"bool":     reflect.TypeOf(false),
	"int":      reflect.TypeOf(int(0)),
	"int8":     reflect.TypeOf(int8(0)),
	"int16":    reflect.TypeOf(int16(0)),
	"int32":    reflect.TypeOf(int32(0)),
	"int64":    reflect.TypeOf(int64(0)),
	"uint":     reflect.TypeOf(uint(0)),
	"uint8":    reflect.TypeOf(uint8(0)),
	"uint16":   reflect.TypeOf(uint16(0)),
	"uint32":   reflect.TypeOf(uint32(0)),
	"uint64":   reflect.TypeOf(uint64(0)),
	"float32":  reflect.TypeOf(float32(0)),
	"float64":  reflect.TypeOf(float64(0)),
	"duration": reflect.TypeOf(time.Duration(0)),
	"time":     reflect.TypeOf(time.Time{}),
	"uuid":     reflect.TypeOf(uuid.UUID{}),
	"ip":       reflect.TypeOf(net.IP{}),
}

type yamlStruct struct {
	Name   string      `yaml:"name"`
	Prefix *string     `yaml:"prefix"`
	Fields []yamlField `yaml:"fields"`
}

type yamlField struct {
	Name      string      `yaml:"name"`
	Type      string      `yaml:"type"`
	Rename    *string     `yaml:"rename"`
	Default   yaml.Node   `yaml:"default"`
	Separator *string     `yaml:"separator"`
	Nested    *yamlStruct `yaml:"nested"`
}

// ParseYAML constrói um descritor a partir de um schema declarativo.
//
// Exemplo:
//
//	name: app
//	prefix: APP_
//	fields:
//	  - name: port
//	    type: int
//	    default: {value: "8080"}
//	  - name: hosts
//	    type: "[]string"
//	    separator: "|"
//	    default: standard
//	  - name: db
//	    nested:
//	      prefix: DB_
//	      fields:
//	        - {name: url, type: string}
//
// O descritor retornado já foi validado. Campos YAML desconhecidos são
// rejeitados.
func ParseYAML(data []byte) (*Struct, error) {
	var raw yamlStruct
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, &SchemaError{Reason: "malformed YAML schema", Err: err}
	}
	if raw.Name == "" {
		raw.Name = "schema"
	}

	s, err := raw.toStruct()
	if err != nil {
		return nil, err
	}
	if err := Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (y *yamlStruct) toStruct() (*Struct, error) {
	s := &Struct{Name: y.Name, Prefix: y.Prefix}
	for i := range y.Fields {
		field, err := y.Fields[i].toField(y.Name)
		if err != nil {
			return nil, err
		}
		s.Fields = append(s.Fields, field)
	}
	return s, nil
}

func (y *yamlField) toField(structName string) (Field, error) {
	field := Field{Name: y.Name, Index: -1, Rename: y.Rename}
	fail := func(modifier, reason string, err error) error {
		return &SchemaError{Struct: structName, Field: y.Name, Modifier: modifier, Reason: reason, Err: err}
	}

	// Kind zero indica que a chave `default` não foi declarada
	if y.Default.Kind != 0 {
		d, err := parseYAMLDefault(&y.Default)
		if err != nil {
			return field, fail("default", err.Error(), nil)
		}
		field.Default = d
	}

	if y.Separator != nil {
		sep := *y.Separator
		r, size := utf8.DecodeRuneInString(sep)
		if size == 0 || size != len(sep) {
			return field, fail("separator", fmt.Sprintf("must contain exactly one character, got %q", sep), nil)
		}
		field.Separator = &r
	}

	if y.Nested != nil {
		if y.Type != "" {
			return field, fail("nested", "a nested field cannot declare a type", nil)
		}
		if y.Nested.Name == "" {
			y.Nested.Name = y.Name
		}
		child, err := y.Nested.toStruct()
		if err != nil {
			return field, err
		}
		field.Nested = true
		field.Struct = child
		return field, nil
	}

	t, err := typeFromString(y.Type)
	if err != nil {
		return field, fail("", "invalid type", err)
	}
	kind, err := KindOf(t)
	if err != nil {
		return field, fail("", "cannot derive value kind", err)
	}
	field.Kind = kind
	return field, nil
}

// parseYAMLDefault aceita `standard` ou um mapa com exatamente uma das
// chaves `value` e `env`.
func parseYAMLDefault(node *yaml.Node) (*Default, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "standard" {
			return &Default{Policy: Standard}, nil
		}
		return nil, fmt.Errorf("malformed default %q: use `standard`, {value: ...} or {env: ...}", node.Value)

	case yaml.MappingNode:
		var raw struct {
			Value *string `yaml:"value"`
			Env   *string `yaml:"env"`
		}
		if err := node.Decode(&raw); err != nil {
			return nil, fmt.Errorf("malformed default: %w", err)
		}
		switch {
		case raw.Value != nil && raw.Env != nil:
			return nil, errors.New("default must contain exactly one of `value` or `env`")
		case raw.Value != nil:
			return &Default{Policy: Literal, Value: *raw.Value}, nil
		case raw.Env != nil:
			return &Default{Policy: FromEnv, Value: *raw.Env}, nil
		default:
			return nil, errors.New("default must contain exactly one entry")
		}
	}
	return nil, errors.New("malformed default: expected a scalar or a mapping")
}

// typeFromString aceita nomes de yamlTypes com os prefixos `*` e `[]`.
func typeFromString(name string) (reflect.Type, error) {
	switch {
	case name == "":
		return nil, errors.New("missing type")
	case strings.HasPrefix(name, "*"):
		inner, err := typeFromString(name[1:])
		if err != nil {
			return nil, err
		}
		return reflect.PointerTo(inner), nil
	case strings.HasPrefix(name, "[]"):
		inner, err := typeFromString(name[2:])
		if err != nil {
			return nil, err
		}
		return reflect.SliceOf(inner), nil
	}

	t, ok := yamlTypes[name]
	if !ok {
		return nil, fmt.Errorf("unknown type %q", name)
	}
	return t, nil
}
