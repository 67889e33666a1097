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
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Chaves de tag reconhecidas pelo front-end de structs.
const (
	TagEnv       = "env"
	TagDefault   = "envDefault"
	TagFallback  = "envFallback"
	TagSeparator = "envSeparator"
	TagPrefix    = "envPrefix"

	optNested  = "nested"
	optDefault = "default"
)

var modifierKeys = map[string]string{
	TagEnv:       "rename",
	TagDefault:   "default",
	TagFallback:  "default",
	TagSeparator: "separator",
	TagPrefix:    "prefix",
}

// scanTags lê as chaves de modificador de uma tag. Ao contrário de
// reflect.StructTag.Get, detecta a mesma chave declarada duas vezes e
// retorna essa chave em dup.
func scanTags(tag reflect.StructTag) (tags map[string]string, dup string) {
	tags = make(map[string]string)
	for tag != "" {
		i := 0
		for i < len(tag) && tag[i] == ' ' {
			i++
		}
		tag = tag[i:]
		if tag == "" {
			break
		}

		i = 0
		for i < len(tag) && tag[i] > ' ' && tag[i] != ':' && tag[i] != '"' && tag[i] != 0x7f {
			i++
		}
		if i == 0 || i+1 >= len(tag) || tag[i] != ':' || tag[i+1] != '"' {
			break
		}
		name := string(tag[:i])
		tag = tag[i+1:]

		i = 1
		for i < len(tag) && tag[i] != '"' {
			if tag[i] == '\\' {
				i++
			}
			i++
		}
		if i >= len(tag) {
			break
		}
		qvalue := string(tag[:i+1])
		tag = tag[i+1:]

		if _, ok := modifierKeys[name]; !ok {
			continue
		}
		value, err := strconv.Unquote(qvalue)
		if err != nil {
			break
		}
		if _, seen := tags[name]; seen {
			return nil, name
		}
		tags[name] = value
	}
	return tags, ""
}

// parseFieldTags monta o descritor de um campo a partir das suas tags.
// skip é verdadeiro para `env:"-"`.
func parseFieldTags(structName string, sf reflect.StructField) (field Field, skip bool, err error) {
	field = Field{Name: sf.Name, Index: -1}
	fail := func(modifier, format string, args ...any) error {
		return &SchemaError{Struct: structName, Field: sf.Name, Modifier: modifier, Reason: fmt.Sprintf(format, args...)}
	}

	tags, dup := scanTags(sf.Tag)
	if dup != "" {
		return field, false, fail(modifierKeys[dup], "cannot have more than one `%s` tag per field", dup)
	}

	if _, ok := tags[TagPrefix]; ok {
		return field, false, fail("prefix", "only valid on a blank `_ struct{}` marker field")
	}

	if env, ok := tags[TagEnv]; ok {
		if env == "-" {
			return field, true, nil
		}
		name, opts, hasOpts := strings.Cut(env, ",")
		if name != "" || !hasOpts {
			field.Rename = &name
		}
		if hasOpts {
			seen := make(map[string]bool)
			for _, opt := range strings.Split(opts, ",") {
				opt = strings.TrimSpace(opt)
				if opt == "" {
					return field, false, fail("", "empty field modifier in `env` tag")
				}
				if seen[opt] {
					return field, false, fail(opt, "modifier declared more than once")
				}
				seen[opt] = true
				switch opt {
				case optNested:
					field.Nested = true
				case optDefault:
					field.Default = &Default{Policy: Standard}
				default:
					return field, false, fail("", "unknown field modifier `%s`", opt)
				}
			}
		}
	}

	if value, ok := tags[TagDefault]; ok {
		if field.Default != nil {
			return field, false, fail("default", "cannot combine more than one default modifier")
		}
		field.Default = &Default{Policy: Literal, Value: value}
	}

	if alt, ok := tags[TagFallback]; ok {
		if field.Default != nil {
			return field, false, fail("default", "cannot combine more than one default modifier")
		}
		field.Default = &Default{Policy: FromEnv, Value: alt}
	}

	if sep, ok := tags[TagSeparator]; ok {
		r, size := utf8.DecodeRuneInString(sep)
		if size == 0 || size != len(sep) || r == utf8.RuneError {
			return field, false, fail("separator", "must contain exactly one character, got %q", sep)
		}
		field.Separator = &r
	}

	return field, false, nil
}

// parsePrefixMarker lê o prefixo de um campo `_ struct{} \`envPrefix:"..."\``.
func parsePrefixMarker(structName string, sf reflect.StructField) (prefix *string, err error) {
	tags, dup := scanTags(sf.Tag)
	if dup != "" {
		return nil, &SchemaError{Struct: structName, Modifier: "prefix", Reason: fmt.Sprintf("cannot have more than one `%s` tag per struct", dup)}
	}
	for key := range tags {
		if key != TagPrefix {
			return nil, &SchemaError{Struct: structName, Modifier: modifierKeys[key], Reason: "only `envPrefix` is valid on a blank marker field"}
		}
	}
	value, ok := tags[TagPrefix]
	if !ok {
		return nil, nil
	}
	return &value, nil
}
