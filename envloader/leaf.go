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
	"reflect"

	"github.com/raywall/fast-env-toolkit/envloader/schema"
	"github.com/raywall/fast-env-toolkit/envloader/source"
)

// Origem do valor de um campo, registrada nos logs de debug.
const (
	originEnv      = "env"
	originLiteral  = "literal"
	originFallback = "fallback"
	originZero     = "zero"
	originUnset    = "unset"
)

// lookup consulta a Source tratando bytes inválidos como presentes quando o
// campo é []byte.
func (l *Loader) lookup(field *schema.Field, name string) (string, source.Status) {
	raw, status := l.source.Lookup(name)
	if status == source.InvalidEncoding && field.Kind.AcceptsAnyEncoding() {
		status = source.Present
	}
	return raw, status
}

// resolveLeaf aplica a política de default do campo e converte o texto
// obtido para o Kind do campo.
func (l *Loader) resolveLeaf(field *schema.Field, name string) (reflect.Value, error) {
	raw, status := l.lookup(field, name)
	if status == source.Present {
		return l.coerce(field, name, raw, originEnv)
	}

	policy := field.Policy()

	// Standard cobre qualquer resultado não presente, inclusive encoding
	// inválido; o valor zero não passa pelo parser
	if policy == schema.Standard {
		l.traced(name, originZero)
		return field.Kind.Zero(), nil
	}

	if status == source.InvalidEncoding {
		return reflect.Value{}, &InvalidEncodingError{Name: name}
	}

	switch policy {
	case schema.Literal:
		return l.coerce(field, name, field.Default.Value, originLiteral)

	case schema.FromEnv:
		alt := field.Default.Value
		raw, status = l.lookup(field, alt)
		switch status {
		case source.Present:
			return l.coerce(field, alt, raw, originFallback)
		case source.InvalidEncoding:
			return reflect.Value{}, &InvalidEncodingError{Name: alt}
		default:
			return reflect.Value{}, &MissingVariableError{Name: alt}
		}
	}

	if field.Kind.Shape == schema.Optional {
		l.traced(name, originUnset)
		return reflect.Zero(field.Kind.Type), nil
	}
	return reflect.Value{}, &MissingVariableError{Name: name}
}

// coerce converte text; name é a variável de onde o texto veio.
func (l *Loader) coerce(field *schema.Field, name, text, origin string) (reflect.Value, error) {
	value, err := field.Kind.Coerce(text, field.Sep())
	if err != nil {
		return reflect.Value{}, &ParseError{Name: name, Value: text, Err: err}
	}
	l.traced(name, origin)
	return value, nil
}

func (l *Loader) traced(name, origin string) {
	l.log.Debug().Str("var", name).Str("origin", origin).Msg("Variável resolvida")
}
