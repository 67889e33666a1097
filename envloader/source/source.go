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

// Package source define a origem das variáveis de ambiente consumida pelo
// envloader. É a única fronteira de I/O do carregador.
package source

import (
	"os"
	"unicode/utf8"
)

// Status é o resultado de uma consulta a uma variável.
type Status int

const (
	// Absent indica que a variável não está definida.
	Absent Status = iota
	// Present indica que a variável existe e é texto UTF-8 válido.
	Present
	// InvalidEncoding indica que a variável existe mas seus bytes não são UTF-8.
	InvalidEncoding
)

func (s Status) String() string {
	switch s {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case InvalidEncoding:
		return "invalid-encoding"
	default:
		return "unknown"
	}
}

// Source consulta variáveis pelo nome.
//
// O valor bruto é sempre retornado quando a variável existe, inclusive com
// status InvalidEncoding, para que campos []byte possam aceitá-lo.
type Source interface {
	Lookup(name string) (string, Status)
}

// Func adapta uma função comum para a interface Source.
type Func func(name string) (string, Status)

// Lookup chama f(name).
func (f Func) Lookup(name string) (string, Status) {
	return f(name)
}

type osSource struct{}

// OS retorna a Source baseada no ambiente do processo (os.LookupEnv).
func OS() Source {
	return osSource{}
}

func (osSource) Lookup(name string) (string, Status) {
	value, ok := os.LookupEnv(name)
	return value, classify(value, ok)
}

// Map é uma Source em memória, útil em testes e para sobrescritas locais.
type Map map[string]string

// Lookup aplica a mesma regra de encoding da Source do sistema operacional.
func (m Map) Lookup(name string) (string, Status) {
	value, ok := m[name]
	return value, classify(value, ok)
}

func classify(value string, ok bool) Status {
	if !ok {
		return Absent
	}
	if !utf8.ValidString(value) {
		return InvalidEncoding
	}
	return Present
}
