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

import "strings"

// DefaultSeparator separa os elementos de campos de coleção quando nenhum
// separador é declarado.
const DefaultSeparator = ','

// Policy é a política usada quando a variável de um campo está ausente.
type Policy int

const (
	// Standard usa o valor zero do Kind do campo, sem passar pelo parser.
	Standard Policy = iota + 1
	// Literal usa um texto fixo, interpretado como se viesse do ambiente.
	Literal
	// FromEnv consulta uma segunda variável, de nome fixo.
	FromEnv
)

func (p Policy) String() string {
	switch p {
	case Standard:
		return "standard"
	case Literal:
		return "literal"
	case FromEnv:
		return "env"
	default:
		return "unknown"
	}
}

// Default descreve a política de valor padrão de um campo.
type Default struct {
	Policy Policy `validate:"oneof=1 2 3"`
	// Value é o texto literal (Literal) ou o nome da variável alternativa (FromEnv).
	Value string
}

// Struct é o descritor de uma struct de configuração.
type Struct struct {
	Name   string
	Prefix *string `validate:"omitnil,min=1"`
	Fields []Field `validate:"-"`
}

// Field é o descritor de um campo.
type Field struct {
	// Name é o identificador do campo; maiúsculo vira o nome da variável.
	Name string `validate:"required"`
	// Index é o índice do campo na struct Go, ou -1 para schemas declarativos.
	Index     int
	Rename    *string `validate:"omitnil,min=1"`
	Default   *Default
	Separator *rune
	Nested    bool
	// Struct é o descritor do campo aninhado (Nested == true).
	Struct *Struct `validate:"-"`
	// Kind é o tipo de valor do campo folha (Nested == false).
	Kind *Kind `validate:"-"`
}

// EffectivePrefix concatena o prefixo herdado com o prefixo da struct.
func (s *Struct) EffectivePrefix(ambient string) string {
	if s.Prefix == nil {
		return ambient
	}
	return ambient + *s.Prefix
}

// Names lista, em ordem de declaração, todas as variáveis que um carregamento
// de s consultaria como nome primário. Nenhuma variável é lida.
func (s *Struct) Names() []string {
	var names []string
	s.collectNames("", &names)
	return names
}

func (s *Struct) collectNames(ambient string, names *[]string) {
	effective := s.EffectivePrefix(ambient)
	for i := range s.Fields {
		f := &s.Fields[i]
		if f.Nested {
			f.Struct.collectNames(effective, names)
			continue
		}
		*names = append(*names, f.VarName(effective))
	}
}

// VarName é o nome resolvido da variável do campo sob o prefixo efetivo.
func (f *Field) VarName(effective string) string {
	if f.Rename != nil {
		return effective + *f.Rename
	}
	return effective + strings.ToUpper(f.Name)
}

// Sep retorna o separador declarado ou DefaultSeparator.
func (f *Field) Sep() rune {
	if f.Separator == nil {
		return DefaultSeparator
	}
	return *f.Separator
}

// Policy retorna a política de default do campo, ou zero quando não há.
func (f *Field) Policy() Policy {
	if f.Default == nil {
		return 0
	}
	return f.Default.Policy
}
