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
	"github.com/rs/zerolog"
)

// Loader resolve descritores contra uma Source.
//
// Um Loader não guarda estado mutável entre chamadas: cada Load relê o
// ambiente e pode ser executado concorrentemente.
type Loader struct {
	source source.Source
	log    zerolog.Logger
}

// Option configura um Loader.
type Option func(*Loader)

// WithSource troca a origem das variáveis (padrão: source.OS()).
func WithSource(src source.Source) Option {
	return func(l *Loader) {
		l.source = src
	}
}

// WithLogger define o logger usado para rastrear a resolução em nível debug.
// Valores de variáveis nunca são registrados.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) {
		l.log = logger
	}
}

// New cria um Loader com as opções informadas.
func New(opts ...Option) *Loader {
	l := &Loader{
		source: source.OS(),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load preenche uma struct com valores de variáveis de ambiente.
//
// O descritor da struct é construído a partir das tags `env`, `envDefault`,
// `envFallback` e `envSeparator` e validado antes de qualquer leitura. Os
// campos são resolvidos em ordem de declaração e o primeiro erro interrompe
// o carregamento. A struct só é modificada quando todos os campos resolvem.
//
// Parâmetros:
//
//	config: Um ponteiro para a struct que será preenchida.
//
// Erros:
//   - InvalidConfigError: Se 'config' não for um ponteiro para struct.
//   - *schema.SchemaError: Se as tags forem inválidas (ErrInvalidSchema).
//   - MissingVariableError, InvalidEncodingError, ParseError: falhas de resolução.
func Load(config interface{}, opts ...Option) error {
	return New(opts...).Load(config)
}

// MustLoad é similar ao Load, mas provoca um panic em caso de erro.
//
// Deve ser usado para configurações essenciais onde a falha na inicialização
// do programa é inaceitável.
func MustLoad(config interface{}, opts ...Option) {
	if err := Load(config, opts...); err != nil {
		panic(err)
	}
}

// Parse retorna um T carregado do ambiente.
//
//	cfg, err := envloader.Parse[Config]()
func Parse[T any](opts ...Option) (T, error) {
	var config T
	err := New(opts...).Load(&config)
	return config, err
}

// Load preenche config usando a Source do Loader. Veja a função Load.
func (l *Loader) Load(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() != reflect.Ptr || val.IsNil() || val.Elem().Kind() != reflect.Struct {
		return &InvalidConfigError{Value: reflect.TypeOf(config)}
	}

	s, err := schema.Inspect(val.Elem().Type())
	if err != nil {
		return err
	}

	tree, err := l.resolve(s, "")
	if err != nil {
		return err
	}

	tree.assign(val.Elem())
	return nil
}

// Resolve valida s e resolve todos os seus campos, retornando a árvore de
// valores. É a entrada para descritores construídos fora de structs Go, como
// os de schema.ParseYAML.
func (l *Loader) Resolve(s *schema.Struct) (*Tree, error) {
	if err := schema.Validate(s); err != nil {
		return nil, err
	}
	return l.resolve(s, "")
}

// resolve processa uma struct sob o prefixo herdado. O prefixo efetivo é
// calculado uma vez e repassado a todos os campos e structs aninhadas.
func (l *Loader) resolve(s *schema.Struct, ambient string) (*Tree, error) {
	effective := s.EffectivePrefix(ambient)
	tree := &Tree{Struct: s, Nodes: make([]Node, 0, len(s.Fields))}

	for i := range s.Fields {
		field := &s.Fields[i]

		// Erros de structs aninhadas sobem sem encapsulamento, sempre
		// nomeando a variável folha
		if field.Nested {
			child, err := l.resolve(field.Struct, effective)
			if err != nil {
				return nil, err
			}
			tree.Nodes = append(tree.Nodes, Node{Field: field, Tree: child})
			continue
		}

		name := field.VarName(effective)
		value, err := l.resolveLeaf(field, name)
		if err != nil {
			l.log.Debug().Err(err).Str("struct", s.Name).Str("field", field.Name).Msg("Falha ao resolver variável")
			return nil, err
		}
		tree.Nodes = append(tree.Nodes, Node{Field: field, Name: name, Value: value})
	}

	return tree, nil
}
