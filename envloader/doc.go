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
//
// Package envloader carrega variáveis de ambiente diretamente para campos
// de uma struct Go, guiado por um descritor declarado com tags.
//
// Visão Geral:
// O `envloader` inspeciona a struct de configuração uma única vez, valida o
// descritor resultante (pacote schema) e então resolve cada campo folha em
// ordem de declaração: calcula o nome da variável, consulta a Source, aplica
// a política de default e converte o texto para o tipo do campo. O primeiro
// erro interrompe o carregamento e a struct não é alterada.
//
// Nome das Variáveis:
// O nome de um campo é o prefixo efetivo seguido do identificador em
// maiúsculas (Port -> PORT) ou do nome da tag `env`. O prefixo efetivo é a
// concatenação dos prefixos de todas as structs ancestrais e da própria
// struct; o identificador de um campo aninhado nunca entra no nome.
//
// Tags de Campo:
//   - `env:"NAME"`: sobrescreve o nome (ainda recebe o prefixo).
//   - `env:",nested"`: o campo é uma struct (ou ponteiro) com descritor próprio.
//   - `env:",default"`: ausência resulta no valor zero do tipo.
//   - `envDefault:"text"`: ausência equivale à variável valendo "text".
//   - `envFallback:"ALT"`: ausência consulta a variável ALT.
//   - `envSeparator:"|"`: separador de campos slice (padrão ",").
//   - `env:"-"`: ignora o campo.
//
// Prefixo de Struct:
// Declarado por um campo marcador `_ struct{} \`envPrefix:"DB_"\`` ou pelo
// método `EnvPrefix() string` (schema.Prefixer).
//
// Tipos Suportados:
// string, bool, inteiros, floats, time.Duration, qualquer tipo que implemente
// encoding.TextUnmarshaler (time.Time, net.IP, uuid.UUID), tipos registrados
// com schema.RegisterParser, []byte (aceita bytes não UTF-8), ponteiros
// (opcionais: nil quando ausentes) e slices (coleções).
//
// Exemplos de Uso:
//
//	type Database struct {
//		_    struct{} `envPrefix:"DB_"`
//		Host string   `envDefault:"localhost"`
//		Port int      `envDefault:"5432"`
//	}
//
//	type Config struct {
//		_        struct{} `envPrefix:"APP_"`
//		Database Database `env:",nested"`
//		Hosts    []string `envSeparator:"|" env:",default"`
//		Token    *string  `envFallback:"LEGACY_TOKEN"`
//	}
//
//	// Lê APP_DB_HOST, APP_DB_PORT, APP_HOSTS e APP_TOKEN (ou LEGACY_TOKEN)
//	cfg, err := envloader.Parse[Config]()
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Erros:
// Todos os erros são terminais e identificam uma única variável. Use
// errors.Is com ErrMissingVariable, ErrInvalidEncoding, ErrParse ou
// ErrInvalidSchema, ou errors.As com os tipos correspondentes.
package envloader
