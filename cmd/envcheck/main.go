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

// Command envcheck resolve um schema YAML contra o ambiente do processo.
//
//	envcheck names -schema app.yaml
//	envcheck resolve -schema app.yaml -format json
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/raywall/fast-env-toolkit/envloader"
	"github.com/raywall/fast-env-toolkit/envloader/schema"
	"github.com/raywall/fast-env-toolkit/envloader/source"
	"github.com/raywall/fast-env-toolkit/pkg/logger"
	"gopkg.in/yaml.v3"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, source.OS()))
}

func run(args []string, stdout, stderr io.Writer, src source.Source) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, "Comandos esperados: names, resolve")
		return 1
	}

	cmd := flag.NewFlagSet(args[0], flag.ContinueOnError)
	cmd.SetOutput(stderr)
	schemaPath := cmd.String("schema", "", "Caminho do schema YAML")
	format := cmd.String("format", "yaml", "Formato de saída do resolve: yaml ou json")

	switch args[0] {
	case "names", "resolve":
	default:
		fmt.Fprintf(stderr, "Comando desconhecido: %s\n", args[0])
		return 1
	}

	if err := cmd.Parse(args[1:]); err != nil {
		return 1
	}
	if *schemaPath == "" {
		fmt.Fprintln(stderr, "Erro: flag -schema é obrigatória")
		return 1
	}

	// O próprio logger é configurado pelo envloader (LOG_*) e escreve em
	// stderr, deixando stdout apenas com a saída do comando
	log, err := logger.FromEnvTo(stderr, envloader.WithSource(src))
	if err != nil {
		fmt.Fprintf(stderr, "❌ Configuração de log inválida: %v\n", err)
		return 1
	}

	data, err := os.ReadFile(*schemaPath)
	if err != nil {
		fmt.Fprintf(stderr, "❌ Erro lendo schema: %v\n", err)
		return 1
	}

	s, err := schema.ParseYAML(data)
	if err != nil {
		fmt.Fprintf(stderr, "❌ Schema inválido:\n%v\n", err)
		return 1
	}

	if args[0] == "names" {
		for _, name := range s.Names() {
			fmt.Fprintln(stdout, name)
		}
		return 0
	}

	loader := envloader.New(envloader.WithSource(src), envloader.WithLogger(log))
	tree, err := loader.Resolve(s)
	if err != nil {
		fmt.Fprintf(stderr, "❌ Falha ao resolver ambiente:\n%v\n", err)
		return 1
	}

	out, err := render(tree.Map(), *format)
	if err != nil {
		fmt.Fprintf(stderr, "❌ %v\n", err)
		return 1
	}
	if _, err := stdout.Write(out); err != nil {
		fmt.Fprintf(stderr, "❌ Erro escrevendo saída: %v\n", err)
		return 1
	}
	return 0
}

func render(values map[string]any, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(textual(values))
	case "json":
		out, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	default:
		return nil, fmt.Errorf("formato desconhecido: %s", format)
	}
}

// textual troca campos []byte por string antes do YAML, que os emitiria como
// listas de inteiros. Bytes que não são UTF-8 saem como !!binary.
func textual(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = textual(item)
		}
		return out
	case []byte:
		return string(val)
	case [][]byte:
		out := make([]string, len(val))
		for i, item := range val {
			out[i] = string(item)
		}
		return out
	default:
		return v
	}
}
