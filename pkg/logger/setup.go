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
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/raywall/fast-env-toolkit/envloader"
	"github.com/rs/zerolog"
)

// Conf é a configuração do logger, lida das variáveis LOG_*.
type Conf struct {
	_       struct{} `envPrefix:"LOG_"`
	Enabled bool     `envDefault:"true"`
	Level   string   `envDefault:"info"`
	Format  string   `envDefault:"json"`
}

// Configure inicializa o logger global baseando-se na configuração.
func Configure(cfg Conf) zerolog.Logger {
	return configure(cfg, os.Stdout)
}

func configure(cfg Conf, out io.Writer) zerolog.Logger {
	// Define o nível de log (default: info)
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Define o output (JSON para produção, Console "bonito" para local se solicitado)
	var output io.Writer = out
	if !cfg.Enabled {
		output = io.Discard
	} else if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	// Cria o logger com contexto padrão
	logger := zerolog.New(output).
		With().
		Timestamp().
		Logger()

	return logger
}

// FromEnv carrega Conf com o envloader e configura o logger em os.Stdout.
func FromEnv(opts ...envloader.Option) (zerolog.Logger, error) {
	return FromEnvTo(os.Stdout, opts...)
}

// FromEnvTo é como FromEnv, mas escreve os logs em out. Ferramentas de linha
// de comando usam os.Stderr para não misturar logs com a saída.
func FromEnvTo(out io.Writer, opts ...envloader.Option) (zerolog.Logger, error) {
	cfg, err := envloader.Parse[Conf](opts...)
	if err != nil {
		return zerolog.Nop(), err
	}
	return configure(cfg, out), nil
}
