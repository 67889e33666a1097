// Package fast_env_toolkit reúne utilitários para carregar a configuração de
// serviços Go a partir de variáveis de ambiente, guiada por um schema.
//
// Visão Geral:
// O módulo é organizado em camadas pequenas e testáveis:
// 1. Schema (envloader/schema): descritores de struct e campo, derivados de tags Go ou de YAML.
// 2. Fonte (envloader/source): a única fronteira de I/O, com o ambiente do processo ou um mapa em memória.
// 3. Carregador (envloader): resolve cada campo contra a fonte e preenche a struct alvo.
//
// Sub-Pacotes Principais:
//
// 1. envloader:
//   - Tags "env", "envDefault", "envFallback", "envSeparator" e "envPrefix".
//   - Valores escalares, []byte, opcionais (*T) e coleções ([]T).
//   - Erros tipados: variável ausente, encoding inválido, falha de parse e schema inválido.
//
// 2. pkg/logger:
//   - Logger zerolog configurado pelas próprias variáveis LOG_*.
//
// 3. cmd/envcheck:
//   - Lista as variáveis de um schema YAML e resolve o ambiente atual contra ele.
//
// Exemplo de Início Rápido:
//
//	package main
//
//	import (
//		"log"
//
//		"github.com/raywall/fast-env-toolkit/envloader"
//	)
//
//	type DatabaseConfig struct {
//		_    struct{} `envPrefix:"DB_"`
//		URL  string
//		Pool int `envDefault:"10"`
//	}
//
//	type AppConfig struct {
//		_        struct{}       `envPrefix:"APP_"`
//		Port     int            `envDefault:"8080"`
//		Database DatabaseConfig `env:",nested"`
//	}
//
//	func main() {
//		// Lê APP_PORT, APP_DB_URL e APP_DB_POOL
//		cfg, err := envloader.Parse[AppConfig]()
//		if err != nil {
//			log.Fatalf("configuração inválida: %v", err)
//		}
//		log.Printf("porta %d, banco %s", cfg.Port, cfg.Database.URL)
//	}
package fast_env_toolkit
