package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/raywall/fast-env-toolkit/envloader/source"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `
name: app
prefix: APP_
fields:
  - {name: name, type: string}
  - {name: port, type: int, default: {value: "8080"}}
  - {name: token, type: "*string"}
  - name: db
    nested:
      prefix: DB_
      fields:
        - {name: hosts, type: "[]string", separator: "|"}
`

func writeSchema(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_Names(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"names", "-schema", writeSchema(t, testSchema)}, &stdout, &stderr, source.Map{})

	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "APP_NAME\nAPP_PORT\nAPP_TOKEN\nAPP_DB_HOSTS\n", stdout.String())
}

func TestRun_ResolveYAML(t *testing.T) {
	var stdout, stderr bytes.Buffer
	env := source.Map{"APP_NAME": "svc", "APP_DB_HOSTS": "a | b", "LOG_ENABLED": "false"}
	code := run([]string{"resolve", "-schema", writeSchema(t, testSchema)}, &stdout, &stderr, env)

	require.Equal(t, 0, code, stderr.String())
	out := stdout.String()
	assert.Contains(t, out, "name: svc")
	assert.Contains(t, out, "port: 8080")
	assert.Contains(t, out, "token: null")
	assert.Contains(t, out, "- a")
	assert.Contains(t, out, "- b")
}

func TestRun_ResolveJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	env := source.Map{"APP_NAME": "svc", "APP_DB_HOSTS": "a", "LOG_ENABLED": "false"}
	code := run([]string{"resolve", "-schema", writeSchema(t, testSchema), "-format", "json"}, &stdout, &stderr, env)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), `"name": "svc"`)
	assert.Contains(t, stdout.String(), `"port": 8080`)
}

func TestRun_Failures(t *testing.T) {
	schemaPath := writeSchema(t, testSchema)

	tests := []struct {
		name   string
		args   []string
		env    source.Map
		stderr string
	}{
		{name: "No command", args: nil, stderr: "Comandos esperados"},
		{name: "Unknown command", args: []string{"validate"}, stderr: "Comando desconhecido"},
		{name: "Missing schema flag", args: []string{"names"}, stderr: "-schema"},
		{name: "Missing file", args: []string{"names", "-schema", "/nonexistent/schema.yaml"}, stderr: "Erro lendo schema"},
		{name: "Invalid schema", args: []string{"names", "-schema", writeSchema(t, "fields: [{name: a, type: nope}]")}, stderr: "Schema inválido"},
		{name: "Missing variable", args: []string{"resolve", "-schema", schemaPath}, env: source.Map{}, stderr: "missing env var `APP_NAME`"},
		{name: "Unknown format", args: []string{"resolve", "-schema", schemaPath, "-format", "xml"}, env: source.Map{"APP_NAME": "x", "APP_DB_HOSTS": "a"}, stderr: "formato desconhecido"},
		{name: "Invalid log config", args: []string{"names", "-schema", schemaPath}, env: source.Map{"LOG_ENABLED": "maybe"}, stderr: "Configuração de log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			env := tt.env
			if env == nil {
				env = source.Map{}
			}
			code := run(tt.args, &stdout, &stderr, env)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr.String(), tt.stderr)
		})
	}
}

func TestRun_LogsStayOffStdout(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var stdout, stderr bytes.Buffer
	env := source.Map{"APP_NAME": "svc", "APP_DB_HOSTS": "a", "LOG_LEVEL": "debug"}
	code := run([]string{"resolve", "-schema", writeSchema(t, testSchema), "-format", "json"}, &stdout, &stderr, env)
	require.Equal(t, 0, code, stderr.String())

	var tree map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &tree), "stdout deve conter apenas o JSON resolvido")
	assert.Equal(t, "svc", tree["name"])
	assert.Contains(t, stderr.String(), "Variável resolvida")
}

func TestRun_ResolveBytes(t *testing.T) {
	schemaPath := writeSchema(t, "fields:\n  - {name: blob, type: bytes}\n  - {name: chunks, type: '[]bytes', separator: ' '}")

	t.Run("Text bytes render as string", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		env := source.Map{"BLOB": "abc", "CHUNKS": "x y", "LOG_ENABLED": "false"}
		code := run([]string{"resolve", "-schema", schemaPath}, &stdout, &stderr, env)

		require.Equal(t, 0, code, stderr.String())
		assert.Contains(t, stdout.String(), "blob: abc")
		assert.Contains(t, stdout.String(), "- x")
		assert.NotContains(t, stdout.String(), "97")
	})

	t.Run("Non unicode bytes render as binary", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		env := source.Map{"BLOB": string([]byte{0xff, 0xfe}), "CHUNKS": "", "LOG_ENABLED": "false"}
		code := run([]string{"resolve", "-schema", schemaPath}, &stdout, &stderr, env)

		require.Equal(t, 0, code, stderr.String())
		assert.Contains(t, stdout.String(), "!!binary")
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("pipe fechado")
}

func TestRun_StdoutWriteFailure(t *testing.T) {
	var stderr bytes.Buffer
	env := source.Map{"APP_NAME": "svc", "APP_DB_HOSTS": "a", "LOG_ENABLED": "false"}
	code := run([]string{"resolve", "-schema", writeSchema(t, testSchema)}, failingWriter{}, &stderr, env)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "pipe fechado")
}
