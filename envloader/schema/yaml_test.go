package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const appSchema = `
name: app
prefix: APP_
fields:
  - name: port
    type: int
    default: {value: "8080"}
  - name: hosts
    type: "[]string"
    separator: "|"
    default: standard
  - name: token
    type: "*string"
    rename: API_TOKEN
    default: {env: LEGACY_TOKEN}
  - name: id
    type: uuid
  - name: db
    nested:
      prefix: DB_
      fields:
        - {name: url, type: string}
        - {name: timeout, type: duration}
`

func TestParseYAML(t *testing.T) {
	s, err := ParseYAML([]byte(appSchema))
	require.NoError(t, err)

	assert.Equal(t, "app", s.Name)
	require.Len(t, s.Fields, 5)

	port := s.Fields[0]
	assert.Equal(t, Literal, port.Policy())
	assert.Equal(t, "8080", port.Default.Value)
	assert.Equal(t, -1, port.Index)

	hosts := s.Fields[1]
	assert.Equal(t, Standard, hosts.Policy())
	assert.Equal(t, '|', hosts.Sep())
	assert.Equal(t, Collection, hosts.Kind.Shape)

	token := s.Fields[2]
	assert.Equal(t, FromEnv, token.Policy())
	assert.Equal(t, Optional, token.Kind.Shape)

	assert.Equal(t, Scalar, s.Fields[3].Kind.Shape)

	db := s.Fields[4]
	assert.True(t, db.Nested)
	assert.Equal(t, "db", db.Struct.Name)

	assert.Equal(t, []string{
		"APP_PORT",
		"APP_HOSTS",
		"APP_API_TOKEN",
		"APP_ID",
		"APP_DB_URL",
		"APP_DB_TIMEOUT",
	}, s.Names())
}

func TestParseYAML_Empty(t *testing.T) {
	s, err := ParseYAML(nil)
	require.NoError(t, err)
	assert.Empty(t, s.Names())
}

func TestParseYAML_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		reason string
	}{
		{name: "Malformed YAML", schema: "fields: [", reason: "malformed YAML schema"},
		{name: "Unknown key", schema: "fields:\n  - {name: a, type: int, required: true}", reason: "malformed YAML schema"},
		{name: "Unknown type", schema: "fields:\n  - {name: a, type: complex}", reason: `unknown type "complex"`},
		{name: "Missing type", schema: "fields:\n  - {name: a}", reason: "missing type"},
		{name: "Missing name", schema: "fields:\n  - {type: int}", reason: "Name is required"},
		{name: "Optional of optional", schema: "fields:\n  - {name: a, type: '**int'}", reason: "optional of optional"},
		{name: "Both default entries", schema: "fields:\n  - {name: a, type: int, default: {value: '1', env: B}}", reason: "exactly one of"},
		{name: "Empty default mapping", schema: "fields:\n  - {name: a, type: int, default: {}}", reason: "exactly one entry"},
		{name: "Unknown default scalar", schema: "fields:\n  - {name: a, type: int, default: zero}", reason: "malformed default"},
		{name: "Default as list", schema: "fields:\n  - {name: a, type: int, default: [1]}", reason: "expected a scalar or a mapping"},
		{name: "Separator on scalar", schema: "fields:\n  - {name: a, type: int, separator: '|'}", reason: "only valid on collection fields"},
		{name: "Long separator", schema: "fields:\n  - {name: a, type: '[]int', separator: '||'}", reason: "exactly one character"},
		{name: "Empty prefix", schema: "prefix: ''\nfields:\n  - {name: a, type: int}", reason: "must not be empty"},
		{name: "Empty rename", schema: "fields:\n  - {name: a, type: int, rename: ''}", reason: "must not be empty"},
		{name: "Nested with type", schema: "fields:\n  - {name: a, type: int, nested: {fields: []}}", reason: "cannot declare a type"},
		{name: "Nested with rename", schema: "fields:\n  - {name: a, rename: X, nested: {fields: []}}", reason: "nested"},
		{name: "Nested with literal", schema: "fields:\n  - {name: a, default: {value: x}, nested: {fields: []}}", reason: "literal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.schema))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSchema)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestParseYAML_NestedStandardDefault(t *testing.T) {
	s, err := ParseYAML([]byte("fields:\n  - {name: a, default: standard, nested: {prefix: A_, fields: [{name: b, type: bool}]}}"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A_B"}, s.Names())
}

func TestParseYAML_DefaultShapes(t *testing.T) {
	tests := []struct {
		name       string
		schema     string
		wantPolicy Policy
		wantValue  string
	}{
		{name: "No default", schema: "fields:\n  - {name: a, type: int}", wantPolicy: 0},
		{name: "Standard", schema: "fields:\n  - {name: a, type: int, default: standard}", wantPolicy: Standard},
		{name: "Literal", schema: "fields:\n  - {name: a, type: int, default: {value: '1'}}", wantPolicy: Literal, wantValue: "1"},
		{name: "Env fallback", schema: "fields:\n  - {name: a, type: int, default: {env: B}}", wantPolicy: FromEnv, wantValue: "B"},
		{name: "Block mapping", schema: "fields:\n  - name: a\n    type: int\n    default:\n      value: '2'", wantPolicy: Literal, wantValue: "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseYAML([]byte(tt.schema))
			require.NoError(t, err)
			require.Len(t, s.Fields, 1)

			field := s.Fields[0]
			assert.Equal(t, tt.wantPolicy, field.Policy())
			if tt.wantPolicy == 0 {
				assert.Nil(t, field.Default)
				return
			}
			assert.Equal(t, tt.wantValue, field.Default.Value)
		})
	}
}
