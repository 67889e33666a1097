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
)

// Tree é o resultado da resolução de uma struct: um nó por campo, na ordem
// de declaração.
type Tree struct {
	Struct *schema.Struct
	Nodes  []Node
}

// Node é o valor resolvido de um campo. Campos aninhados têm Tree; campos
// folha têm Name e Value.
type Node struct {
	Field *schema.Field
	// Name é a variável resolvida do campo folha.
	Name string
	// Value tem exatamente o tipo Field.Kind.Type.
	Value reflect.Value
	Tree  *Tree
}

// Names lista as variáveis resolvidas, em ordem de resolução.
func (t *Tree) Names() []string {
	var names []string
	for _, node := range t.Nodes {
		if node.Tree != nil {
			names = append(names, node.Tree.Names()...)
			continue
		}
		names = append(names, node.Name)
	}
	return names
}

// Map converte a árvore em mapas aninhados indexados pelo nome do campo.
// Opcionais ausentes viram nil e os presentes são desreferenciados.
func (t *Tree) Map() map[string]any {
	out := make(map[string]any, len(t.Nodes))
	for _, node := range t.Nodes {
		if node.Tree != nil {
			out[node.Field.Name] = node.Tree.Map()
			continue
		}
		out[node.Field.Name] = plain(node.Value)
	}
	return out
}

func plain(v reflect.Value) any {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		return v.Elem().Interface()
	}
	return v.Interface()
}

// assign copia a árvore para a struct dst, alocando ponteiros de structs
// aninhadas.
func (t *Tree) assign(dst reflect.Value) {
	for _, node := range t.Nodes {
		target := dst.Field(node.Field.Index)
		if node.Tree == nil {
			target.Set(node.Value)
			continue
		}

		if target.Kind() == reflect.Ptr {
			ptr := reflect.New(target.Type().Elem())
			node.Tree.assign(ptr.Elem())
			target.Set(ptr)
			continue
		}
		node.Tree.assign(target)
	}
}
