package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/vuejs/vue-eslint-parser-sub000/ast"
)

func TestIsDirectiveName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"v-if", true},
		{"v-bind:id", true},
		{":id", true},
		{"@click", true},
		{"#header", true},
		{".prop", true},
		{"slot-scope", true},
		{"id", false},
		{"class", false},
		{"v-", false},
		{":", false},
		{"scope", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDirectiveName(tt.name))
		})
	}
}

func keyFor(raw string) *ast.Identifier {
	return &ast.Identifier{
		BaseNode: ast.BaseNode{
			Range: ast.Range{10, 10 + len(raw)},
			Loc: ast.Location{
				Start: ast.Position{Line: 1, Column: 10},
				End:   ast.Position{Line: 1, Column: 10 + len(raw)},
			},
		},
		Name:    raw,
		RawName: raw,
	}
}

func TestParseDirectiveKey(t *testing.T) {
	tests := []struct {
		raw       string
		name      string
		argument  string
		modifiers []string
	}{
		{"v-if", "if", "", nil},
		{"v-bind:id", "bind", "id", nil},
		{"v-on:click.stop.prevent", "on", "click", []string{"stop", "prevent"}},
		{":id", "bind", "id", nil},
		{"@click.native", "on", "click", []string{"native"}},
		{"#header", "slot", "header", nil},
		{".camel", "bind", "camel", []string{"prop"}},
		{"slot-scope", "slot-scope", "", nil},
		{"scope", "scope", "", nil},
		{"v-model.lazy", "model", "", []string{"lazy"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			dk, dyn := parseDirectiveKey(keyFor(tt.raw))
			assert.Zero(t, dyn)

			assert.Equal(t, tt.name, dk.Name.Name)

			if tt.argument == "" {
				assert.Zero(t, dk.Argument)
			} else {
				arg, ok := dk.Argument.(*ast.Identifier)
				assert.True(t, ok)
				assert.Equal(t, tt.argument, arg.Name)
			}

			var mods []string
			for _, m := range dk.Modifiers {
				mods = append(mods, m.Name)
			}
			assert.Equal(t, tt.modifiers, mods)
		})
	}
}

func TestParseDirectiveKeyOffsets(t *testing.T) {
	dk, _ := parseDirectiveKey(keyFor("v-bind:id.sync"))

	// sub-identifier ranges are relative to the key's own range
	assert.Equal(t, ast.Range{10, 16}, dk.Name.Range)

	arg := dk.Argument.(*ast.Identifier)
	assert.Equal(t, ast.Range{17, 19}, arg.Range)

	assert.Equal(t, 1, len(dk.Modifiers))
	assert.Equal(t, ast.Range{20, 24}, dk.Modifiers[0].Range)
	assert.Equal(t, 20, dk.Modifiers[0].Loc.Start.Column)
}

func TestParseDirectiveKeyDynamicArgument(t *testing.T) {
	dk, dyn := parseDirectiveKey(keyFor(":[key.name].sync"))

	assert.Equal(t, "bind", dk.Name.Name)
	assert.NotZero(t, dyn)

	// member access inside the brackets does not split modifiers
	assert.Equal(t, "key.name", dyn.text)
	assert.Equal(t, 1, len(dk.Modifiers))
	assert.Equal(t, "sync", dk.Modifiers[0].Name)

	container, ok := dk.Argument.(*ast.ExpressionContainer)
	assert.True(t, ok)
	assert.True(t, container == dyn.container)
	// range covers the brackets
	assert.Equal(t, ast.Range{11, 21}, container.Range)
}

func TestSplitKeySegments(t *testing.T) {
	segs := splitKeySegments("v-bind:[a.b].sync")

	assert.Equal(t, 2, len(segs))
	assert.Equal(t, "v-bind:[a.b]", segs[0].text)
	assert.Equal(t, "sync", segs[1].text)
	assert.Equal(t, 13, segs[1].start)
}
