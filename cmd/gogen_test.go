package cmd

import (
	"path/filepath"
	"testing"

	"github.com/oxgen/pyexpr/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	path := writeDocument(t, dir, "circle.yaml", circleDocument)

	conf := cli.NewDefaultConfig()
	conf.Package = "shapes"

	out, err := Generate(conf, path, "")
	require.NoError(t, err)

	got := string(out)
	assert.Contains(t, got, "// Code generated by pyexpr gogen. DO NOT EDIT.")
	assert.Contains(t, got, "package shapes")
	assert.Contains(t, got, `"github.com/oxgen/pyexpr/expr"`)
	assert.Contains(t, got, "area renders as: pi * r ** 2")
	assert.Contains(t, got, "total renders as: (1 + 2) * 3")
	assert.Contains(t, got, "var area = ")
}

func TestGenerate_Fold(t *testing.T) {
	dir := t.TempDir()
	path := writeDocument(t, dir, "circle.yaml", circleDocument)

	conf := cli.NewDefaultConfig()
	conf.Fold = true

	out, err := Generate(conf, path, "")
	require.NoError(t, err)
	assert.Contains(t, string(out), "total renders as: 9")
}

func TestGenerate_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing_document", func(t *testing.T) {
		_, err := Generate(cli.NewDefaultConfig(), filepath.Join(dir, "missing.yaml"), "")
		assert.Error(t, err)
	})

	t.Run("invalid_package", func(t *testing.T) {
		path := writeDocument(t, dir, "ok.yaml", circleDocument)
		conf := cli.NewDefaultConfig()
		conf.Package = "not a package"
		_, err := Generate(conf, path, "")
		assert.Error(t, err)
	})

	t.Run("keyword_entry", func(t *testing.T) {
		path := writeDocument(t, dir, "kw.yaml", "expressions:\n  - name: x\n    expr: [\"*\", xs]\n")
		_, err := Generate(cli.NewDefaultConfig(), path, "")
		assert.Error(t, err)
	})
}
