package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commandNames() []string {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	return names
}

func TestCommandsRegistered(t *testing.T) {
	names := commandNames()
	for _, want := range []string{"parse", "serve", "invoices", "render", "fetch", "migrate", "gendemo"} {
		assert.Contains(t, names, want)
	}
}

func TestParseFlags(t *testing.T) {
	f := parseCmd.Flags()
	require.NotNil(t, f.Lookup("file"))
	require.NotNil(t, f.Lookup("out"))
	require.NotNil(t, f.Lookup("save"))
	require.NotNil(t, f.Lookup("concurrency"))
}

func TestServeFlags(t *testing.T) {
	require.NotNil(t, serveCmd.Flags().Lookup("port"))
}

func TestInvoicesSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range invoicesCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "list")
	assert.Contains(t, names, "get")
}

func TestGendemoFlags(t *testing.T) {
	f := gendemoCmd.Flags()
	require.NotNil(t, f.Lookup("format"))
	require.NotNil(t, f.Lookup("invoices"))
	require.NotNil(t, f.Lookup("seed"))
	require.NotNil(t, f.Lookup("list"))
}
