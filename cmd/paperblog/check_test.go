package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/paperblog/site"
)

func TestPrintRecordYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printRecord(&buf, site.Default(), "yaml"))

	out := buf.String()
	assert.Contains(t, out, "post_per_page: 4")
	assert.Contains(t, out, "scheduled_post_margin: 15m0s")
	assert.Contains(t, out, "edit_post:\n  enabled: true")
}

func TestPrintRecordTOML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printRecord(&buf, site.Default(), "toml"))

	out := buf.String()
	assert.Contains(t, out, "post_per_page = 4")
	assert.Contains(t, out, "America/Chicago")
	assert.Contains(t, out, "[edit_post]")
}

func TestPrintRecordUnknownFormat(t *testing.T) {
	assert.Error(t, printRecord(&bytes.Buffer{}, site.Default(), "json"))
}
