package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New("info", "json", &buf)

	l.Debugf("hidden %d", 1)
	l.Infof("listed %d commits", 3)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "listed 3 commits", entry["message"])
}

func TestNewInvalidLevelDefaultsToWarn(t *testing.T) {
	var buf bytes.Buffer
	l := New("chatty", "json", &buf)

	l.Infof("dropped")
	assert.Empty(t, buf.String())

	l.Warn("retrying request", errors.New("503"))
	assert.Contains(t, buf.String(), "retrying request")
	assert.Contains(t, buf.String(), "503")
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New("debug", "text", &buf)

	l.Warn("request failed", errors.New("timeout"))
	out := buf.String()
	assert.Contains(t, out, "request failed")
	assert.Contains(t, out, "timeout")
}

func TestSetDefault(t *testing.T) {
	prev := Default()
	defer SetDefault(prev)

	var buf bytes.Buffer
	SetDefault(New("debug", "json", &buf))
	Debugf("via package %s", "helper")

	assert.Contains(t, buf.String(), "via package helper")
}

func TestPackageHelpers(t *testing.T) {
	prev := Default()
	defer SetDefault(prev)

	var buf bytes.Buffer
	SetDefault(New("info", "json", &buf))
	Debugf("hidden")
	Infof("wrote %d commits", 2)
	Warn("cannot load .env file", errors.New("permission denied"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "wrote 2 commits")
	assert.Contains(t, out, "permission denied")
}
