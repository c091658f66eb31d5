// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillhub Contributors

package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhub/quillhub/internal/logging"
)

func TestSetup_JSONIncludesServiceIdentity(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Setup("quillhub", "1.2.3", "json", &buf)

	logger.Info("migration applied", "name", "001_create_users")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	assert.Equal(t, "quillhub", record["service"])
	assert.Equal(t, "1.2.3", record["version"])
	assert.Equal(t, "migration applied", record["msg"])
	assert.Equal(t, "001_create_users", record["name"])
}

func TestSetup_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Setup("quillhub", "dev", "text", &buf)

	logger.Warn("slow query", "duration_ms", 1500)

	out := buf.String()
	assert.True(t, strings.Contains(out, "slow query"))
	assert.True(t, strings.Contains(out, "service=quillhub"))
}

func TestSetup_DefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Setup("quillhub", "dev", "", &buf)

	logger.Info("hello")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
}

func TestSetup_WithAttrsPreservesIdentity(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Setup("quillhub", "dev", "json", &buf).With("component", "store")

	logger.Info("connected")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "quillhub", record["service"])
	assert.Equal(t, "store", record["component"])
}
