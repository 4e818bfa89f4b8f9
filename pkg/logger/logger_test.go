package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-productos/pkg/logger"
)

func TestNew_JSONConComponente(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	log.Component("product_store").Info().Str("code", "GALL0001").Msg("catálogo persistido")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "product_store", entry["component"])
	assert.Equal(t, "GALL0001", entry["code"])
	assert.Equal(t, "catálogo persistido", entry["message"])
}

func TestNew_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})

	log.Info().Msg("no aparece")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("aparece")
	assert.Contains(t, buf.String(), "aparece")
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		logger.Nop().Component("x").Error().Msg("descartado")
	})
}
