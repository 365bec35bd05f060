package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	log, err := New(path, "warn")
	require.NoError(t, err)

	log.Info("CreateBooking: booker=%d", 1)
	log.Warn("DecideBooking: booking id=%d is already %s", 7, "APPROVED")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "CreateBooking")
	assert.Contains(t, string(data), "DecideBooking: booking id=7 is already APPROVED")
	assert.Contains(t, string(data), "WARN")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("", "loud")
	assert.Error(t, err)
}
