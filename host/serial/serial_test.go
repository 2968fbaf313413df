package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyUSB0")
	assert.Equal(t, "/dev/ttyUSB0", cfg.Device)
	assert.Equal(t, DefaultBaud, cfg.Baud)
	assert.Equal(t, 100, cfg.ReadTimeout)
}

func TestOpen_InvalidConfig(t *testing.T) {
	_, err := Open(nil)
	require.Error(t, err)

	_, err = Open(DefaultConfig(""))
	require.Error(t, err)
}

func TestOpen_MissingDevice(t *testing.T) {
	_, err := Open(DefaultConfig("/dev/accelstream-does-not-exist"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/dev/accelstream-does-not-exist")
}
