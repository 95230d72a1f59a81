package cmd

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetHost(t *testing.T) {
	assert.Equal(t, "es-master", targetHost("es-master", "", false))
	assert.Equal(t, "es-lb", targetHost("es-master", "es-lb", false))
	assert.Equal(t, "es-lb", targetHost("es-master", "es-lb", true))
	assert.Equal(t, "", targetHost("es-master", "", true))
}

func TestRunConfigTarget(t *testing.T) {
	cfg, err := runConfig()
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.TargetHost)

	viper.Set("target", "")
	cfg, err = runConfig()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.TargetHost)
}
