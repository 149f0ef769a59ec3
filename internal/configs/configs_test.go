package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("valid port", func(t *testing.T) {
		cfg, err := LoadConfig([]string{"9001"})
		require.NoError(t, err)
		assert.Equal(t, 9001, cfg.Port)
	})

	t.Run("missing argument", func(t *testing.T) {
		_, err := LoadConfig(nil)
		assert.Error(t, err)
	})

	t.Run("too many arguments", func(t *testing.T) {
		_, err := LoadConfig([]string{"9001", "extra"})
		assert.Error(t, err)
	})

	t.Run("non numeric port", func(t *testing.T) {
		_, err := LoadConfig([]string{"not-a-port"})
		assert.Error(t, err)
	})

	t.Run("out of range port", func(t *testing.T) {
		_, err := LoadConfig([]string{"70000"})
		assert.Error(t, err)
	})
}
