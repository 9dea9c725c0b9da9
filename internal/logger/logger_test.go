package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		env  string
	}{
		{"development logger", "development"},
		{"production logger", "production"},
		{"unknown env falls back to development", "staging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.env)
			require.NoError(t, err)
			require.NotNil(t, log)
			log.Sync()
		})
	}
}

func TestNewWithDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	log := NewWithDefaults()
	assert.NotNil(t, log)

	t.Setenv("APP_ENV", "production")
	log = NewWithDefaults()
	assert.NotNil(t, log)
}
