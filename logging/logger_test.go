package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	Logger().Info("hello")
	assert.Equal(t, 1, logs.Len())

	SetLogger(nil)
	Logger().Info("dropped")
	assert.Equal(t, 1, logs.Len())
}
