package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Level(t *testing.T) {
	logger, err := New("debug", nil)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger, err = New("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultLevel, logger.GetLevel())

	_, err = New("loud", nil)
	assert.Error(t, err)
}

func TestFormatter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("info", &buf)
	require.NoError(t, err)

	logger.WithFields(logrus.Fields{"deck": "Vocabulary", "added": 3}).Info("sync finished")
	logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "[info] sync finished added=3 deck=Vocabulary")
	assert.NotContains(t, out, "hidden")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}
