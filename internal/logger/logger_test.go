package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNew_Level(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"ERROR", logrus.ErrorLevel},
		{"", logrus.WarnLevel},
		{"loud", logrus.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.level).GetLevel())
		})
	}
}

func TestNewWithOutput_WritesText(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("info", &buf)

	log.WithFields(logrus.Fields{"category_id": "abc"}).Info("category saved")
	log.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "level=info")
	assert.Contains(t, out, `msg="category saved"`)
	assert.Contains(t, out, "category_id=abc")
	assert.NotContains(t, out, "hidden")
}
