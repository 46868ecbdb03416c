package vlog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelWarn)
	log.Info("should be dropped")
	log.Warn("should appear")

	out := buf.String()
	assert.NotContains(t, out, "should be dropped")
	assert.Contains(t, out, "should appear")
}

func TestWithAppendsKeyvals(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelDebug).With("library_id", "abc")
	log.Debug("searched", "k", 5)

	line := buf.String()
	assert.True(t, strings.Contains(line, "library_id=abc"))
	assert.True(t, strings.Contains(line, "k=5"))
}

func TestNopDiscardsEverything(t *testing.T) {
	log := Nop()
	assert.NotPanics(t, func() {
		log.Debug("x")
		log.Info("x")
		log.Warn("x")
		log.Error("x")
		log.With("a", 1).Info("y")
	})
}
