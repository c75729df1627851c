package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStdLogger_ComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := newStdLogger("reactions", &buf)

	l.Warningf("toggle conflict on post %s", "post1")

	assert.Contains(t, buf.String(), "[WARNING] reactions: toggle conflict on post post1")
}

func TestStdLogger_NoComponent(t *testing.T) {
	var buf bytes.Buffer
	l := newStdLogger("", &buf)

	l.Infof("server starting")

	out := buf.String()
	assert.Contains(t, out, "[INFO] server starting")
	assert.NotContains(t, out, ": server starting")
}

func TestStdLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := newStdLogger("posts", &buf)

	l.Debugf("d")
	l.Infof("i")
	l.Warnf("w")
	l.Errorf("e")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] posts: d")
	assert.Contains(t, out, "[INFO] posts: i")
	assert.Contains(t, out, "[WARN] posts: w")
	assert.Contains(t, out, "[ERROR] posts: e")
}
