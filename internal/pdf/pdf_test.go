package pdf

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findBrowser() string {
	for _, name := range []string{"chromium", "chromium-browser", "google-chrome", "google-chrome-stable", "headless-shell"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

func TestNewChromeRenderer_Options(t *testing.T) {
	r := NewChromeRenderer()
	assert.Equal(t, DefaultTimeout, r.Timeout())

	r = NewChromeRenderer(WithTimeout(5*time.Second), WithExecPath("/usr/bin/chromium"), WithLogger(nil))
	assert.Equal(t, 5*time.Second, r.Timeout())
	assert.Equal(t, "/usr/bin/chromium", r.execPath)
	assert.NotNil(t, r.logger)

	r = NewChromeRenderer(WithTimeout(-1))
	assert.Equal(t, DefaultTimeout, r.Timeout())
}

func TestChromeRenderer_EmptyDocument(t *testing.T) {
	_, err := NewChromeRenderer().Render(context.Background(), "")
	assert.True(t, errors.Is(err, ErrEmptyDocument))
}

func TestChromeRenderer_Render(t *testing.T) {
	path := findBrowser()
	if path == "" {
		t.Skip("Skipping test: no Chrome/Chromium binary found")
	}

	r := NewChromeRenderer(WithExecPath(path), WithTimeout(20*time.Second))
	pdf, err := r.Render(context.Background(), "<html><body><h1>Consulting agreement</h1></body></html>")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}
