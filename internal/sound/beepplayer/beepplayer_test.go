package beepplayer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Errors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.wav"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "alarm.ogg")
	require.NoError(t, os.WriteFile(path, []byte("OggS"), 0o600))

	_, err = Open(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Open(%q) error = %v, want ErrUnsupportedFormat", path, err)
	}

	bogus := filepath.Join(t.TempDir(), "alarm.wav")
	require.NoError(t, os.WriteFile(bogus, []byte("not a riff file"), 0o600))

	_, err = Open(bogus)
	assert.Error(t, err)
}
