package opener

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeLookPath(available ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, a := range available {
			if a == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
}

func TestOpener_Open(t *testing.T) {
	t.Run("disabled is a no-op", func(t *testing.T) {
		o := &Opener{}
		assert.NoError(t, o.Open("/does/not/matter.pptx", true))
	})

	t.Run("missing file", func(t *testing.T) {
		o := &Opener{handlers: platformHandlers("linux"), lookPath: fakeLookPath("xdg-open")}
		err := o.Open(filepath.Join(t.TempDir(), "missing.pptx"), false)
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("no handler available", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "deck.pptx")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

		o := &Opener{handlers: platformHandlers("linux"), lookPath: fakeLookPath()}
		err := o.Open(path, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "opener selection")
	})
}

func TestOpener_Command(t *testing.T) {
	t.Run("first available handler wins", func(t *testing.T) {
		o := &Opener{handlers: platformHandlers("linux"), lookPath: fakeLookPath("gio", "libreoffice")}
		name, err := o.Command()
		require.NoError(t, err)
		assert.Equal(t, "gio", name)
	})

	t.Run("unknown platform", func(t *testing.T) {
		o := &Opener{handlers: platformHandlers("plan9"), lookPath: fakeLookPath("open")}
		_, err := o.Command()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no file opener")
	})
}

func TestPlatformHandlers(t *testing.T) {
	darwin := platformHandlers("darwin")
	require.Len(t, darwin, 1)
	assert.Equal(t, []string{"/tmp/a.pptx"}, darwin[0].Args("/tmp/a.pptx"))

	windows := platformHandlers("windows")
	require.Len(t, windows, 1)
	assert.Equal(t, []string{"url.dll,FileProtocolHandler", `C:\a.pptx`}, windows[0].Args(`C:\a.pptx`))

	linux := platformHandlers("linux")
	assert.Equal(t, "xdg-open", linux[0].Command)
	assert.Equal(t, []string{"open", "/tmp/a.pptx"}, linux[1].Args("/tmp/a.pptx"))
}
