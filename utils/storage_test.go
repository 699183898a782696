package utils

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURI(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("png-bytes"))

	data, ext, err := DecodeDataURI("data:image/png;base64," + payload)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.Equal(t, ".png", ext)

	data, ext, err = DecodeDataURI(payload)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.Equal(t, ".jpg", ext)

	_, _, err = DecodeDataURI("")
	assert.Error(t, err)
	_, _, err = DecodeDataURI("data:image/png,notbase64")
	assert.Error(t, err)
}

func TestLocalStorage_Save(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStorage(root, "http://localhost:8080/")

	url, err := store.Save(context.Background(), "avatars", "me.PNG", strings.NewReader("img"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/avatars/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	name := url[strings.LastIndex(url, "/")+1:]
	b, err := os.ReadFile(filepath.Join(root, "avatars", name))
	require.NoError(t, err)
	assert.Equal(t, "img", string(b))
}

func TestLocalStorage_StaysUnderRoot(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStorage(root, "")

	_, err := store.Save(context.Background(), "../../escape", "../x.jpg", strings.NewReader("img"))
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(root, "escape"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
