package qrcode_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/qrcode"
)

var pngMagic = []byte{0x89, 0x50, 0x4e, 0x47}

func TestGenerate(t *testing.T) {
	t.Parallel()

	png, err := qrcode.Generate("otpauth://totp/AuthKit:user@example.com?secret=JBSWY3DPEHPK3PXP", 256)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic), "output must be a PNG")
}

func TestGenerateEmptyContent(t *testing.T) {
	t.Parallel()

	_, err := qrcode.Generate("", 256)
	assert.ErrorIs(t, err, qrcode.ErrEmptyContent)

	_, err = qrcode.Generate("   ", 256)
	assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
}

func TestGenerateDefaultSize(t *testing.T) {
	t.Parallel()

	png, err := qrcode.Generate("content", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestDataURI(t *testing.T) {
	t.Parallel()

	uri, err := qrcode.DataURI("content", 128)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	assert.Greater(t, len(uri), len("data:image/png;base64,"))
}
