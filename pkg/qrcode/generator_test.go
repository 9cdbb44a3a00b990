package qrcode_test

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	"github.com/vzoverflow/vzoverflow/pkg/qrcode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const provisioningURI = "otpauth://totp/VzOverFlow:alice%40example.com?secret=JBSWY3DPEHPK3PXP&issuer=VzOverFlow"

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		result, err := qrcode.Generate("", 256)
		require.Nil(t, result)
		assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
	})

	t.Run("whitespace-only content", func(t *testing.T) {
		t.Parallel()
		result, err := qrcode.Generate("   \t\n", 256)
		require.Nil(t, result)
		assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
	})

	t.Run("valid PNG output", func(t *testing.T) {
		t.Parallel()
		result, err := qrcode.Generate(provisioningURI, 256)
		require.NoError(t, err)
		require.NotEmpty(t, result)

		img, err := png.Decode(bytes.NewReader(result))
		require.NoError(t, err)
		assert.Equal(t, 256, img.Bounds().Dx())
		assert.Equal(t, 256, img.Bounds().Dy())
	})

	t.Run("non-positive size falls back to default", func(t *testing.T) {
		t.Parallel()
		result, err := qrcode.Generate(provisioningURI, 0)
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(result))
		require.NoError(t, err)
		assert.Equal(t, 256, img.Bounds().Dx())
	})
}

func TestGenerateBase64Image(t *testing.T) {
	t.Parallel()

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		_, err := qrcode.GenerateBase64Image("", 256)
		assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
	})

	t.Run("data URI round trip", func(t *testing.T) {
		t.Parallel()
		uri, err := qrcode.GenerateBase64Image(provisioningURI, 128)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

		raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
		require.NoError(t, err)

		_, err = png.Decode(bytes.NewReader(raw))
		assert.NoError(t, err)
	})
}
