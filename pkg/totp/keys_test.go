package totp_test

import (
	"testing"

	"github.com/vzoverflow/vzoverflow/pkg/base32"
	"github.com/vzoverflow/vzoverflow/pkg/totp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecretKey(t *testing.T) {
	t.Parallel()

	secret, err := totp.GenerateSecretKey()
	require.NoError(t, err)

	assert.Regexp(t, totp.ValidateSecretKeyRegex, secret)
	// 20 bytes encode to exactly 32 Base32 symbols, no fill bits left over.
	assert.Len(t, secret, 32)
	assert.Len(t, base32.Decode(secret), totp.SecretKeySize)

	other, err := totp.GenerateSecretKey()
	require.NoError(t, err)
	assert.NotEqual(t, secret, other)
}

func TestProvisioningURI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  totp.KeyParams
		want    string
		wantErr error
	}{
		{
			name: "basic URI",
			params: totp.KeyParams{
				Secret:      "JBSWY3DPEHPK3PXP",
				AccountName: "alice@example.com",
				Issuer:      "VzOverFlow",
			},
			want: "otpauth://totp/VzOverFlow:alice%40example.com?secret=JBSWY3DPEHPK3PXP&issuer=VzOverFlow",
		},
		{
			name: "issuer with spaces",
			params: totp.KeyParams{
				Secret:      "JBSWY3DPEHPK3PXP",
				AccountName: "bob@example.com",
				Issuer:      "Vz Over Flow",
			},
			want: "otpauth://totp/Vz%20Over%20Flow:bob%40example.com?secret=JBSWY3DPEHPK3PXP&issuer=Vz%20Over%20Flow",
		},
		{
			name: "missing secret",
			params: totp.KeyParams{
				AccountName: "alice@example.com",
				Issuer:      "VzOverFlow",
			},
			wantErr: totp.ErrMissingSecret,
		},
		{
			name: "padded secret rejected",
			params: totp.KeyParams{
				Secret:      "JBSWY3DPEHPK3PX=",
				AccountName: "alice@example.com",
				Issuer:      "VzOverFlow",
			},
			wantErr: totp.ErrInvalidSecret,
		},
		{
			name: "missing account name",
			params: totp.KeyParams{
				Secret: "JBSWY3DPEHPK3PXP",
				Issuer: "VzOverFlow",
			},
			wantErr: totp.ErrMissingAccountName,
		},
		{
			name: "missing issuer",
			params: totp.KeyParams{
				Secret:      "JBSWY3DPEHPK3PXP",
				AccountName: "alice@example.com",
			},
			wantErr: totp.ErrMissingIssuer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := totp.ProvisioningURI(tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatKeyForManualEntry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "shorter than one group", in: "ABC", want: "ABC"},
		{name: "exact groups", in: "ABCDEFGH", want: "ABCD EFGH"},
		{name: "trailing partial group", in: "ABCDEFGHIJ", want: "ABCD EFGH IJ"},
		{name: "full secret", in: "JBSWY3DPEHPK3PXPJBSWY3DPEHPK3PXP", want: "JBSW Y3DP EHPK 3PXP JBSW Y3DP EHPK 3PXP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, totp.FormatKeyForManualEntry(tt.in))
		})
	}
}
