package state

import (
	"bytes"
	"encoding/base64"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/klauspost/compress/zlib"
	"github.com/pribylovaa/icebreaker-frame/internal/models"
	"github.com/pribylovaa/icebreaker-frame/internal/profile"
	"github.com/stretchr/testify/require"
)

func fullProfile() *models.RenderedProfile {
	return &models.RenderedProfile{
		AvatarURL:              "https://i.imgur.com/abc.png",
		DisplayName:            "alice.eth",
		Bio:                    "builder, café ☕",
		JobTitle:               "Engineer",
		Location:               "Lisbon",
		NetworkingStatus:       "open_to_work",
		PrimarySkill:           "Go",
		CredentialsCount:       7,
		VerifiedChannels:       []string{"github", "farcaster"},
		VerifiedCompanies:      []string{"acme.com"},
		HighlightedCredentials: []string{"qBuilder"},
	}
}

// zlibToken — собирает токен в обход Encode (для негативных кейсов).
func zlibToken(t *testing.T, payload string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return base64.RawURLEncoding.EncodeToString(buf.Bytes())
}

func TestEncode_Nil(t *testing.T) {
	t.Parallel()

	token, err := Encode(nil)
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	cases := map[string]*models.RenderedProfile{
		"full":    fullProfile(),
		"minimal": {AvatarURL: "/avatar_black.png", DisplayName: "0x1111...1111"},
		"empty_name": {
			AvatarURL:              "/avatar_black.png",
			VerifiedChannels:       []string{},
			VerifiedCompanies:      []string{},
			HighlightedCredentials: []string{},
		},
	}

	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			token, err := Encode(p)
			require.NoError(t, err)
			require.NotEmpty(t, token)
			require.LessOrEqual(t, len(token), MaxTokenLen)

			got := Decode(token)
			require.NotNil(t, got)
			if diff := cmp.Diff(p, got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}

			require.NotNil(t, got.VerifiedChannels)
			require.NotNil(t, got.VerifiedCompanies)
			require.NotNil(t, got.HighlightedCredentials)
		})
	}
}

// Профиль, собранный Normalize из «неудобных» данных каталога, должен
// переживать Encode/Decode без изменений.
func TestRoundTrip_NormalizedProfiles(t *testing.T) {
	t.Parallel()

	cases := map[string]*models.Profile{
		"cloudinary_invalid_utf8": {
			WalletAddress: "0x1111111111111111",
			AvatarURL:     "https://res.cloudinary.com/merkle-manufactory/image/fetch/x/https%3A%2F%2Fa.com%2F%FF.png",
		},
		"multibyte_wallet": {
			WalletAddress: "ab€defghi€xyz",
		},
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p := profile.Normalize(raw)
			token, err := Encode(p)
			require.NoError(t, err)

			got := Decode(token)
			require.NotNil(t, got)
			require.Equal(t, p, got)
		})
	}
}

func TestEncode_Deterministic(t *testing.T) {
	t.Parallel()

	a, err := Encode(fullProfile())
	require.NoError(t, err)
	b, err := Encode(fullProfile())
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.NotContains(t, a, "=")
	require.NotContains(t, a, "+")
	require.NotContains(t, a, "/")
}

func TestEncode_TooLarge(t *testing.T) {
	t.Parallel()

	// Псевдослучайный текст почти не сжимается.
	rnd := rand.New(rand.NewSource(1))
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	var sb strings.Builder
	for sb.Len() < 8*MaxTokenLen {
		sb.WriteByte(alphabet[rnd.Intn(len(alphabet))])
	}

	p := fullProfile()
	p.Bio = sb.String()

	token, err := Encode(p)
	require.ErrorIs(t, err, ErrTokenTooLarge)
	require.Empty(t, token)
}

func TestDecode_AcceptsStdAlphabet(t *testing.T) {
	t.Parallel()

	token, err := Encode(fullProfile())
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)

	std := base64.StdEncoding.EncodeToString(raw)
	require.Equal(t, fullProfile().DisplayName, Decode(std).DisplayName)
}

func TestDecode_Totality(t *testing.T) {
	t.Parallel()

	valid, err := Encode(fullProfile())
	require.NoError(t, err)

	inputs := map[string]string{
		"empty":             "",
		"spaces":            "   ",
		"not_base64":        "!!!not-base64!!!",
		"truncated":         valid[:len(valid)/2],
		"plain_base64":      base64.RawURLEncoding.EncodeToString([]byte("hello world")),
		"binary":            base64.RawURLEncoding.EncodeToString([]byte{0x78, 0x9c, 0xff, 0x00, 0x13}),
		"not_json":          zlibToken(t, "not json at all"),
		"json_array":        zlibToken(t, `["a","b"]`),
		"unknown_field":     zlibToken(t, `{"a":"x","n":"y","zz":1}`),
		"trailing_data":     zlibToken(t, `{"a":"x","n":"y"}{"a":"z"}`),
		"empty_avatar":      zlibToken(t, `{"a":"","n":"y"}`),
		"negative_count":    zlibToken(t, `{"a":"x","n":"y","c":-1}`),
		"wrong_types":       zlibToken(t, `{"a":1,"n":true}`),
		"huge":              strings.Repeat("A", 3*MaxTokenLen),
		"null":              zlibToken(t, `null`),
		"inflate_too_large": zlibToken(t, `{"a":"x","n":"`+strings.Repeat("y", maxInflated)+`"}`),
	}

	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			require.NotPanics(t, func() {
				require.Nil(t, Decode(in))
			})
		})
	}
}

func TestDecodeErr_ReportsReason(t *testing.T) {
	t.Parallel()

	p, err := DecodeErr("")
	require.NoError(t, err)
	require.Nil(t, p)

	p, err = DecodeErr("%%%")
	require.Error(t, err)
	require.Nil(t, p)
	require.Contains(t, err.Error(), "state.Decode")
}
