// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/newsdesk/internal/platform/sec"
)

// writeKeyPair writes a fresh RSA key pair as PEM files and returns their paths.
func writeKeyPair(t *testing.T) (privatePath, publicPath string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	dir := t.TempDir()
	privatePath = filepath.Join(dir, "private.pem")
	publicPath = filepath.Join(dir, "public.pem")

	require.NoError(t, os.WriteFile(privatePath, pem.EncodeToMemory(&pem.Block{
		Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key),
	}), 0o600))
	require.NoError(t, os.WriteFile(publicPath, pem.EncodeToMemory(&pem.Block{
		Type: "PUBLIC KEY", Bytes: publicDER,
	}), 0o600))

	return privatePath, publicPath
}

/*
TestTokenService_RoundTrip verifies that issued tokens verify with their claims.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	privatePath, publicPath := writeKeyPair(t)

	service, err := sec.NewTokenService(privatePath, publicPath, "newsdesk")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("editor-1", "erika", string(sec.RoleEditor), time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "editor-1", claims.UserID)
	assert.Equal(t, "erika", claims.Username)
	assert.Equal(t, string(sec.RoleEditor), claims.Role)
}

/*
TestTokenService_Rejects covers expired, foreign-issuer and malformed tokens.
*/
func TestTokenService_Rejects(t *testing.T) {
	privatePath, publicPath := writeKeyPair(t)

	service, err := sec.NewTokenService(privatePath, publicPath, "newsdesk")
	require.NoError(t, err)

	foreign, err := sec.NewTokenService(privatePath, publicPath, "someone-else")
	require.NoError(t, err)

	expired, err := service.GenerateAccessToken("u1", "u", string(sec.RoleAdmin), -time.Minute)
	require.NoError(t, err)

	otherIssuer, err := foreign.GenerateAccessToken("u1", "u", string(sec.RoleAdmin), time.Minute)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":      expired,
		"other_issuer": otherIssuer,
		"garbage":      "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := service.VerifyToken(token)
			assert.Error(t, err)
		})
	}
}

/*
TestTokenService_VerifyOnly verifies with the public key alone and refuses to sign.
*/
func TestTokenService_VerifyOnly(t *testing.T) {
	privatePath, publicPath := writeKeyPair(t)

	issuer, err := sec.NewTokenService(privatePath, publicPath, "newsdesk")
	require.NoError(t, err)
	assert.True(t, issuer.CanSign())

	verifier, err := sec.NewTokenService("", publicPath, "newsdesk")
	require.NoError(t, err)
	assert.False(t, verifier.CanSign())

	token, err := issuer.GenerateAccessToken("editor-1", "erika", string(sec.RoleEditor), time.Minute)
	require.NoError(t, err)

	claims, err := verifier.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "editor-1", claims.UserID)

	_, err = verifier.GenerateAccessToken("editor-1", "erika", string(sec.RoleEditor), time.Minute)
	assert.ErrorIs(t, err, sec.ErrSigningUnavailable)
}

/*
TestNewTokenService_Errors reports unreadable or mismatched keys with the package
prefix.
*/
func TestNewTokenService_Errors(t *testing.T) {
	_, publicPath := writeKeyPair(t)
	otherPrivatePath, _ := writeKeyPair(t)
	missing := filepath.Join(t.TempDir(), "missing.pem")

	tests := []struct {
		name        string
		privatePath string
		publicPath  string
	}{
		{"missing_public", "", missing},
		{"missing_private", missing, publicPath},
		{"private_is_public", publicPath, publicPath},
		{"mismatched_pair", otherPrivatePath, publicPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sec.NewTokenService(tt.privatePath, tt.publicPath, "newsdesk")
			require.Error(t, err)
			assert.True(t, strings.HasPrefix(err.Error(), "sec: "), err.Error())
		})
	}
}

/*
TestUserRole_AtLeast verifies the role hierarchy.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleEditor))
	assert.True(t, sec.RoleEditor.AtLeast(sec.RoleEditor))
	assert.False(t, sec.RoleAuthor.AtLeast(sec.RoleEditor))
	assert.False(t, sec.UserRole("").AtLeast(sec.RoleReader))
	assert.False(t, sec.UserRole("root").AtLeast(sec.UserRole("unknown")))
}
