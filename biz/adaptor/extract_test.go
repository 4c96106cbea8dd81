package adaptor

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"
	"time"

	"edu-platform/biz/infrastructure/config"
	"edu-platform/biz/infrastructure/consts"
	"edu-platform/biz/infrastructure/repository/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuth(t *testing.T) config.Auth {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	priv, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)
	pub, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	return config.Auth{
		SecretKey:    string(pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: priv})),
		PublicKey:    string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pub})),
		AccessExpire: 3600,
	}
}

func TestJwtRoundTrip(t *testing.T) {
	auth := testAuth(t)
	token, exp, err := GenerateJwtToken(auth, "64b7f0c2a1b2c3d4e5f60718", consts.RoleTeacher)
	require.NoError(t, err)
	assert.Greater(t, exp, time.Now().Unix())

	meta, err := ParseJwtToken(auth, token)
	require.NoError(t, err)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", meta.UserId)
	assert.Equal(t, "teacher", meta.Role)
}

func TestJwtRejectsTampering(t *testing.T) {
	auth := testAuth(t)
	token, _, err := GenerateJwtToken(auth, "64b7f0c2a1b2c3d4e5f60718", consts.RoleStudent)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	// swap the payload for one claiming another user
	other, _, err := GenerateJwtToken(auth, "000000000000000000000001", consts.RoleTeacher)
	require.NoError(t, err)
	forged := parts[0] + "." + strings.Split(other, ".")[1] + "." + parts[2]
	_, err = ParseJwtToken(auth, forged)
	assert.ErrorIs(t, err, consts.ErrInvalidToken)

	_, err = ParseJwtToken(testAuth(t), token)
	assert.ErrorIs(t, err, consts.ErrInvalidToken)

	_, err = ParseJwtToken(auth, "")
	assert.ErrorIs(t, err, consts.ErrNotAuthentication)
}

func TestJwtRejectsExpired(t *testing.T) {
	auth := testAuth(t)
	NowFunc = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	defer func() { NowFunc = time.Now }()

	token, _, err := GenerateJwtToken(auth, "64b7f0c2a1b2c3d4e5f60718", consts.RoleStudent)
	require.NoError(t, err)
	NowFunc = time.Now
	_, err = ParseJwtToken(auth, token)
	assert.ErrorIs(t, err, consts.ErrInvalidToken)
}

func TestExtractUser(t *testing.T) {
	_, err := ExtractUser(context.Background())
	assert.ErrorIs(t, err, consts.ErrNotAuthentication)

	u := &user.User{Name: "ada"}
	got, err := ExtractUser(InjectUser(context.Background(), u))
	require.NoError(t, err)
	assert.Same(t, u, got)
}
