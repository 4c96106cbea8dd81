package service

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"

	"edu-platform/biz/adaptor"
	"edu-platform/biz/application/dto/edu"
	"edu-platform/biz/infrastructure/config"
	"edu-platform/biz/infrastructure/consts"
	"edu-platform/biz/infrastructure/repository/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc/codes"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	priv, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)
	pub, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	c := new(config.Config)
	c.Auth = config.Auth{
		SecretKey:    string(pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: priv})),
		PublicKey:    string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pub})),
		AccessExpire: 3600,
	}
	return c
}

func newUserService(t *testing.T) (*UserService, *fakeUsers) {
	user.BcryptCost = bcrypt.MinCost
	users := newFakeUsers()
	return &UserService{Config: testConfig(t), UserMapper: users}, users
}

func TestRegisterAndLogin(t *testing.T) {
	s, users := newUserService(t)
	ctx := context.Background()

	resp, err := s.Register(ctx, &edu.RegisterReq{Name: " Ada ", Email: "Ada@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.Equal(t, "Ada", resp.User.Name)
	assert.Equal(t, consts.RoleStudent.String(), resp.User.Role)
	assert.NotEmpty(t, resp.User.ID)

	stored := users.get(resp.User.ID)
	assert.NotEqual(t, "secret1", stored.Password)

	login, err := s.Login(ctx, &edu.LoginReq{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	u, err := s.Authenticate(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, u.ID.Hex())
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	s, _ := newUserService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, &edu.RegisterReq{Name: "a", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = s.Register(ctx, &edu.RegisterReq{Name: "b", Email: "A@example.com", Password: "secret2"})
	assert.ErrorIs(t, err, consts.ErrDuplicateEmail)
}

func TestRegisterRejectsLongMultibytePassword(t *testing.T) {
	s, users := newUserService(t)
	req := &edu.RegisterReq{Name: "mei", Email: "mei@example.com", Password: strings.Repeat("密", 30)}
	require.NoError(t, adaptor.Validate(req))

	_, err := s.Register(context.Background(), req)
	assert.ErrorIs(t, err, consts.ErrPasswordTooLong)
	assert.Equal(t, codes.InvalidArgument, consts.ErrPasswordTooLong.Code())
	_, err = users.FindOneByEmail(context.Background(), "mei@example.com")
	assert.ErrorIs(t, err, consts.ErrNotFound)

	req.Password = strings.Repeat("密", 24)
	_, err = s.Register(context.Background(), req)
	assert.NoError(t, err)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	s, _ := newUserService(t)
	_, err := s.Register(context.Background(), &edu.RegisterReq{Name: "a", Email: "a@example.com", Password: "secret1", Role: "admin"})
	assert.ErrorIs(t, err, consts.ErrInvalidRole)
}

func TestLoginFailuresLookAlike(t *testing.T) {
	s, _ := newUserService(t)
	ctx := context.Background()
	_, err := s.Register(ctx, &edu.RegisterReq{Name: "a", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = s.Login(ctx, &edu.LoginReq{Email: "a@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, consts.ErrSignIn)
	_, err = s.Login(ctx, &edu.LoginReq{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, consts.ErrSignIn)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	s, users := newUserService(t)
	ctx := context.Background()

	_, err := s.Authenticate(ctx, "")
	assert.ErrorIs(t, err, consts.ErrNotAuthentication)
	_, err = s.Authenticate(ctx, "not.a.token")
	assert.ErrorIs(t, err, consts.ErrInvalidToken)

	resp, err := s.Register(ctx, &edu.RegisterReq{Name: "a", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)
	delete(users.users, resp.User.ID)
	_, err = s.Authenticate(ctx, resp.Token)
	assert.ErrorIs(t, err, consts.ErrInvalidToken)

	other, _ := newUserService(t)
	_, err = other.Authenticate(ctx, resp.Token)
	assert.ErrorIs(t, err, consts.ErrInvalidToken)
}

func TestGetMe(t *testing.T) {
	s, users := newUserService(t)
	_, err := s.GetMe(context.Background())
	assert.ErrorIs(t, err, consts.ErrNotAuthentication)

	u := users.add("grace", consts.RoleTeacher)
	view, err := s.GetMe(as(u))
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), view.ID)
	assert.Equal(t, "teacher", view.Role)
}
