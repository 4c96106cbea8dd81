package service

import (
	"context"
	"errors"
	"strings"

	"edu-platform/biz/adaptor"
	"edu-platform/biz/application/dto/edu"
	"edu-platform/biz/infrastructure/config"
	"edu-platform/biz/infrastructure/consts"
	"edu-platform/biz/infrastructure/repository/user"
	"edu-platform/biz/infrastructure/util"
	"edu-platform/biz/infrastructure/util/log"

	"github.com/google/wire"
	"golang.org/x/crypto/bcrypt"
)

type IUserService interface {
	Register(ctx context.Context, req *edu.RegisterReq) (*edu.AuthResp, error)
	Login(ctx context.Context, req *edu.LoginReq) (*edu.AuthResp, error)
	GetMe(ctx context.Context) (*edu.User, error)
	Authenticate(ctx context.Context, token string) (*user.User, error)
}

type UserService struct {
	Config     *config.Config
	UserMapper user.IMongoMapper
}

var UserServiceSet = wire.NewSet(
	wire.Struct(new(UserService), "*"),
	wire.Bind(new(IUserService), new(*UserService)),
)

func (s *UserService) Register(ctx context.Context, req *edu.RegisterReq) (*edu.AuthResp, error) {
	role, err := consts.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	// the validator counts runes, bcrypt counts bytes
	if len(req.Password) > user.MaxPasswordBytes {
		return nil, consts.ErrPasswordTooLong
	}
	email := normalizeEmail(req.Email)

	_, err = s.UserMapper.FindOneByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, consts.ErrDuplicateEmail
	case !errors.Is(err, consts.ErrNotFound):
		log.CtxError(ctx, "Register find email %s failed: %v", email, err)
		return nil, consts.ErrSignUp
	}

	u := &user.User{
		Name:  strings.TrimSpace(req.Name),
		Email: email,
		Role:  role,
	}
	if err = u.SetPassword(req.Password); err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, consts.ErrPasswordTooLong
		}
		log.CtxError(ctx, "Register hash password failed: %v", err)
		return nil, consts.ErrSignUp
	}
	if err = s.UserMapper.Insert(ctx, u); err != nil {
		if errors.Is(err, consts.ErrDuplicateEmail) {
			return nil, err
		}
		log.CtxError(ctx, "Register insert user failed: %v", err)
		return nil, consts.ErrSignUp
	}
	log.CtxInfo(ctx, "Register user %s role %s", u.ID.Hex(), u.Role)
	return s.issue(u)
}

func (s *UserService) Login(ctx context.Context, req *edu.LoginReq) (*edu.AuthResp, error) {
	u, err := s.UserMapper.FindOneByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if !errors.Is(err, consts.ErrNotFound) {
			log.CtxError(ctx, "Login find user failed: %v", err)
			return nil, err
		}
		return nil, consts.ErrSignIn
	}
	if !u.CheckPassword(req.Password) {
		return nil, consts.ErrSignIn
	}
	return s.issue(u)
}

func (s *UserService) GetMe(ctx context.Context) (*edu.User, error) {
	u, err := adaptor.ExtractUser(ctx)
	if err != nil {
		return nil, err
	}
	return toUserView(u)
}

// Authenticate verifies token and loads its user. A token for a user that no
// longer exists is rejected like a bad token.
func (s *UserService) Authenticate(ctx context.Context, token string) (*user.User, error) {
	meta, err := adaptor.ParseJwtToken(s.Config.Auth, token)
	if err != nil {
		return nil, err
	}
	u, err := s.UserMapper.FindOne(ctx, meta.UserId)
	switch {
	case err == nil:
		return u, nil
	case errors.Is(err, consts.ErrNotFound), errors.Is(err, consts.ErrInvalidObjectId):
		return nil, consts.ErrInvalidToken
	default:
		log.CtxError(ctx, "Authenticate load user %s failed: %v", meta.UserId, err)
		return nil, err
	}
}

func (s *UserService) issue(u *user.User) (*edu.AuthResp, error) {
	token, exp, err := adaptor.GenerateJwtToken(s.Config.Auth, u.ID.Hex(), u.Role)
	if err != nil {
		log.Error("issue token for %s failed: %v", u.ID.Hex(), err)
		return nil, consts.ErrInternal
	}
	view, err := toUserView(u)
	if err != nil {
		return nil, err
	}
	return &edu.AuthResp{Token: token, Expire: exp, User: view}, nil
}

func toUserView(u *user.User) (*edu.User, error) {
	view := new(edu.User)
	if err := util.Copy(view, u); err != nil {
		return nil, err
	}
	return view, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
