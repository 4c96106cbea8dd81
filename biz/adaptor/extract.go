package adaptor

import (
	"context"
	"strings"
	"time"

	"edu-platform/biz/application/dto/basic"
	"edu-platform/biz/infrastructure/config"
	"edu-platform/biz/infrastructure/consts"
	"edu-platform/biz/infrastructure/repository/user"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/golang-jwt/jwt/v4"
	"github.com/mitchellh/mapstructure"
)

type ctxKey string

const userKey ctxKey = "edu_user"

// NowFunc is replaced in tests to mint expired tokens.
var NowFunc = time.Now

func InjectUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// ExtractUser returns the user attached by the authentication middleware.
func ExtractUser(ctx context.Context) (*user.User, error) {
	u, ok := ctx.Value(userKey).(*user.User)
	if !ok || u == nil {
		return nil, consts.ErrNotAuthentication
	}
	return u, nil
}

// ExtractToken reads the bearer token from the Authorization header, falling
// back to the token query parameter used by websocket clients.
func ExtractToken(c *app.RequestContext) string {
	header := strings.TrimSpace(string(c.GetHeader("Authorization")))
	if header != "" {
		if len(header) > len(consts.BearerPrefix) && strings.EqualFold(header[:len(consts.BearerPrefix)], consts.BearerPrefix) {
			return strings.TrimSpace(header[len(consts.BearerPrefix):])
		}
		return ""
	}
	return string(c.Query("token"))
}

// GenerateJwtToken signs an ES256 access token.
/*
private key: openssl ecparam -genkey -name prime256v1 -noout -out private_key.pem
public key:  openssl ec -in private_key.pem -pubout -out public_key.pem
*/
func GenerateJwtToken(auth config.Auth, userId string, role consts.Role) (string, int64, error) {
	key, err := jwt.ParseECPrivateKeyFromPEM([]byte(auth.SecretKey))
	if err != nil {
		return "", 0, err
	}
	iat := NowFunc().Unix()
	exp := iat + auth.AccessExpire
	claims := make(jwt.MapClaims)
	claims["exp"] = exp
	claims["iat"] = iat
	claims["userId"] = userId
	claims["role"] = role.String()
	token := jwt.New(jwt.SigningMethodES256)
	token.Claims = claims
	tokenString, err := token.SignedString(key)
	if err != nil {
		return "", 0, err
	}
	return tokenString, exp, nil
}

// ParseJwtToken verifies signature and expiry and decodes the claims.
func ParseJwtToken(auth config.Auth, tokenString string) (*basic.UserMeta, error) {
	if tokenString == "" {
		return nil, consts.ErrNotAuthentication
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodES256.Alg()}))
	claims := jwt.MapClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return jwt.ParseECPublicKeyFromPEM([]byte(auth.PublicKey))
	})
	if err != nil || !token.Valid {
		return nil, consts.ErrInvalidToken
	}
	// jwt.MapClaims.Valid compares against the package clock
	if exp, ok := claims["exp"].(float64); !ok || int64(exp) <= NowFunc().Unix() {
		return nil, consts.ErrInvalidToken
	}
	meta := new(basic.UserMeta)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           meta,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(map[string]any(claims)); err != nil {
		return nil, consts.ErrInvalidToken
	}
	if meta.UserId == "" {
		return nil, consts.ErrInvalidToken
	}
	return meta, nil
}
