package basic

type Response struct {
	Message string `json:"message"`
}

type PaginationOptions struct {
	Page  *int64 `json:"page,omitempty"`
	Limit *int64 `json:"limit,omitempty"`
}

// UserMeta is the claim set carried by an access token.
type UserMeta struct {
	UserId string `mapstructure:"userId"`
	Role   string `mapstructure:"role"`
	Exp    int64  `mapstructure:"exp"`
	Iat    int64  `mapstructure:"iat"`
}
