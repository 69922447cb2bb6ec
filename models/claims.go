package models

import "github.com/golang-jwt/jwt"

// Claims 平台认证服务签发的令牌声明，本服务只做校验不做签发
type Claims struct {
	ShopID int    `json:"shop_id,omitempty"`
	Type   string `json:"type"` // access / refresh
	jwt.StandardClaims
}
