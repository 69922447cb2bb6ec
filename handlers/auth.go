package handlers

import (
	"context"
	"net/http"
	"strings"

	"dine-insights/models"
	"dine-insights/response"

	"github.com/golang-jwt/jwt"
)

type contextKey string

const shopIDKey contextKey = "shopID"

// ParseToken 校验并解析平台认证服务签发的令牌。
// 本服务不签发令牌，注册/登录由平台认证服务负责
func ParseToken(secret []byte, tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.NewValidationError("invalid token", jwt.ValidationErrorMalformed)
	}

	return claims, nil
}

// AuthenticateTokenShop 返回商家认证中间件
func AuthenticateTokenShop(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "缺少授权头")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := ParseToken(secret, tokenString)
			if err != nil {
				response.Unauthorized(w, "无效令牌")
				return
			}

			if claims.Type != "access" || claims.ShopID == 0 {
				response.Unauthorized(w, "无效的店铺令牌")
				return
			}

			ctx := context.WithValue(r.Context(), shopIDKey, claims.ShopID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetShopID 从context取商家ID，未认证时为 0
func GetShopID(r *http.Request) int {
	if v := r.Context().Value(shopIDKey); v != nil {
		if id, ok := v.(int); ok {
			return id
		}
	}
	return 0
}
