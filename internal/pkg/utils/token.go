package utils

import (
	"fmt"

	"github.com/golang-jwt/jwt"
	"github.com/spf13/viper"

	"github.com/ougirez/covidtrack/internal/pkg/constants"
)

type AuthToken struct {
	Secret string `json:"secret"`
	jwt.StandardClaims
}

// ParseAuthToken validates the HMAC-signed admin token and returns its
// claims.
func ParseAuthToken(tokenString string) (*AuthToken, error) {
	claims := &AuthToken{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(viper.GetString(constants.ViperSigningKey)), nil
	})
	if err != nil || !token.Valid {
		return nil, constants.ErrUnauthorized
	}

	return claims, nil
}
