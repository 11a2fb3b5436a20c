package controllers

import (
	"context"
	"time"

	"github.com/go-chi/jwtauth"

	"fleetwatch/src/config"
	"fleetwatch/src/schemas"
	"fleetwatch/src/utils"
)

const tokenTTL = 24 * time.Hour

type TokenControllerI interface {
	IssueToken(ctx context.Context, req *schemas.TokenRequest) (*schemas.TokenResponse, error)
}

type TokenController struct {
	Auth    *jwtauth.JWTAuth
	authCfg config.AuthConfig
}

func NewTokenController(auth *jwtauth.JWTAuth, authCfg config.AuthConfig) *TokenController {
	return &TokenController{Auth: auth, authCfg: authCfg}
}

func (tc *TokenController) IssueToken(_ context.Context, req *schemas.TokenRequest) (*schemas.TokenResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, utils.BadRequest("username and password are required")
	}
	if req.Username != tc.authCfg.AdminUser || req.Password != tc.authCfg.AdminPassword {
		return nil, utils.Unauthorized("invalid credentials")
	}

	claims := map[string]interface{}{"sub": req.Username}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, tokenTTL)

	_, tokenString, err := tc.Auth.Encode(claims)
	if err != nil {
		return nil, err
	}

	return &schemas.TokenResponse{
		AccessToken: tokenString,
		TokenType:   "Bearer",
		ExpiresIn:   int64(tokenTTL.Seconds()),
	}, nil
}
