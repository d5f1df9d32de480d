package controllers

import (
	"github.com/shashiranjanraj/storehub/app/services"
	"github.com/shashiranjanraj/storehub/pkg/ctx"
	"github.com/shashiranjanraj/storehub/pkg/logger"
)

type AuthController struct {
	base
	service *services.AuthService
}

func NewAuthController(s *Services) *AuthController {
	return &AuthController{base: newBase(s), service: s.Auth}
}

type loginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login POST /api/login
func (c *AuthController) Login(x *ctx.Context) {
	var in loginInput
	if !x.BindJSON(&in) {
		return
	}

	res, err := c.service.Login(x.Context(), in.Username, in.Password)
	if err != nil {
		logger.WithCtx(x.Context()).Info("auth: login failed", "username", in.Username)
		x.Fail(err)
		return
	}
	x.Success(res)
}

// Me GET /api/me
func (c *AuthController) Me(x *ctx.Context) {
	caller, ok := c.caller(x)
	if !ok {
		return
	}
	x.Success(map[string]interface{}{
		"user_id":  caller.UserID,
		"role":     caller.Role,
		"store_id": caller.StoreID,
	})
}
