// Package controllers adapts HTTP requests to the services.
package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/stockpile/app/models"
	"github.com/shashiranjanraj/stockpile/app/services"
	"github.com/shashiranjanraj/stockpile/pkg/ctx"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Register handles POST /api/auth/register.
func (ac *AuthController) Register(c *ctx.Context) {
	var input models.RegisterInput
	if !c.BindJSON(&input) {
		return
	}
	res, err := ac.service.Register(c.Context(), input)
	if err != nil {
		c.Fail(err, "Failed to register user")
		return
	}
	c.Created(res)
}

// Login handles POST /api/auth/login.
func (ac *AuthController) Login(c *ctx.Context) {
	var input models.LoginInput
	if !c.BindJSON(&input) {
		return
	}
	res, err := ac.service.Login(c.Context(), input)
	if err != nil {
		c.Fail(err, "Failed to log in")
		return
	}
	c.Success(res)
}

// Me handles GET /api/auth/me.
func (ac *AuthController) Me(c *ctx.Context) {
	p, ok := c.Principal()
	if !ok {
		c.Error(http.StatusUnauthorized, "No token provided")
		return
	}
	c.Success(map[string]any{"user": p})
}
