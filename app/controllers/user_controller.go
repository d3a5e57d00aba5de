package controllers

import (
	"github.com/shashiranjanraj/stockpile/app/models"
	"github.com/shashiranjanraj/stockpile/app/services"
	"github.com/shashiranjanraj/stockpile/pkg/ctx"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

func (uc *UserController) Index(c *ctx.Context) {
	users, err := uc.service.List(c.Context())
	if err != nil {
		c.Fail(err, "Failed to fetch users")
		return
	}
	c.Success(users)
}

func (uc *UserController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	u, err := uc.service.Get(c.Context(), id)
	if err != nil {
		c.Fail(err, "Failed to fetch user")
		return
	}
	c.Success(u)
}

func (uc *UserController) Store(c *ctx.Context) {
	var input models.RegisterInput
	if !c.BindJSON(&input) {
		return
	}
	u, err := uc.service.Create(c.Context(), input)
	if err != nil {
		c.Fail(err, "Failed to create user")
		return
	}
	c.Created(map[string]any{"message": "User created", "user": u})
}

func (uc *UserController) Update(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	var patch models.UserPatch
	if !c.BindJSON(&patch) {
		return
	}
	u, err := uc.service.Update(c.Context(), id, patch)
	if err != nil {
		c.Fail(err, "Failed to update user")
		return
	}
	c.Success(map[string]any{"message": "User updated", "user": u})
}

func (uc *UserController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	if err := uc.service.Delete(c.Context(), id); err != nil {
		c.Fail(err, "Failed to delete user")
		return
	}
	c.Success(map[string]any{"message": "User deleted"})
}
