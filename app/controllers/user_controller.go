package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/backoffice/app/services"
	"github.com/shashiranjanraj/backoffice/pkg/ctx"
)

type UserController struct {
	users *services.UserService
	urls  Locator
}

func NewUserController(users *services.UserService, urls Locator) *UserController {
	return &UserController{users: users, urls: urls}
}

func (uc *UserController) Index(c *ctx.Context) {
	users, page, err := uc.users.List(c.Context(), listParams(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.List("Users fetched successfully", "users", users, page)
}

func (uc *UserController) Store(c *ctx.Context) {
	var in services.CreateUserInput
	if !c.BindEnvelope("userData", &in) {
		return
	}

	user, err := uc.users.Create(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	uc.urls.locate(c, "users.show", user.ID)
	c.Payload(http.StatusCreated, "User added successfully", "user", user)
}

func (uc *UserController) Show(c *ctx.Context) {
	user, err := uc.users.Get(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Payload(http.StatusOK, "User fetched successfully", "user", user)
}

func (uc *UserController) Update(c *ctx.Context) {
	var in services.UpdateUserInput
	if !c.BindEnvelope("userData", &in) {
		return
	}

	user, err := uc.users.Update(c.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Payload(http.StatusOK, "User updated successfully", "user", user)
}

func (uc *UserController) Destroy(c *ctx.Context) {
	user, err := uc.users.Delete(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Payload(http.StatusOK, "User deleted successfully", "user", user)
}
