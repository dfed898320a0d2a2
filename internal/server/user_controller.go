package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/nguyentranbao-ct/support-desk/internal/models"
	mdw "github.com/nguyentranbao-ct/support-desk/internal/server/middleware"
	"github.com/nguyentranbao-ct/support-desk/internal/usecase"
)

type UserController interface {
	GetUser(c echo.Context) error
	UpdateUser(c echo.Context) error
	UpdatePassword(c echo.Context) error
	GetActivities(c echo.Context) error
}

type userController struct {
	users usecase.UserUsecase
}

func NewUserController(users usecase.UserUsecase) UserController {
	return &userController{users: users}
}

func (uc *userController) GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	user, err := uc.users.GetProfile(ctx, mdw.AgentID(c))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (uc *userController) UpdateUser(c echo.Context) error {
	var req models.UpdateUser
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := uc.users.UpdateProfile(ctx, mdw.AgentID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		case errors.Is(err, models.ErrEmailTaken):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (uc *userController) UpdatePassword(c echo.Context) error {
	var req models.UpdatePassword
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := uc.users.ChangePassword(ctx, mdw.AgentID(c), req); err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		case errors.Is(err, models.ErrWrongPassword):
			return echo.NewHTTPError(http.StatusBadRequest, "Current password is incorrect")
		}
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Password updated successfully",
	})
}

func (uc *userController) GetActivities(c echo.Context) error {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	ctx := c.Request().Context()
	result, err := uc.users.Activities(ctx, mdw.AgentID(c), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// queryInt mirrors the parseInt-or-default behavior browsers get from the
// API: junk and non-positive values fall back to the default.
func queryInt(c echo.Context, name string, def int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || v < 1 {
		return def
	}
	return v
}
