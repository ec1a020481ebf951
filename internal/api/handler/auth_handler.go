package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/choralis/choir-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new member account.
//
// @Summary      Register a new member
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Member registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	member, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{Member: member})
}

// Login authenticates a member and returns a session token.
//
// @Summary      Login with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, member, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, Member: member})
}

// RequestOTP triggers a one-time login code for a phone number. The response
// is 202 whether or not the phone is registered.
//
// @Summary      Request a phone login code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      otpRequest  true  "Phone number"
// @Success      202   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /v1/auth/otp/request [post]
func (h *AuthHandler) RequestOTP(c echo.Context) error {
	var req otpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.authService.RequestOTP(c.Request().Context(), req.Phone); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, map[string]string{"message": "code sent if the number is registered"})
}

// LoginPhone exchanges a one-time code for a long-lifetime session token.
//
// @Summary      Login with a phone code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      otpLoginRequest  true  "Phone and code"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  map[string]string
// @Router       /v1/auth/otp/login [post]
func (h *AuthHandler) LoginPhone(c echo.Context) error {
	var req otpLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, member, err := h.authService.LoginPhone(c.Request().Context(), req.Phone, req.Code)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Token: token, Member: member})
}
