package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stockcontrol/inventory-api/internal/api/metrics"
	"github.com/stockcontrol/inventory-api/internal/core/domain"
	"github.com/stockcontrol/inventory-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type registerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type validateTokenResponse struct {
	Valid    bool   `json:"valid"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type changeRoleRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role"  validate:"required,oneof=user admin"`
}

type changeRoleResponse struct {
	Message string `json:"message"`
	Changed bool   `json:"changed"`
}

// Register creates a new user account with role "user".
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, registerResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

// Login authenticates by email and password and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token})
}

// ValidateToken verifies the bearer token and that its subject still exists.
//
// @Summary      Validate a session token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  validateTokenResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/validate-token [get]
func (h *AuthHandler) ValidateToken(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return echo.NewHTTPError(http.StatusBadRequest, "token is required")
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	identity, err := h.authService.ValidateToken(c.Request().Context(), token)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, validateTokenResponse{
		Valid:    true,
		UserID:   identity.UserID,
		Username: identity.Username,
		Role:     identity.Role,
	})
}

// ChangeRole sets the target user's role. Changing to the role the user
// already holds is a successful no-op, reported distinctly.
//
// @Summary      Change a user's role
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changeRoleRequest  true  "Target email and new role"
// @Success      200   {object}  changeRoleResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/change-role [post]
func (h *AuthHandler) ChangeRole(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.ChangeRole(c.Request().Context(), req.Email, req.Role)
	if err != nil {
		return err
	}

	if !result.Changed {
		metrics.RoleChangesTotal.WithLabelValues("noop").Inc()
		return c.JSON(http.StatusOK, changeRoleResponse{
			Message: fmt.Sprintf("user %q already has role %q, no change", result.Email, result.Role),
		})
	}

	metrics.RoleChangesTotal.WithLabelValues("changed").Inc()
	return c.JSON(http.StatusOK, changeRoleResponse{
		Message: fmt.Sprintf("role of %q changed to %q", result.Email, result.Role),
		Changed: true,
	})
}
