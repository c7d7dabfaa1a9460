package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"civictrack/internal/service"
)

// ModerationHandler handles flag and ban endpoints.
type ModerationHandler struct {
	moderationService service.ModerationService
	authService       service.AuthService
}

// NewModerationHandler creates a new moderation handler.
func NewModerationHandler(moderationService service.ModerationService, authService service.AuthService) *ModerationHandler {
	return &ModerationHandler{
		moderationService: moderationService,
		authService:       authService,
	}
}

// BanRequest represents a ban request.
type BanRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// FlagIssue godoc
// @Summary Flag an issue as inappropriate
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Param id path int true "Issue ID"
// @Success 200 {object} model.Flag
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /issues/{id}/flag [post]
func (h *ModerationHandler) FlagIssue(c echo.Context) error {
	issueID, err := parseID(c)
	if err != nil {
		return err
	}

	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	flag, err := h.moderationService.FlagIssue(c.Request().Context(), issueID, user.ID)
	if err != nil {
		return httpError(c, err, "flag issue")
	}

	return c.JSON(http.StatusOK, flag)
}

// BanUser godoc
// @Summary Ban a user from submitting issues
// @Tags moderation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body BanRequest true "Ban reason"
// @Success 200 {object} model.BannedUser
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/users/{id}/ban [post]
func (h *ModerationHandler) BanUser(c echo.Context) error {
	userID, err := parseID(c)
	if err != nil {
		return err
	}

	var req BanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ban, err := h.moderationService.BanUser(c.Request().Context(), userID, req.Reason)
	if err != nil {
		return httpError(c, err, "ban user")
	}

	return c.JSON(http.StatusOK, ban)
}

// UnbanUser godoc
// @Summary Lift a user's ban
// @Tags moderation
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/users/{id}/ban [delete]
func (h *ModerationHandler) UnbanUser(c echo.Context) error {
	userID, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.moderationService.UnbanUser(c.Request().Context(), userID); err != nil {
		return httpError(c, err, "unban user")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "user unbanned"})
}

// ListBanned godoc
// @Summary List banned users
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.BannedUser
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/banned [get]
func (h *ModerationHandler) ListBanned(c echo.Context) error {
	bans, err := h.moderationService.ListBanned(c.Request().Context())
	if err != nil {
		return httpError(c, err, "list banned")
	}
	return c.JSON(http.StatusOK, bans)
}

// DeleteUser godoc
// @Summary Delete a user, detaching owned issues
// @Tags moderation
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *ModerationHandler) DeleteUser(c echo.Context) error {
	userID, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.moderationService.DeleteUser(c.Request().Context(), userID); err != nil {
		return httpError(c, err, "delete user")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "user deleted"})
}

// currentUser resolves the authenticated user from the request token.
func (h *ModerationHandler) currentUser(c echo.Context) (*userIdentity, error) {
	email, err := tokenSubject(c)
	if err != nil {
		return nil, err
	}

	user, err := h.authService.GetUserByEmail(c.Request().Context(), email)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
	}
	return &userIdentity{ID: user.ID, Email: user.Email}, nil
}

type userIdentity struct {
	ID    uint
	Email string
}
