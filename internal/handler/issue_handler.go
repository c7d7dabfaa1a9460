package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"civictrack/internal/errors"
	"civictrack/internal/service"
)

// IssueHandler handles issue reporting and tracking endpoints.
type IssueHandler struct {
	issueService service.IssueService
}

// NewIssueHandler creates a new issue handler.
func NewIssueHandler(issueService service.IssueService) *IssueHandler {
	return &IssueHandler{issueService: issueService}
}

// ReportIssueRequest represents a new issue report. Coordinates are pointers
/// so "required" means present, not non-zero: 0.0 is a valid latitude and
// longitude. Description is optional.
type ReportIssueRequest struct {
	UserID      uint     `json:"user_id" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category" validate:"required"`
	Latitude    *float64 `json:"latitude" validate:"required,latitude"`
	Longitude   *float64 `json:"longitude" validate:"required,longitude"`
	PhotoURLs   []string `json:"photo_urls" validate:"omitempty,dive,url"`
}

// UpdateStatusRequest represents an issue status change.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ReportIssue godoc
// @Summary Submit a new issue report
// @Tags issues
// @Accept json
// @Produce json
// @Param request body ReportIssueRequest true "Issue data"
// @Success 200 {object} model.Issue
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /issues/report-issue [post]
func (h *IssueHandler) ReportIssue(c echo.Context) error {
	var req ReportIssueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	issue, err := h.issueService.Report(c.Request().Context(), service.ReportIssueInput{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		PhotoURLs:   req.PhotoURLs,
	})
	if err != nil {
		return httpError(c, err, "report issue")
	}

	return c.JSON(http.StatusOK, issue)
}

// ListIssues godoc
// @Summary List all issues, newest first
// @Tags issues
// @Produce json
// @Success 200 {array} model.Issue
// @Failure 500 {object} errors.ErrorResponse
// @Router /issues/issues [get]
func (h *IssueHandler) ListIssues(c echo.Context) error {
	issues, err := h.issueService.List(c.Request().Context())
	if err != nil {
		return httpError(c, err, "list issues")
	}
	return c.JSON(http.StatusOK, issues)
}

// UpdateStatus godoc
// @Summary Overwrite an issue status
// @Tags issues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Issue ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} model.Issue
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /issues/{id}/status [patch]
func (h *IssueHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	issue, err := h.issueService.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return httpError(c, err, "update status")
	}

	return c.JSON(http.StatusOK, issue)
}

// StatusLog godoc
// @Summary List an issue's status audit trail
// @Tags issues
// @Produce json
// @Security BearerAuth
// @Param id path int true "Issue ID"
// @Success 200 {array} model.StatusLog
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /issues/{id}/status-log [get]
func (h *IssueHandler) StatusLog(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	logs, err := h.issueService.StatusHistory(c.Request().Context(), id)
	if err != nil {
		return httpError(c, err, "status log")
	}

	return c.JSON(http.StatusOK, logs)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// httpError logs unexpected failures and maps domain errors to responses.
func httpError(c echo.Context, err error, op string) error {
	mapped := errors.MapErrorToHTTP(err)
	if mapped.StatusCode == http.StatusInternalServerError {
		c.Logger().Errorf("%s: %v", op, err)
	}
	return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
}
