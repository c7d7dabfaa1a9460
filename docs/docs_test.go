package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The rendered document must be valid JSON and describe the mounted routes,
// not an empty skeleton.
func TestSwaggerDocCoversRoutes(t *testing.T) {
	var doc struct {
		BasePath    string                     `json:"basePath"`
		Paths       map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))

	assert.Equal(t, "/api/v1", doc.BasePath)
	assert.NotEmpty(t, doc.Paths)

	for _, path := range []string{
		"/auth/signup",
		"/auth/login",
		"/auth/google",
		"/auth/google/callback",
		"/me",
		"/issues/report-issue",
		"/issues/issues",
		"/issues/{id}/status",
		"/issues/{id}/status-log",
		"/issues/{id}/flag",
		"/admin/users/{id}/ban",
		"/admin/users/{id}",
		"/admin/banned",
	} {
		assert.Contains(t, doc.Paths, path)
	}

	for _, def := range []string{
		"handler.SignupRequest",
		"handler.ReportIssueRequest",
		"handler.TokenResponse",
		"errors.ErrorResponse",
		"model.Issue",
		"model.StatusLog",
		"model.BannedUser",
	} {
		assert.Contains(t, doc.Definitions, def)
	}
}
