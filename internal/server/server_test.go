package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewServer(nil, nil).SetupRouter()
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSanitizeEndpoint(t *testing.T) {
	router := newTestRouter()
	w := postJSON(t, router, "/sanitize", gin.H{
		"text": "Cargill Trading LLC paid Acme Corp. via bob@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		RequestID string `json:"request_id"`
		Sanitized string `json:"sanitized"`
		Report    struct {
			TotalRedactions int `json:"total_redactions"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RequestID)
	assert.Contains(t, resp.Sanitized, "[Cargill Entity A]")
	assert.Contains(t, resp.Sanitized, "[Third Party Entity B]")
	assert.Contains(t, resp.Sanitized, "[Email]")
	assert.Equal(t, 3, resp.Report.TotalRedactions)
}

func TestSanitizeCustomPrefix(t *testing.T) {
	router := newTestRouter()
	w := postJSON(t, router, "/sanitize", gin.H{
		"text":        "Globex Holdings Inc. signed.",
		"self_prefix": "Globex",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "[Globex Entity A]")
}

func TestSanitizeMissingText(t *testing.T) {
	router := newTestRouter()
	w := postJSON(t, router, "/sanitize", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateEndpoint(t *testing.T) {
	router := newTestRouter()
	w := postJSON(t, router, "/validate", gin.H{
		"text": "See IRC Section 951A for the inclusion rules.",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Valid  bool `json:"valid"`
		Issues []struct {
			Type string `json:"type"`
		} `json:"issues"`
		Summary map[string]int `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	require.NotEmpty(t, resp.Issues)
	assert.Equal(t, "format", resp.Issues[0].Type)
}

func TestValidateCleanText(t *testing.T) {
	router := newTestRouter()
	w := postJSON(t, router, "/validate", gin.H{
		"text": "IRC § 951A(c)(2)(A)(i) governs tested income.",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Valid  bool  `json:"valid"`
		Issues []any `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Issues)
}

func TestQAEndpoint(t *testing.T) {
	router := newTestRouter()
	w := postJSON(t, router, "/qa", gin.H{"memo": "# Just a heading"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Passed bool   `json:"passed"`
		Score  string `json:"score"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Passed)
	assert.NotEmpty(t, resp.Score)
}

func TestQAMissingMemo(t *testing.T) {
	router := newTestRouter()
	w := postJSON(t, router, "/qa", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
