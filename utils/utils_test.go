package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAppErrorStatus(t *testing.T) {
	tests := []struct {
		err  *AppError
		code int
	}{
		{ValidationError("bad"), http.StatusBadRequest},
		{DuplicateEmailError(), http.StatusBadRequest},
		{InvalidCredentialsError(), http.StatusBadRequest},
		{UnauthenticatedError(ErrUnauthorized, nil), http.StatusUnauthorized},
		{ForbiddenError(ErrForbidden), http.StatusForbidden},
		{NotFoundError("Book not found"), http.StatusNotFound},
		{InvalidStatusError("Shipped"), http.StatusBadRequest},
		{UnsupportedTypeError("text/plain"), http.StatusBadRequest},
		{TooLargeError(ErrPDFTooLarge), http.StatusBadRequest},
		{ConflictError(ErrBookNumberTaken, nil), http.StatusConflict},
		{InternalError("boom", errors.New("db down")), http.StatusInternalServerError},
		{NewAppError("Unknown", "??", nil), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.err.Kind), func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestAppErrorChain(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := fmt.Errorf("loading user: %w", InternalError("Failed to load user", cause))

	assert.True(t, errors.Is(wrapped, cause))
	assert.True(t, IsKind(wrapped, KindInternal))
	assert.False(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(cause, KindInternal))
	assert.Nil(t, GetAppError(cause))
	assert.Equal(t, "Failed to load user: connection refused", GetAppError(wrapped).Error())
	assert.Equal(t, `Invalid status: "Shipped"`, InvalidStatusError("Shipped").Message)
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"app error", NotFoundError("Order not found"), http.StatusNotFound, "Order not found"},
		{"internal hides cause", InternalError("Failed to save", errors.New("disk full")), http.StatusInternalServerError, ErrInternalServer},
		{"plain error", errors.New("unexpected"), http.StatusInternalServerError, ErrInternalServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			RespondError(c, tt.err)

			assert.Equal(t, tt.code, w.Code)
			var body StandardResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestValidators(t *testing.T) {
	for _, email := range []string{"a@b.co", "first.last+tag@example.org"} {
		ok, _ := ValidateEmail(email)
		assert.True(t, ok, email)
	}
	for _, email := range []string{"", "plain", "a@b", "a b@c.com"} {
		ok, msg := ValidateEmail(email)
		assert.False(t, ok, email)
		assert.NotEmpty(t, msg)
	}

	ok, msg := ValidatePassword("12345")
	assert.False(t, ok)
	assert.Equal(t, ErrPasswordTooShort, msg)
	ok, _ = ValidatePassword("123456")
	assert.True(t, ok)
	ok, _ = ValidatePassword("ééé")
	assert.False(t, ok)
	ok, _ = ValidatePassword("éééééé")
	assert.True(t, ok)

	assert.Equal(t, []string{"email", "password"}, MissingFields([]string{"username", "email", "password"}, "bob", " ", ""))
	assert.Empty(t, MissingFields([]string{"a"}, "x"))
}

func TestBindError(t *testing.T) {
	type request struct {
		Name     string `json:"name" binding:"required"`
		Quantity int    `json:"quantity" binding:"min=1"`
	}
	bind := func(body string) error {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		var req request
		return c.ShouldBindJSON(&req)
	}

	appErr := BindError(bind(`{"quantity":0}`))
	assert.Equal(t, KindValidation, appErr.Kind)
	assert.Equal(t, "name is required; quantity must be at least 1", appErr.Message)

	appErr = BindError(bind(""))
	assert.Equal(t, "Request body is required", appErr.Message)

	appErr = BindError(bind(`{"name":`))
	assert.True(t, strings.HasPrefix(appErr.Message, "Invalid request: "), appErr.Message)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Mon Été Cover", "Mon-Ete-Cover"},
		{"report_2024.final", "report-2024-final"},
		{"***", "file"},
		{"", "file"},
		{strings.Repeat("a", 80), strings.Repeat("a", MaxUploadBaseName)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in), tt.in)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get("X-Request-ID")
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestCORSMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(CORSMiddleware([]string{"http://localhost:3000"}))
	router.GET("/books", func(c *gin.Context) { c.Status(http.StatusOK) })

	preflight := httptest.NewRequest(http.MethodOptions, "/books", nil)
	preflight.Header.Set("Origin", "http://localhost:3000")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, preflight)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RecoveryMiddleware(), SecurityHeadersMiddleware())
	router.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.JSONEq(t, `{"status":"error","message":"Internal server error"}`, w.Body.String())
}

func TestInitLoggerWithWriter(t *testing.T) {
	t.Cleanup(func() { Logger = zerolog.Nop() })

	var buf bytes.Buffer
	require.NoError(t, InitLoggerWithWriter(&buf, "info", "json"))

	LogDebug("hidden %d", 1)
	LogInfo("order %d created", 7)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "order 7 created", entry["message"])
	assert.Equal(t, AppName, entry["app"])

	assert.Error(t, InitLoggerWithWriter(&buf, "loud", "json"))
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query  string
		paged  bool
		page   int
		limit  int
		offset int
	}{
		{"", false, 0, 0, 0},
		{"q=dune", false, 0, 0, 0},
		{"page=3", true, 3, DefaultPageLimit, 2 * DefaultPageLimit},
		{"limit=5", true, 1, 5, 0},
		{"page=2&limit=5", true, 2, 5, 5},
		{"page=-1&limit=abc", true, 1, DefaultPageLimit, 0},
		{"page=1&limit=1000", true, 1, MaxPageLimit, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/books?"+tt.query, nil)

			p, paged := ParsePagination(c)
			require.Equal(t, tt.paged, paged)
			if !paged {
				assert.Nil(t, p)
				return
			}
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.offset, p.Offset)
		})
	}
}

func TestPaginationHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	p := &Pagination{Page: 2, Limit: 5}
	p.SetTotal(11)
	p.WriteHeaders(c)

	assert.Equal(t, 3, p.LastPage)
	assert.Equal(t, "11", w.Header().Get("X-Total-Count"))
	assert.Equal(t, "2", w.Header().Get("X-Page"))
	assert.Equal(t, "5", w.Header().Get("X-Per-Page"))
	assert.Equal(t, "3", w.Header().Get("X-Last-Page"))
}
