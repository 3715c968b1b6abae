// Package testutil provides a throwaway database and HTTP helpers for tests.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/Govind-619/ebook-store/config"
	"github.com/Govind-619/ebook-store/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TestSecret signs tokens in tests
const TestSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

// NewTestDB opens a private in-memory SQLite database with the schema applied.
// It is closed when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), config.GormConfig())
	require.NoError(t, err, "open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db), "migrate test database")
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// NewTestConfig returns a configuration suited to tests: sqlite, cheap bcrypt,
// uploads under a temporary directory and a generous rate limit.
func NewTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:           "8080",
		Env:            "test",
		DBDriver:       "sqlite",
		JWTSecret:      TestSecret,
		JWTExpiration:  time.Hour,
		BcryptCost:     bcrypt.MinCost,
		UploadDir:      t.TempDir(),
		PublicBaseURL:  "http://localhost:8080",
		CORSOrigins:    []string{"http://localhost:3000"},
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		LogLevel:       "disabled",
	}
}

// CreateTestUser stores a user with the given role and password
func CreateTestUser(t *testing.T, db *gorm.DB, email, password, role string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Username: "user-" + email,
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	require.NoError(t, db.WithContext(context.Background()).Create(user).Error, "create test user")
	return user
}

// CreateTestBook stores a book with the given title and price
func CreateTestBook(t *testing.T, db *gorm.DB, number uint, title string, price float64) *models.Book {
	t.Helper()
	book := &models.Book{
		BookNumber: number,
		Title:      title,
		Author:     "Test Author",
		Category:   "Test Category",
		Price:      price,
		Summary:    "Test summary",
		CoverURL:   models.DefaultCoverURL,
		AddedAt:    time.Now(),
	}
	require.NoError(t, db.Create(book).Error, "create test book")
	return book
}

// TestRequest represents a test HTTP request
type TestRequest struct {
	Method  string
	Path    string
	Body    interface{}
	Token   string
	Headers map[string]string
}

// TestResponse represents a test HTTP response. Body is set when the
// response is a JSON object.
type TestResponse struct {
	StatusCode int
	Header     http.Header
	Raw        []byte
	Body       map[string]interface{}
}

// Decode unmarshals the raw response into v
func (r TestResponse) Decode(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Raw, v), "decode response: %s", string(r.Raw))
}

// MakeTestRequest makes a JSON request against router
func MakeTestRequest(t *testing.T, router http.Handler, req TestRequest) TestResponse {
	t.Helper()

	var body io.Reader = http.NoBody
	if req.Body != nil {
		var raw []byte
		switch b := req.Body.(type) {
		case string:
			raw = []byte(b)
		case []byte:
			raw = b
		default:
			var err error
			raw, err = json.Marshal(req.Body)
			require.NoError(t, err, "marshal request body")
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequest(req.Method, req.Path, body)
	require.NoError(t, err, "create request")
	httpReq.Header.Set("Content-Type", "application/json")
	return serve(t, router, httpReq, req.Token, req.Headers)
}

// MakeMultipartRequest uploads content as the form field "file"
func MakeMultipartRequest(t *testing.T, router http.Handler, path, token, filename, contentType string, content []byte) TestResponse {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	httpReq, err := http.NewRequest(http.MethodPost, path, &buf)
	require.NoError(t, err)
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	return serve(t, router, httpReq, token, nil)
}

func serve(t *testing.T, router http.Handler, httpReq *http.Request, token string, headers map[string]string) TestResponse {
	t.Helper()
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	for key, value := range headers {
		httpReq.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httpReq)

	resp := TestResponse{
		StatusCode: w.Code,
		Header:     w.Header(),
		Raw:        w.Body.Bytes(),
	}
	if len(resp.Raw) > 0 && resp.Raw[0] == '{' {
		var obj map[string]interface{}
		if err := json.Unmarshal(resp.Raw, &obj); err == nil {
			resp.Body = obj
		}
	}
	return resp
}

// AssertError checks the status code and the standard error body
func AssertError(t *testing.T, resp TestResponse, expectedStatus int, expectedMessage string) {
	t.Helper()
	assert.Equal(t, expectedStatus, resp.StatusCode, "body: %s", string(resp.Raw))
	if assert.NotNil(t, resp.Body, "expected a JSON object, got %s", string(resp.Raw)) {
		assert.Equal(t, "error", resp.Body["status"])
		if expectedMessage != "" {
			assert.Equal(t, expectedMessage, resp.Body["message"])
		}
	}
}
