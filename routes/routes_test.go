package routes

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/Govind-619/ebook-store/app"
	"github.com/Govind-619/ebook-store/models"
	"github.com/Govind-619/ebook-store/testutil"
	"github.com/Govind-619/ebook-store/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	app        *app.App
	router     *gin.Engine
	adminToken string
}

func newTestServer(t *testing.T) *testServer {
	cfg := testutil.NewTestConfig(t)
	a := app.New(cfg, testutil.NewTestDB(t))
	t.Cleanup(func() { _ = a.Close() })
	require.NoError(t, a.Uploads.EnsureDirs())

	_, err := a.Auth.CreateAdmin(context.Background(), "admin", "admin@example.com", "admin123")
	require.NoError(t, err)

	s := &testServer{app: a, router: SetupRouter(a)}
	s.adminToken = s.login(t, "admin@example.com", "admin123")
	return s
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) testutil.TestResponse {
	return testutil.MakeTestRequest(t, s.router, testutil.TestRequest{Method: method, Path: path, Token: token, Body: body})
}

func (s *testServer) login(t *testing.T, email, password string) string {
	resp := s.do(t, http.MethodPost, "/api/users/login", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(resp.Raw))
	token, _ := resp.Body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (s *testServer) createBook(t *testing.T, title string, price float64) uint {
	resp := s.do(t, http.MethodPost, "/api/books", s.adminToken, gin.H{
		"title":    title,
		"author":   "Author of " + title,
		"category": "Fiction",
		"price":    price,
		"summary":  "About " + title,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(resp.Raw))
	return uint(resp.Body["id"].(float64))
}

func TestClientOrderScenario(t *testing.T) {
	s := newTestServer(t)
	dune := s.createBook(t, "Dune", 10)
	emma := s.createBook(t, "Emma", 7.5)

	// client registers then logs in
	resp := s.do(t, http.MethodPost, "/api/users/register", "", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(resp.Raw))
	assert.NotEmpty(t, resp.Body["token"])
	user := resp.Body["user"].(map[string]interface{})
	assert.Equal(t, "alice@example.com", user["email"])
	assert.Equal(t, models.RoleClient, user["role"])
	assert.NotContains(t, user, "password")

	clientToken := s.login(t, "alice@example.com", "secret1")

	// client orders two books
	resp = s.do(t, http.MethodPost, "/api/orders", clientToken, gin.H{
		"books": []gin.H{
			{"book": dune, "quantity": 2},
			{"book": emma, "quantity": 1},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(resp.Raw))
	orderID := uint(resp.Body["id"].(float64))
	assert.Equal(t, 27.5, resp.Body["total_price"])
	assert.Equal(t, models.OrderStatusPending, resp.Body["status"])

	// admin sees it with owner and book titles resolved
	resp = s.do(t, http.MethodGet, "/api/orders", s.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all []models.Order
	resp.Decode(t, &all)
	require.Len(t, all, 1)
	assert.Equal(t, orderID, all[0].ID)
	require.NotNil(t, all[0].Owner)
	assert.Equal(t, "alice", all[0].Owner.Username)
	titles := []string{}
	for _, item := range all[0].Items {
		require.NotNil(t, item.Book)
		titles = append(titles, item.Book.Title)
	}
	assert.ElementsMatch(t, []string{"Dune", "Emma"}, titles)

	// admin confirms
	resp = s.do(t, http.MethodPut, fmt.Sprintf("/api/orders/%d", orderID), s.adminToken, gin.H{"status": models.OrderStatusConfirmed})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(resp.Raw))
	assert.Equal(t, models.OrderStatusConfirmed, resp.Body["status"])

	// client sees the new status
	resp = s.do(t, http.MethodGet, "/api/orders/my", clientToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mine []models.Order
	resp.Decode(t, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, models.OrderStatusConfirmed, mine[0].Status)

	// invoice for the owner only
	resp = s.do(t, http.MethodGet, fmt.Sprintf("/api/orders/%d/invoice", orderID), clientToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(resp.Raw, []byte("%PDF-")))

	other := s.registerClient(t, "bob@example.com")
	resp = s.do(t, http.MethodGet, fmt.Sprintf("/api/orders/%d/invoice", orderID), other, nil)
	testutil.AssertError(t, resp, http.StatusNotFound, "")
}

func (s *testServer) registerClient(t *testing.T, email string) string {
	resp := s.do(t, http.MethodPost, "/api/users/register", "", gin.H{"username": email, "email": email, "password": "secret1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(resp.Raw))
	return resp.Body["token"].(string)
}

func TestOrderErrors(t *testing.T) {
	s := newTestServer(t)
	book := s.createBook(t, "Only", 3)
	client := s.registerClient(t, "alice@example.com")

	resp := s.do(t, http.MethodPost, "/api/orders", client, gin.H{"books": []gin.H{{"book": book, "quantity": 1}, {"book": 4242, "quantity": 1}}})
	testutil.AssertError(t, resp, http.StatusNotFound, "Book not found: 4242")

	resp = s.do(t, http.MethodGet, "/api/orders", s.adminToken, nil)
	var none []models.Order
	resp.Decode(t, &none)
	assert.Empty(t, none)

	resp = s.do(t, http.MethodPost, "/api/orders", s.adminToken, gin.H{"books": []gin.H{{"book": book, "quantity": 1}}})
	testutil.AssertError(t, resp, http.StatusForbidden, "")

	resp = s.do(t, http.MethodPost, "/api/orders", client, gin.H{"books": []gin.H{{"book": book, "quantity": 1}}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	orderID := uint(resp.Body["id"].(float64))

	resp = s.do(t, http.MethodPut, fmt.Sprintf("/api/orders/%d", orderID), s.adminToken, gin.H{"status": "Shipped"})
	testutil.AssertError(t, resp, http.StatusBadRequest, `Invalid status: "Shipped"`)

	resp = s.do(t, http.MethodPut, fmt.Sprintf("/api/orders/%d", orderID), client, gin.H{"status": models.OrderStatusConfirmed})
	testutil.AssertError(t, resp, http.StatusForbidden, "")

	resp = s.do(t, http.MethodPut, fmt.Sprintf("/api/orders/%d", orderID), s.adminToken, gin.H{"status": models.OrderStatusConfirmed, "total_price": 0})
	testutil.AssertError(t, resp, http.StatusBadRequest, "")

	resp = s.do(t, http.MethodDelete, fmt.Sprintf("/api/orders/%d", orderID), s.adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = s.do(t, http.MethodDelete, fmt.Sprintf("/api/orders/%d", orderID), s.adminToken, nil)
	testutil.AssertError(t, resp, http.StatusNotFound, "")
}

func TestAuthEndpoints(t *testing.T) {
	s := newTestServer(t)
	s.registerClient(t, "alice@example.com")

	resp := s.do(t, http.MethodPost, "/api/users/register", "", gin.H{"username": "again", "email": "alice@example.com", "password": "secret1"})
	testutil.AssertError(t, resp, http.StatusBadRequest, "Email already exists")

	resp = s.do(t, http.MethodPost, "/api/users/register", "", gin.H{"username": "x", "email": "x@example.com", "password": "secret1", "role": "admin"})
	testutil.AssertError(t, resp, http.StatusForbidden, "")

	resp = s.do(t, http.MethodPost, "/api/users/register", "", gin.H{"email": "x@example.com"})
	testutil.AssertError(t, resp, http.StatusBadRequest, "")

	wrong := s.do(t, http.MethodPost, "/api/users/login", "", gin.H{"email": "alice@example.com", "password": "nope"})
	unknown := s.do(t, http.MethodPost, "/api/users/login", "", gin.H{"email": "ghost@example.com", "password": "nope"})
	testutil.AssertError(t, wrong, http.StatusBadRequest, "Invalid email or password")
	assert.Equal(t, wrong.Raw, unknown.Raw)

	token := s.login(t, "alice@example.com", "secret1")
	resp = s.do(t, http.MethodGet, "/api/users/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice@example.com", resp.Body["email"])
	assert.NotContains(t, resp.Body, "password")

	resp = s.do(t, http.MethodPut, "/api/users/profile", token, gin.H{"username": "Alice", "phone": "0600000000"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(resp.Raw))
	assert.Equal(t, "Alice", resp.Body["user"].(map[string]interface{})["username"])

	resp = s.do(t, http.MethodPut, "/api/users/profile", token, gin.H{"role": "admin"})
	testutil.AssertError(t, resp, http.StatusBadRequest, "")

	resp = s.do(t, http.MethodPut, "/api/users/password", token, gin.H{"current_password": "bad", "new_password": "another1"})
	testutil.AssertError(t, resp, http.StatusBadRequest, "Current password is incorrect")

	resp = s.do(t, http.MethodPut, "/api/users/password", token, gin.H{"current_password": "secret1", "new_password": "another1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	s.login(t, "alice@example.com", "another1")

	resp = s.do(t, http.MethodGet, "/api/users/profile", "", nil)
	testutil.AssertError(t, resp, http.StatusUnauthorized, "")
}

func TestClientManagementEndpoints(t *testing.T) {
	s := newTestServer(t)
	clientToken := s.registerClient(t, "alice@example.com")

	resp := s.do(t, http.MethodGet, "/api/users/clients", clientToken, nil)
	testutil.AssertError(t, resp, http.StatusForbidden, "")

	resp = s.do(t, http.MethodPost, "/api/users/clients", s.adminToken, gin.H{"username": "carol", "email": "carol@example.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(resp.Raw))
	carolID := uint(resp.Body["id"].(float64))

	resp = s.do(t, http.MethodPut, fmt.Sprintf("/api/users/clients/%d", carolID), s.adminToken, gin.H{"total_orders": 3, "total_spent": 42.5})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(resp.Raw))
	assert.Equal(t, float64(3), resp.Body["total_orders"])

	resp = s.do(t, http.MethodGet, "/api/users/clients", s.adminToken, nil)
	var clients []models.User
	resp.Decode(t, &clients)
	assert.Len(t, clients, 2)

	resp = s.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", carolID), s.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = s.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", carolID), s.adminToken, nil)
	testutil.AssertError(t, resp, http.StatusNotFound, "")
}

func TestCatalogEndpoints(t *testing.T) {
	s := newTestServer(t)
	clientToken := s.registerClient(t, "alice@example.com")

	resp := s.do(t, http.MethodPost, "/api/books", clientToken, gin.H{"title": "Nope"})
	testutil.AssertError(t, resp, http.StatusForbidden, "")

	first := s.createBook(t, "First", 1)
	s.createBook(t, "Second", 2)

	resp = s.do(t, http.MethodGet, "/api/books?q=seco", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var books []models.Book
	resp.Decode(t, &books)
	require.Len(t, books, 1)
	assert.Equal(t, uint(2), books[0].BookNumber)

	resp = s.do(t, http.MethodGet, "/api/books?page=2&limit=1", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Decode(t, &books)
	require.Len(t, books, 1)
	assert.Equal(t, "First", books[0].Title, "newest first, so page 2 holds the older book")
	assert.Equal(t, "2", resp.Header.Get("X-Total-Count"))
	assert.Equal(t, "2", resp.Header.Get("X-Last-Page"))

	resp = s.do(t, http.MethodGet, fmt.Sprintf("/api/books/%d", first), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "First", resp.Body["title"])

	resp = s.do(t, http.MethodPut, fmt.Sprintf("/api/books/%d", first), s.adminToken, gin.H{"price": 9.99})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 9.99, resp.Body["price"])

	resp = s.do(t, http.MethodPut, fmt.Sprintf("/api/books/%d", first), s.adminToken, gin.H{"book_number": 99})
	testutil.AssertError(t, resp, http.StatusBadRequest, "")

	resp = s.do(t, http.MethodGet, "/api/books/abc", "", nil)
	testutil.AssertError(t, resp, http.StatusBadRequest, "")

	resp = s.do(t, http.MethodDelete, fmt.Sprintf("/api/books/%d", first), s.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = s.do(t, http.MethodGet, fmt.Sprintf("/api/books/%d", first), "", nil)
	testutil.AssertError(t, resp, http.StatusNotFound, "")

	// categories
	resp = s.do(t, http.MethodPost, "/api/categories", s.adminToken, gin.H{"name": "Fiction", "trending": true, "total_sales": 10})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(resp.Raw))
	catID := uint(resp.Body["id"].(float64))
	resp = s.do(t, http.MethodPost, "/api/categories", s.adminToken, gin.H{"name": "Poetry"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.do(t, http.MethodPatch, fmt.Sprintf("/api/categories/%d/stats", catID), s.adminToken, gin.H{"book_count": 12, "total_sales": 300})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(resp.Raw))
	assert.Equal(t, float64(12), resp.Body["book_count"])

	resp = s.do(t, http.MethodPatch, fmt.Sprintf("/api/categories/%d/stats", catID), s.adminToken, gin.H{"book_count": 12})
	testutil.AssertError(t, resp, http.StatusBadRequest, "")

	resp = s.do(t, http.MethodGet, "/api/categories/trending", "", nil)
	var trending []models.Category
	resp.Decode(t, &trending)
	require.Len(t, trending, 1)
	assert.Equal(t, "Fiction", trending[0].Name)

	resp = s.do(t, http.MethodGet, "/api/categories", "", nil)
	var categories []models.Category
	resp.Decode(t, &categories)
	assert.Len(t, categories, 2)

	resp = s.do(t, http.MethodDelete, fmt.Sprintf("/api/categories/%d", catID), s.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = s.do(t, http.MethodGet, fmt.Sprintf("/api/categories/%d", catID), "", nil)
	testutil.AssertError(t, resp, http.StatusNotFound, "")
}

func TestUploadEndpoint(t *testing.T) {
	s := newTestServer(t)

	png := bytes.Repeat([]byte{0x42}, 2*1024*1024)
	resp := testutil.MakeMultipartRequest(t, s.router, "/api/upload", s.adminToken, "Couverture.png", "image/png", png)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(resp.Raw))
	assert.Equal(t, true, resp.Body["success"])
	assert.Equal(t, float64(len(png)), resp.Body["size"])
	assert.Equal(t, "image/png", resp.Body["mimetype"])
	url := resp.Body["fileUrl"].(string)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/covers/Couverture-"), url)

	// the stored file is served statically
	filename := resp.Body["filename"].(string)
	served := s.do(t, http.MethodGet, "/uploads/covers/"+filename, "", nil)
	assert.Equal(t, http.StatusOK, served.StatusCode)
	assert.Equal(t, len(png), len(served.Raw))

	resp = testutil.MakeMultipartRequest(t, s.router, "/api/upload", s.adminToken, "notes.txt", "text/plain", []byte("hello"))
	testutil.AssertError(t, resp, http.StatusBadRequest, "")

	resp = s.do(t, http.MethodGet, "/api/upload/test", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	clientToken := s.registerClient(t, "alice@example.com")
	resp = testutil.MakeMultipartRequest(t, s.router, "/api/upload", clientToken, "c.png", "image/png", []byte("x"))
	testutil.AssertError(t, resp, http.StatusForbidden, "")
}

func TestUploadEndpointRejectsOversizedBody(t *testing.T) {
	s := newTestServer(t)

	pdf := bytes.Repeat([]byte{0x25}, 60*1024*1024)
	resp := testutil.MakeMultipartRequest(t, s.router, "/api/upload", s.adminToken, "big.pdf", "application/pdf", pdf)
	testutil.AssertError(t, resp, http.StatusBadRequest, utils.ErrFileTooLarge)
}

func TestAdminEndpoints(t *testing.T) {
	s := newTestServer(t)
	book := s.createBook(t, "Counted", 5)
	client := s.registerClient(t, "alice@example.com")
	resp := s.do(t, http.MethodPost, "/api/orders", client, gin.H{"books": []gin.H{{"book": book, "quantity": 1}}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/admin/stats", s.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]interface{}{"books": 1.0, "users": 1.0, "orders": 1.0, "categories": 0.0}, resp.Body)

	resp = s.do(t, http.MethodGet, "/api/admin/stats", client, nil)
	testutil.AssertError(t, resp, http.StatusForbidden, "")

	resp = s.do(t, http.MethodGet, "/api/admin/orders/export", s.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(resp.Raw, []byte("PK")))
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "running", resp.Body["status"])
	assert.NotEmpty(t, resp.Body["timestamp"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp = s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(resp.Raw), "ebook_store_http_requests_total")
}
