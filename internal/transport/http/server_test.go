package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"toyboard/internal/bootstrap"
	"toyboard/internal/config"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := &config.Config{
		App:      config.AppConfig{Name: "toyboard", Env: "test", GinMode: gin.TestMode},
		Auth:     config.AuthConfig{JWTSecret: "test-secret", JWTExpireMinute: 60, BcryptCost: 4},
		Database: config.DatabaseConfig{Driver: "memory"},
		Page:     config.PageConfig{DefaultSize: 10, MaxSize: 100},
	}
	app, err := bootstrap.NewWithConfig(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return &testServer{t: t, router: NewRouter(app)}
}

func (s *testServer) do(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			s.t.Fatal(err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		s.t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
	}
	return rec.Code, env
}

func (s *testServer) mustID(method, path, token string, body interface{}) uint {
	s.t.Helper()
	status, env := s.do(method, path, token, body)
	if status != nethttp.StatusCreated {
		s.t.Fatalf("%s %s = %d %s", method, path, status, env.Message)
	}
	var data struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		s.t.Fatal(err)
	}
	return data.ID
}

func (s *testServer) joinAndLogin(username string) (uint, string) {
	s.t.Helper()
	creds := gin.H{"username": username, "password": "password1"}
	id := s.mustID("POST", "/api/v1/members", "", creds)

	status, env := s.do("POST", "/api/v1/members/login", "", creds)
	if status != nethttp.StatusOK {
		s.t.Fatalf("login = %d %s", status, env.Message)
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		s.t.Fatal(err)
	}
	return id, data.Token
}

func TestMemberEndpoints(t *testing.T) {
	s := newTestServer(t)
	id, token := s.joinAndLogin("Alice Smith")

	status, env := s.do("GET", fmt.Sprintf("/api/v1/members/%d", id), "", nil)
	if status != nethttp.StatusOK || !strings.Contains(string(env.Data), `"username":"alice_smith"`) {
		t.Fatalf("get member = %d %s", status, env.Data)
	}
	if strings.Contains(string(env.Data), "password") {
		t.Errorf("member payload leaks password: %s", env.Data)
	}

	status, env = s.do("POST", "/api/v1/members", "", gin.H{"username": "alice smith", "password": "x"})
	if status != nethttp.StatusConflict {
		t.Errorf("duplicate join = %d %s", status, env.Message)
	}

	status, _ = s.do("POST", "/api/v1/members/login", "", gin.H{"username": "alice_smith", "password": "wrong"})
	if status != nethttp.StatusUnauthorized {
		t.Errorf("bad login = %d", status)
	}

	status, env = s.do("GET", "/api/v1/members?username=alice", "", nil)
	if status != nethttp.StatusOK || !strings.Contains(string(env.Data), `"total":1`) {
		t.Errorf("search members = %d %s", status, env.Data)
	}

	status, _ = s.do("POST", "/api/v1/members/withdrawal", "", nil)
	if status != nethttp.StatusUnauthorized {
		t.Errorf("anonymous withdrawal = %d, want 401", status)
	}
	status, env = s.do("POST", "/api/v1/members/withdrawal", token, nil)
	if status != nethttp.StatusOK {
		t.Fatalf("withdrawal = %d %s", status, env.Message)
	}
	status, _ = s.do("GET", fmt.Sprintf("/api/v1/members/%d", id), "", nil)
	if status != nethttp.StatusNotFound {
		t.Errorf("withdrawn member = %d, want 404", status)
	}
}

func TestLongPasswordIsBadRequest(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name     string
		path     string
		password string
	}{
		{"join over binding limit", "/api/v1/members", strings.Repeat("a", 100)},
		{"join multibyte over bcrypt limit", "/api/v1/members", strings.Repeat("비", 30)},
		{"anonymous board multibyte", "/api/v1/boards", strings.Repeat("비", 30)},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := gin.H{
				"username": fmt.Sprintf("user%d", i),
				"password": tt.password,
				"title":    "t",
				"content":  "c",
				"nickname": "guest",
			}
			status, env := s.do("POST", tt.path, "", body)
			if status != nethttp.StatusBadRequest {
				t.Errorf("status = %d %q, want 400", status, env.Message)
			}
		})
	}
}

func TestInvalidToken(t *testing.T) {
	s := newTestServer(t)
	status, env := s.do("GET", "/api/v1/boards", "not-a-token", nil)
	if status != nethttp.StatusUnauthorized {
		t.Errorf("status = %d %s, want 401", status, env.Message)
	}
}

func TestBoardEndpoints(t *testing.T) {
	s := newTestServer(t)
	_, token := s.joinAndLogin("writer")

	memberPost := s.mustID("POST", "/api/v1/boards", token, gin.H{"title": "hello", "content": "from a member"})
	anonPost := s.mustID("POST", "/api/v1/boards", "", gin.H{"title": "hi", "content": "from a guest", "nickname": "guest", "password": "pw"})

	status, _ := s.do("POST", "/api/v1/boards", "", gin.H{"title": "t", "content": "c", "nickname": "guest"})
	if status != nethttp.StatusBadRequest {
		t.Errorf("anonymous create without password = %d, want 400", status)
	}

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   interface{}
		status int
		code   int
	}{
		{"wrong password", "PATCH", fmt.Sprintf("/api/v1/boards/%d", anonPost), "", gin.H{"title": "x", "password": "nope"}, 403, 40301},
		{"guest on member post", "PATCH", fmt.Sprintf("/api/v1/boards/%d", memberPost), "", gin.H{"title": "x", "password": "pw"}, 403, 40300},
		{"member on guest post", "DELETE", fmt.Sprintf("/api/v1/boards/%d", anonPost), token, nil, 403, 40300},
		{"missing board", "GET", "/api/v1/boards/999", "", nil, 404, 40400},
		{"bad id", "GET", "/api/v1/boards/abc", "", nil, 400, 40000},
		{"owner update", "PATCH", fmt.Sprintf("/api/v1/boards/%d", memberPost), token, gin.H{"title": "edited"}, 200, 0},
		{"password update", "PATCH", fmt.Sprintf("/api/v1/boards/%d", anonPost), "", gin.H{"content": "edited", "password": "pw"}, 200, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := s.do(tt.method, tt.path, tt.token, tt.body)
			if status != tt.status || env.Code != tt.code {
				t.Errorf("got %d/%d %q, want %d/%d", status, env.Code, env.Message, tt.status, tt.code)
			}
		})
	}

	_, env := s.do("GET", "/api/v1/boards/999", "", nil)
	if env.Message != "post not found" {
		t.Errorf("missing board message = %q", env.Message)
	}

	status, env = s.do("GET", fmt.Sprintf("/api/v1/boards/%d", anonPost), "", nil)
	if status != nethttp.StatusOK {
		t.Fatalf("get board = %d", status)
	}
	body := string(env.Data)
	if !strings.Contains(body, `"views":1`) || !strings.Contains(body, `"anonymous":true`) {
		t.Errorf("board detail = %s", body)
	}
	if strings.Contains(body, "password") {
		t.Errorf("board detail leaks password: %s", body)
	}

	status, env = s.do("GET", fmt.Sprintf("/api/v1/boards/%d/anonymous", memberPost), "", nil)
	if status != nethttp.StatusOK || !strings.Contains(string(env.Data), `"anonymous":false`) {
		t.Errorf("anonymous flag = %d %s", status, env.Data)
	}

	status, env = s.do("GET", "/api/v1/boards/search?title=edit", "", nil)
	if status != nethttp.StatusOK || !strings.Contains(string(env.Data), `"total":1`) {
		t.Errorf("search = %d %s", status, env.Data)
	}

	status, _ = s.do("DELETE", fmt.Sprintf("/api/v1/boards/%d", anonPost), "", gin.H{"password": "pw"})
	if status != nethttp.StatusOK {
		t.Errorf("password delete = %d", status)
	}
	status, _ = s.do("DELETE", fmt.Sprintf("/api/v1/boards/%d", memberPost), token, nil)
	if status != nethttp.StatusOK {
		t.Errorf("owner delete = %d", status)
	}
}

func TestListBoardsCorrectsPage(t *testing.T) {
	s := newTestServer(t)
	for i := 0; i < 12; i++ {
		s.mustID("POST", "/api/v1/boards", "", gin.H{"title": fmt.Sprintf("post %d", i), "content": "c", "nickname": "n", "password": "pw"})
	}

	status, env := s.do("GET", "/api/v1/boards?page=5&size=10", "", nil)
	if status != nethttp.StatusOK {
		t.Fatalf("list = %d", status)
	}
	var page struct {
		Items []struct {
			Title string `json:"title"`
		} `json:"items"`
		Total int64 `json:"total"`
		Page  int   `json:"page"`
		Size  int   `json:"size"`
	}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatal(err)
	}
	if page.Page != 1 || page.Total != 12 || page.Size != 10 || len(page.Items) != 2 {
		t.Errorf("page = %+v", page)
	}

	status, env = s.do("GET", "/api/v1/boards?page=9223372036854775807&size=10", "", nil)
	if status != nethttp.StatusOK || !strings.Contains(string(env.Data), `"page":1`) {
		t.Errorf("max page = %d %s", status, env.Data)
	}

	status, _ = s.do("GET", "/api/v1/boards?page=x", "", nil)
	if status != nethttp.StatusBadRequest {
		t.Errorf("bad page = %d", status)
	}
}

func TestCommentEndpoints(t *testing.T) {
	s := newTestServer(t)
	boardID := s.mustID("POST", "/api/v1/boards", "", gin.H{"title": "t", "content": "c", "nickname": "n", "password": "pw"})
	commentsPath := fmt.Sprintf("/api/v1/boards/%d/comments", boardID)

	commentID := s.mustID("POST", commentsPath, "", gin.H{"content": "first", "nickname": "guest", "password": "cpw"})

	status, env := s.do("POST", "/api/v1/boards/999/comments", "", gin.H{"content": "x", "nickname": "guest", "password": "cpw"})
	if status != nethttp.StatusNotFound || env.Message != "post not found" {
		t.Errorf("comment on missing board = %d %q", status, env.Message)
	}

	status, env = s.do("GET", commentsPath, "", nil)
	if status != nethttp.StatusOK || !strings.Contains(string(env.Data), `"content":"first"`) {
		t.Errorf("list comments = %d %s", status, env.Data)
	}
	if !strings.Contains(string(env.Data), `"anonymous":true`) || strings.Contains(string(env.Data), "password") {
		t.Errorf("comment projection = %s", env.Data)
	}

	path := fmt.Sprintf("/api/v1/comments/%d", commentID)
	status, _ = s.do("PATCH", path, "", gin.H{"content": "changed", "password": "wrong"})
	if status != nethttp.StatusForbidden {
		t.Errorf("wrong password update = %d", status)
	}
	status, _ = s.do("PATCH", path, "", gin.H{"content": "changed", "password": "cpw"})
	if status != nethttp.StatusOK {
		t.Errorf("update = %d", status)
	}
	status, _ = s.do("DELETE", path, "", gin.H{"password": "cpw"})
	if status != nethttp.StatusOK {
		t.Errorf("delete = %d", status)
	}
	status, _ = s.do("DELETE", path, "", gin.H{"password": "cpw"})
	if status != nethttp.StatusNotFound {
		t.Errorf("second delete = %d", status)
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if rec.Code != nethttp.StatusOK {
		t.Errorf("healthz = %d %s", rec.Code, rec.Body.String())
	}
}
