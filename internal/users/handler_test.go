package users

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) (*gin.Engine, *MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := NewMemoryRepo()
	handler := NewHandler(NewService(repo))

	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	return router, repo
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestSignupThenLogin(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(router, http.MethodPost, "/api/v1/auth/signup",
		`{"loginId":"hong","userName":"홍길동","password":"secret1"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("signup status: %d body: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(router, http.MethodPost, "/api/v1/auth/login",
		`{"loginId":"hong","password":"secret1"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("login status: %d body: %s", resp.Code, resp.Body.String())
	}

	var payload struct {
		Token    string `json:"token"`
		UserName string `json:"userName"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if payload.Token == "" {
		t.Fatal("expected a session token")
	}
	if payload.UserName != "홍길동" {
		t.Fatalf("unexpected user name: %q", payload.UserName)
	}
}

func TestSignupDuplicateLoginID(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{"loginId":"hong","userName":"홍길동","password":"secret1"}`
	if resp := doJSON(router, http.MethodPost, "/api/v1/auth/signup", body); resp.Code != http.StatusCreated {
		t.Fatalf("first signup status: %d", resp.Code)
	}
	resp := doJSON(router, http.MethodPost, "/api/v1/auth/signup", body)
	if resp.Code != http.StatusConflict {
		t.Fatalf("duplicate signup status: %d body: %s", resp.Code, resp.Body.String())
	}
}

func TestSignupRejectsShortPassword(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(router, http.MethodPost, "/api/v1/auth/signup",
		`{"loginId":"hong","userName":"홍길동","password":"ab"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	router, _ := newTestRouter(t)

	doJSON(router, http.MethodPost, "/api/v1/auth/signup",
		`{"loginId":"hong","userName":"홍길동","password":"secret1"}`)

	resp := doJSON(router, http.MethodPost, "/api/v1/auth/login",
		`{"loginId":"hong","password":"wrong"}`)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body: %s", resp.Code, resp.Body.String())
	}
}

func TestLoginUnknownUser(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(router, http.MethodPost, "/api/v1/auth/login",
		`{"loginId":"nobody","password":"secret1"}`)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}
