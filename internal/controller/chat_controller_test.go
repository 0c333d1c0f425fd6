package controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newChatRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	ctrl := NewChatController(nil, nil)
	router.POST("/chat/ask-crm-db", ctrl.AskCrmDb)
	router.GET("/chat/list-crm-chats/:user_id/:message_number", ctrl.ListCrmChats)
	return router
}

func TestAskCrmDbRejectsMissingFields(t *testing.T) {
	router := newChatRouter()

	cases := []string{
		`{}`,
		`{"question":"hola"}`,
		`{"user_id":1}`,
		`not json`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/chat/ask-crm-db", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, w.Code)
		}
	}
}

func TestListCrmChatsRejectsBadParams(t *testing.T) {
	router := newChatRouter()

	cases := []string{
		"/chat/list-crm-chats/abc/5",
		"/chat/list-crm-chats/1/zero",
		"/chat/list-crm-chats/1/0",
		"/chat/list-crm-chats/1/-3",
	}
	for _, path := range cases {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("path %q: status = %d, want 400", path, w.Code)
		}
	}
}
