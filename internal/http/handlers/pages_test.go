package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/donhackett/go-resume-site/internal/web"
)

func TestStaticPages(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(web.Templates())
	h := New(nil, nil, nil, nil, testSecret, "")
	r.GET("/", h.Home)
	r.GET("/books", h.Books)
	r.GET("/references", h.References)
	r.GET("/test", h.Test)

	for _, path := range []string{"/", "/books", "/references", "/test"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s -> %d", path, w.Code)
		}
		if w.Body.Len() == 0 {
			t.Fatalf("GET %s rendered an empty page", path)
		}
	}
}
