package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

const testSecret = "unit-test-secret"

func flashRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/set", func(c *gin.Context) {
		SetFlash(c, testSecret, Flash{Message: "hello there", Category: "success"})
		c.Status(http.StatusOK)
	})
	r.GET("/pop", func(c *gin.Context) {
		if f := PopFlash(c, testSecret); f != nil {
			c.String(http.StatusOK, "%s|%s", f.Category, f.Message)
			return
		}
		c.String(http.StatusOK, "none")
	})
	return r
}

func TestFlash_RoundTrip(t *testing.T) {
	r := flashRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/set", nil))
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != flashCookie {
		t.Fatalf("expected one flash cookie, got %v", cookies)
	}

	w2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/pop", nil)
	req.AddCookie(cookies[0])
	r.ServeHTTP(w2, req)
	if got := w2.Body.String(); got != "success|hello there" {
		t.Fatalf("pop = %q", got)
	}
	// Cookie must be cleared after the pop.
	cleared := false
	for _, ck := range w2.Result().Cookies() {
		if ck.Name == flashCookie && ck.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("flash cookie should be cleared on pop")
	}
}

func TestFlash_TamperedCookieDropped(t *testing.T) {
	r := flashRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/set", nil))
	ck := w.Result().Cookies()[0]

	// Flip part of the payload while keeping the signature.
	parts := strings.SplitN(ck.Value, ".", 2)
	tampered := &http.Cookie{Name: ck.Name, Value: "eyJtIjoiaGF4In0" + "." + parts[1]}

	w2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/pop", nil)
	req.AddCookie(tampered)
	r.ServeHTTP(w2, req)
	if got := w2.Body.String(); got != "none" {
		t.Fatalf("tampered cookie should be dropped, got %q", got)
	}
}

func TestFlash_NoCookie(t *testing.T) {
	r := flashRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pop", nil))
	if got := w.Body.String(); got != "none" {
		t.Fatalf("expected none, got %q", got)
	}
}

func TestTemplates_ParseAndRender(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(Templates())
	r.GET("/", func(c *gin.Context) {
		Render(c, http.StatusOK, "index.html", "Home", nil)
	})
	r.GET("/err", func(c *gin.Context) {
		RenderError(c, http.StatusNotFound, "page not found")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "resume") {
		t.Fatalf("index render failed: %d %q", w.Code, w.Body.String())
	}

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/err", nil))
	if w2.Code != http.StatusNotFound || !strings.Contains(w2.Body.String(), "page not found") {
		t.Fatalf("error render failed: %d %q", w2.Code, w2.Body.String())
	}
}
