// Static page handlers.
//
// These endpoints render the informational pages of the site. They carry no
// state beyond the template set registered on the engine.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/donhackett/go-resume-site/internal/web"
)

// Home renders the landing page.
func (h *Handlers) Home(c *gin.Context) {
	web.Render(c, http.StatusOK, "index.html", "Don Hackett — resume and projects", nil)
}

// Books renders the reading list page.
func (h *Handlers) Books(c *gin.Context) {
	web.Render(c, http.StatusOK, "books.html", "Books", nil)
}

// References renders the references page.
func (h *Handlers) References(c *gin.Context) {
	web.Render(c, http.StatusOK, "references.html", "References", nil)
}

// Test renders the layout scratch page kept around for styling experiments.
func (h *Handlers) Test(c *gin.Context) {
	web.Render(c, http.StatusOK, "test.html", "Test", nil)
}
