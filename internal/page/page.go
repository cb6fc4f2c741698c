// Package page renders the HTML pages. Every page gets the category list for
// navigation when an earlier middleware loaded it.
package page

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"xnews/internal/logging"
	"xnews/pkg/models"
)

const categoriesKey = "page.categories"

func SetCategories(c *gin.Context, cats []models.Category) {
	c.Set(categoriesKey, cats)
}

func Categories(c *gin.Context) []models.Category {
	v, ok := c.Get(categoriesKey)
	if !ok {
		return nil
	}
	cats, _ := v.([]models.Category)
	return cats
}

func Render(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["categories"]; !ok {
		data["categories"] = Categories(c)
	}
	c.HTML(code, name, data)
}

// NotFound renders the dedicated 404 page for an absent record.
func NotFound(c *gin.Context, what string) {
	Render(c, http.StatusNotFound, "not_found.html", gin.H{"what": what})
}

// Fail logs err and renders a 500 page. The request ends here; other
// requests are unaffected.
func Fail(c *gin.Context, err error, msg string) {
	logging.FromContext(c.Request.Context()).Error(msg, "error", err)
	Render(c, http.StatusInternalServerError, "error.html", gin.H{"message": msg})
}

// ParseID reads a positive integer path parameter made of digits only.
func ParseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	if raw == "" || strings.TrimLeft(raw, "0123456789") != "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
