package category

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"xnews/internal/logging"
	"xnews/internal/page"
	"xnews/pkg/models"
)

// NewsLister is the slice of the news store the category page needs.
type NewsLister interface {
	ListByCategory(ctx context.Context, categoryID int64) ([]models.News, error)
}

type Handler struct {
	Repo *Repo
	News NewsLister
}

func NewHandler(repo *Repo, news NewsLister) *Handler {
	return &Handler{Repo: repo, News: news}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/category/:id", h.view) // GET /category/:id
}

func (h *Handler) view(c *gin.Context) {
	id, ok := page.ParseID(c, "id")
	if !ok {
		page.NotFound(c, "category")
		return
	}

	cat, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		page.Fail(c, err, "get category failed")
		return
	}
	if cat == nil {
		page.NotFound(c, "category")
		return
	}

	items, err := h.News.ListByCategory(c.Request.Context(), id)
	if err != nil {
		page.Fail(c, err, "list category news failed")
		return
	}

	page.Render(c, http.StatusOK, "category.html", gin.H{
		"category":  cat,
		"news_list": items,
	})
}

// Nav loads every category for the navigation bar. A failure is logged and
// the page renders without navigation.
func (h *Handler) Nav() gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := h.Repo.List(c.Request.Context())
		if err != nil {
			logging.FromContext(c.Request.Context()).Warn("load nav categories failed", "error", err)
		} else {
			page.SetCategories(c, cats)
		}
		c.Next()
	}
}
