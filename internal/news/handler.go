package news

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"xnews/internal/csrf"
	"xnews/internal/forms"
	"xnews/internal/logging"
	"xnews/internal/metrics"
	"xnews/internal/page"
	"xnews/internal/sync"
	"xnews/pkg/database"
	"xnews/pkg/models"
)

// CategoryLister supplies the choices for the category field.
type CategoryLister interface {
	List(ctx context.Context) ([]models.Category, error)
}

type Handler struct {
	Repo       *Repo
	Categories CategoryLister
	CSRF       csrf.TokenService
	Hub        *sync.Hub // optional
}

func NewHandler(repo *Repo, categories CategoryLister, tokens csrf.TokenService, hub *sync.Hub) *Handler {
	return &Handler{Repo: repo, Categories: categories, CSRF: tokens, Hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.home)
	rg.GET("/create-news", h.showForm)
	rg.POST("/create-news", h.create)
	rg.GET("/:id", h.getByID) // GET /:id
}

func (h *Handler) home(c *gin.Context) {
	items, err := h.Repo.ListAll(c.Request.Context())
	if err != nil {
		page.Fail(c, err, "list news failed")
		return
	}
	page.Render(c, http.StatusOK, "home.html", gin.H{"news_list": items})
}

func (h *Handler) getByID(c *gin.Context) {
	id, ok := page.ParseID(c, "id")
	if !ok {
		page.NotFound(c, "news")
		return
	}

	n, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		page.Fail(c, err, "get news failed")
		return
	}
	if n == nil {
		page.NotFound(c, "news")
		return
	}
	page.Render(c, http.StatusOK, "news.html", gin.H{"news": n})
}

func (h *Handler) showForm(c *gin.Context) {
	cats, err := h.Categories.List(c.Request.Context())
	if err != nil {
		page.Fail(c, err, "list categories failed")
		return
	}
	h.renderForm(c, http.StatusOK, nil, cats)
}

func (h *Handler) create(c *gin.Context) {
	ctx := c.Request.Context()
	log := logging.FromContext(ctx)

	cats, err := h.Categories.List(ctx)
	if err != nil {
		page.Fail(c, err, "list categories failed")
		return
	}

	var sub Submission
	if err := c.ShouldBind(&sub); err != nil {
		metrics.RecordFormRejection("news", "validation")
		h.renderForm(c, http.StatusBadRequest, formErrors(forms.FormLevel, forms.MsgInvalid), cats)
		return
	}

	if err := h.CSRF.VerifyRequest(c); err != nil {
		log.Warn("news submission rejected", "reason", "csrf", "error", err)
		metrics.RecordFormRejection("news", "csrf")
		h.renderFormWith(c, http.StatusBadRequest, sub, formErrors(forms.FormLevel, forms.MsgCSRF), cats)
		return
	}

	in, errs := Validate(sub, cats)
	if errs.Any() {
		metrics.RecordFormRejection("news", "validation")
		h.renderFormWith(c, http.StatusOK, sub, errs, cats)
		return
	}

	n, err := h.Repo.Insert(ctx, in.CategoryID, in.Title, in.Text)
	switch {
	case errors.Is(err, ErrDuplicateTitle):
		metrics.RecordFormRejection("news", "conflict")
		h.renderFormWith(c, http.StatusConflict, sub, formErrors("title", MsgDuplicateTitle), cats)
		return
	case errors.Is(err, ErrUnknownCategory):
		metrics.RecordFormRejection("news", "conflict")
		h.renderFormWith(c, http.StatusConflict, sub, formErrors("category", MsgBadCategory), cats)
		return
	case errors.Is(err, database.ErrConstraintViolation):
		log.Warn("news submission rejected by store", "error", err)
		metrics.RecordFormRejection("news", "conflict")
		h.renderFormWith(c, http.StatusConflict, sub, formErrors(forms.FormLevel, forms.MsgInvalid), cats)
		return
	case err != nil:
		page.Fail(c, err, "create news failed")
		return
	}

	log.Info("news created", "news_id", n.ID, "category_id", n.CategoryID)
	metrics.RecordNewsCreated()

	if h.Hub != nil {
		ev := sync.NewsEvent{
			Type:       sync.NewsCreated,
			NewsID:     n.ID,
			CategoryID: n.CategoryID,
			Title:      n.Title,
			At:         n.Created,
		}
		go h.Hub.PublishNews(ev)
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/%d", n.ID))
}

func (h *Handler) renderForm(c *gin.Context, code int, errs forms.Errors, cats []models.Category) {
	h.renderFormWith(c, code, Submission{}, errs, cats)
}

// renderFormWith shows the form again with the submitted values kept and a
// fresh token for the next attempt.
func (h *Handler) renderFormWith(c *gin.Context, code int, sub Submission, errs forms.Errors, cats []models.Category) {
	token, err := h.CSRF.Issue()
	if err != nil {
		page.Fail(c, err, "issue csrf token failed")
		return
	}

	form := forms.New(token)
	if sub != (Submission{}) {
		form.Values = sub.Values()
	}
	if errs != nil {
		form.Errors = errs
	}

	page.Render(c, code, "create.html", gin.H{
		"form":    form,
		"choices": cats,
	})
}

func formErrors(field, msg string) forms.Errors {
	errs := forms.Errors{}
	errs.Add(field, msg)
	return errs
}
