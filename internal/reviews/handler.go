package reviews

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"xnews/internal/csrf"
	"xnews/internal/forms"
	"xnews/internal/logging"
	"xnews/internal/metrics"
	"xnews/internal/page"
	"xnews/pkg/database"
)

const formPath = "/create-review"

type Handler struct {
	Repo *Repo
	CSRF csrf.TokenService
}

func NewHandler(repo *Repo, tokens csrf.TokenService) *Handler {
	return &Handler{Repo: repo, CSRF: tokens}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET(formPath, h.showForm)
	rg.POST(formPath, h.create)
}

func (h *Handler) showForm(c *gin.Context) {
	h.render(c, http.StatusOK, Submission{}, nil)
}

func (h *Handler) create(c *gin.Context) {
	ctx := c.Request.Context()
	log := logging.FromContext(ctx)

	var sub Submission
	if err := c.ShouldBind(&sub); err != nil {
		metrics.RecordFormRejection("review", "validation")
		h.render(c, http.StatusBadRequest, Submission{}, formErrors(forms.FormLevel, forms.MsgInvalid))
		return
	}

	if err := h.CSRF.VerifyRequest(c); err != nil {
		log.Warn("review submission rejected", "reason", "csrf", "error", err)
		metrics.RecordFormRejection("review", "csrf")
		h.render(c, http.StatusBadRequest, sub, formErrors(forms.FormLevel, forms.MsgCSRF))
		return
	}

	in, errs := Validate(sub)
	if errs.Any() {
		metrics.RecordFormRejection("review", "validation")
		h.render(c, http.StatusOK, sub, errs)
		return
	}

	review, err := h.Repo.Create(ctx, in.Name, in.Text, in.Email, in.Rating)
	if errors.Is(err, database.ErrConstraintViolation) {
		log.Warn("review submission rejected by store", "error", err)
		metrics.RecordFormRejection("review", "conflict")
		h.render(c, http.StatusConflict, sub, formErrors(forms.FormLevel, forms.MsgInvalid))
		return
	}
	if err != nil {
		page.Fail(c, err, "create review failed")
		return
	}

	log.Info("review created", "review_id", review.ID, "rating", review.Rating)
	metrics.RecordReviewCreated()

	// back to a fresh, empty form
	c.Redirect(http.StatusFound, formPath)
}

func (h *Handler) render(c *gin.Context, code int, sub Submission, errs forms.Errors) {
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

	page.Render(c, code, "review.html", gin.H{"form": form})
}

func formErrors(field, msg string) forms.Errors {
	errs := forms.Errors{}
	errs.Add(field, msg)
	return errs
}
