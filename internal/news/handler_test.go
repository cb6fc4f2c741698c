package news_test

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xnews/internal/csrf"
	"xnews/internal/dbtest"
	"xnews/internal/forms"
	"xnews/internal/news"
	"xnews/internal/web"
	"xnews/pkg/models"
)

// staticCategories offers choices regardless of what the store holds.
type staticCategories []models.Category

func (s staticCategories) List(context.Context) ([]models.Category, error) {
	return s, nil
}

var testTokens = csrf.TokenService{Secret: []byte("test-secret"), Issuer: "xnews", Duration: time.Hour}

func newsRouter(t *testing.T, db *sql.DB, cats staticCategories) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpl, err := web.LoadTemplates()
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	news.NewHandler(news.NewRepo(db), cats, testTokens, nil).RegisterRoutes(r.Group(""))
	return r
}

func postNews(t *testing.T, r *gin.Engine, category string) *httptest.ResponseRecorder {
	t.Helper()
	tok, err := testTokens.Issue()
	require.NoError(t, err)

	form := url.Values{
		"csrf_token": {tok},
		"title":      {"Launch Day"},
		"text":       {"We shipped."},
		"category":   {category},
	}
	req := httptest.NewRequest(http.MethodPost, "/create-news", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreate_CategoryGoneBeforeInsert(t *testing.T) {
	db := dbtest.Open(t)
	r := newsRouter(t, db, staticCategories{{ID: 77, Name: "Removed"}})

	w := postNews(t, r, "77")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), news.MsgBadCategory)
	assert.Contains(t, w.Body.String(), `value="Launch Day"`)
	assert.Equal(t, 0, dbtest.Count(t, db, "news"))
}

func TestCreate_StoreConstraintShownOnForm(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO news")).
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintCheck})

	r := newsRouter(t, db, staticCategories{{ID: 1, Name: "World"}})
	w := postNews(t, r, "1")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), forms.MsgInvalid)
	assert.Contains(t, w.Body.String(), `value="Launch Day"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
