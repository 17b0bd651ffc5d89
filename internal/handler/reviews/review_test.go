package reviews

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"tourbase/internal/apperr"
	"tourbase/internal/database"
	"tourbase/internal/middleware"
	"tourbase/internal/model"
	"tourbase/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

func restore() {
	createReview = store.CreateReview
	listReviews = store.ListReviews
}

func newJSONCtx(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestListReviewsHandler(t *testing.T) {
	t.Cleanup(restore)
	e := echo.New()
	listReviews = func(_ context.Context, _ database.DB, params url.Values) ([]map[string]any, error) {
		require.Equal(t, "4", params.Get("rating[gte]"))
		return []map[string]any{{"id": 1}}, nil
	}
	ctx, rec := newJSONCtx(e, http.MethodGet, "/reviews?rating[gte]=4", "")
	require.NoError(t, ListReviewsHandler(nil)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"results":1`)
}

func TestCreateReviewHandler(t *testing.T) {
	e := echo.New()
	e.Validator = &stubValidator{}

	t.Run("unauthenticated", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, _ := newJSONCtx(e, http.MethodPost, "/reviews", `{"review":"ok","rating":5,"tour_id":1}`)
		err := CreateReviewHandler(nil)(ctx)
		var ae *apperr.AppError
		require.ErrorAs(t, err, &ae)
		require.Equal(t, http.StatusUnauthorized, ae.Code)
	})

	t.Run("author comes from identity", func(t *testing.T) {
		t.Cleanup(restore)
		createReview = func(_ context.Context, _ database.DB, r *model.Review) (*model.Review, error) {
			require.Equal(t, 42, r.UserID)
			require.Equal(t, 7, r.TourID)
			r.ID = 1
			return r, nil
		}
		// body 帶的 user_id 無效，作者只認登入身分
		body := `{"review":"great","rating":5,"tour_id":7,"user_id":999}`
		ctx, rec := newJSONCtx(e, http.MethodPost, "/reviews", body)
		ctx.Set(middleware.ContextUserKey, &model.User{ID: 42, Role: model.RoleUser})
		require.NoError(t, CreateReviewHandler(nil)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
	})
}
