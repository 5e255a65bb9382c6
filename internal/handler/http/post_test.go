package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/miniforum/internal/metrics"
	"github.com/MKhiriev/miniforum/internal/service"
	"github.com/MKhiriev/miniforum/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var postTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestMakePost(t *testing.T) {
	svcs := newTestServices()
	svcs.sessions.bind("alice-token", alice)
	svcs.posts.makePostFn = func(_ context.Context, user models.User, req models.MakePostRequest) (models.Post, error) {
		assert.Equal(t, alice, user)
		return models.Post{PostID: 10, UserID: user.UserID, Username: user.Username, Text: req.Text, CreatedOn: postTime}, nil
	}
	router, m := newTestRouter(t, svcs)

	apitest.New().
		Handler(router).
		Post("/api/post").
		Cookie(testCookieName, "alice-token").
		JSON(`{"text":"hello"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.userId", float64(1))).
		Assert(jsonpath.Equal("$.username", "alice")).
		Assert(jsonpath.Equal("$.post.id", float64(10))).
		Assert(jsonpath.Equal("$.post.text", "hello")).
		End()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PostOperationsTotal.WithLabelValues(metrics.OperationCreate, metrics.ResultSuccess)))
}

func TestMakePost_InvalidText(t *testing.T) {
	svcs := newTestServices()
	svcs.sessions.bind("alice-token", alice)
	svcs.posts.makePostFn = func(context.Context, models.User, models.MakePostRequest) (models.Post, error) {
		return models.Post{}, service.ErrInvalidDataProvided
	}
	router, _ := newTestRouter(t, svcs)

	apitest.New().
		Handler(router).
		Post("/api/post").
		Cookie(testCookieName, "alice-token").
		JSON(`{"text":"   "}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestPostRoutes_RequireLogin(t *testing.T) {
	svcs := newTestServices()
	router, _ := newTestRouter(t, svcs)

	for _, method := range []string{http.MethodPost, http.MethodGet, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			apitest.New().
				Handler(router).
				Method(method).
				URL("/api/post").
				Cookie(testCookieName, "forged-token").
				Expect(t).
				Status(http.StatusUnauthorized).
				Body(`{"error":"you must be logged in","redirect":"/"}`).
				CookiePresent(testCookieName).
				End()
		})
	}
}

func TestGetPosts(t *testing.T) {
	posts := []models.Post{
		{PostID: 2, UserID: 2, Username: "bob", Text: "second", CreatedOn: postTime.Add(time.Minute)},
		{PostID: 1, UserID: 1, Username: "alice", Text: "first", CreatedOn: postTime},
	}

	svcs := newTestServices()
	svcs.sessions.bind("alice-token", alice)
	svcs.posts.getPostsFn = func(_ context.Context, filter models.PostFilter) ([]models.Post, error) {
		assert.Equal(t, models.PostFilter{}, filter)
		return posts, nil
	}
	router, _ := newTestRouter(t, svcs)

	apitest.New().
		Handler(router).
		Get("/api/post").
		Cookie(testCookieName, "alice-token").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.userId", float64(1))).
		Assert(jsonpath.Len("$.posts", 2)).
		Assert(jsonpath.Equal("$.posts[0].text", "second")).
		Assert(jsonpath.Equal("$.posts[1].username", "alice")).
		End()
}

func TestGetPosts_Filters(t *testing.T) {
	svcs := newTestServices()
	svcs.sessions.bind("alice-token", alice)
	svcs.auth.findUserByNameFn = func(_ context.Context, username string) (models.User, error) {
		if username == "bob" {
			return bob, nil
		}
		return models.User{}, service.ErrUserNotFound
	}
	var got models.PostFilter
	svcs.posts.getPostsFn = func(_ context.Context, filter models.PostFilter) ([]models.Post, error) {
		got = filter
		return []models.Post{}, nil
	}
	router, _ := newTestRouter(t, svcs)

	t.Run("author and limit", func(t *testing.T) {
		apitest.New().
			Handler(router).
			Get("/api/post").
			Query("author", "bob").
			Query("limit", "5").
			Cookie(testCookieName, "alice-token").
			Expect(t).
			Status(http.StatusOK).
			End()

		assert.Equal(t, models.PostFilter{AuthorID: bob.UserID, Limit: 5}, got)
	})

	t.Run("limit is capped", func(t *testing.T) {
		apitest.New().
			Handler(router).
			Get("/api/post").
			Query("limit", "100000").
			Cookie(testCookieName, "alice-token").
			Expect(t).
			Status(http.StatusOK).
			End()

		assert.Equal(t, uint64(maxPostsLimit), got.Limit)
	})

	t.Run("unknown author yields an empty list", func(t *testing.T) {
		apitest.New().
			Handler(router).
			Get("/api/post").
			Query("author", "nobody").
			Cookie(testCookieName, "alice-token").
			Expect(t).
			Status(http.StatusOK).
			Body(`{"userId":1,"posts":[]}`).
			End()
	})

	t.Run("bad limit", func(t *testing.T) {
		apitest.New().
			Handler(router).
			Get("/api/post").
			Query("limit", "-1").
			Cookie(testCookieName, "alice-token").
			Expect(t).
			Status(http.StatusBadRequest).
			Body(`{"error":"invalid query parameter: limit must be a positive integer"}`).
			End()
	})
}

func TestEditPost(t *testing.T) {
	svcs := newTestServices()
	svcs.sessions.bind("alice-token", alice)
	svcs.posts.editPostFn = func(_ context.Context, user models.User, req models.EditPostRequest) (models.Post, error) {
		assert.Equal(t, int64(10), req.PostID)
		return models.Post{PostID: req.PostID, UserID: user.UserID, Username: user.Username, Text: req.Text, CreatedOn: postTime}, nil
	}
	router, _ := newTestRouter(t, svcs)

	apitest.New().
		Handler(router).
		Put("/api/post").
		Cookie(testCookieName, "alice-token").
		JSON(`{"postId":10,"text":"edited"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.post.text", "edited")).
		End()
}

func TestEditPost_NotOwner(t *testing.T) {
	svcs := newTestServices()
	svcs.sessions.bind("bob-token", bob)
	svcs.posts.editPostFn = func(context.Context, models.User, models.EditPostRequest) (models.Post, error) {
		return models.Post{}, service.ErrForbidden
	}
	router, m := newTestRouter(t, svcs)

	apitest.New().
		Handler(router).
		Put("/api/post").
		Cookie(testCookieName, "bob-token").
		JSON(`{"postId":10,"text":"hijacked"}`).
		Expect(t).
		Status(http.StatusForbidden).
		Body(`{"error":"you can't modify another user's post"}`).
		End()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PostOperationsTotal.WithLabelValues(metrics.OperationEdit, metrics.ResultFailure)))
}

func TestDeletePost(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
		wantResult string
	}{
		{
			name:       "owner deletes",
			wantStatus: http.StatusOK,
			wantBody:   `{"msg":"Post deleted!"}`,
			wantResult: metrics.ResultSuccess,
		},
		{
			name:       "not owner",
			err:        service.ErrForbidden,
			wantStatus: http.StatusForbidden,
			wantBody:   `{"error":"you can't modify another user's post"}`,
			wantResult: metrics.ResultFailure,
		},
		{
			name:       "missing post",
			err:        service.ErrPostNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"post not found"}`,
			wantResult: metrics.ResultFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcs := newTestServices()
			svcs.sessions.bind("alice-token", alice)
			svcs.posts.deletePostFn = func(_ context.Context, _ models.User, req models.DeletePostRequest) error {
				assert.Equal(t, int64(7), req.PostID)
				return tt.err
			}
			router, m := newTestRouter(t, svcs)

			apitest.New().
				Handler(router).
				Delete("/api/post").
				Cookie(testCookieName, "alice-token").
				JSON(`{"postId":7}`).
				Expect(t).
				Status(tt.wantStatus).
				Body(tt.wantBody).
				End()

			assert.Equal(t, 1.0, testutil.ToFloat64(m.PostOperationsTotal.WithLabelValues(metrics.OperationDelete, tt.wantResult)))
		})
	}
}

func TestParsePostFilter(t *testing.T) {
	tests := []struct {
		query   string
		want    models.PostFilter
		wantErr bool
	}{
		{query: "", want: models.PostFilter{}},
		{query: "limit=20", want: models.PostFilter{Limit: 20}},
		{query: "limit=0", wantErr: true},
		{query: "limit=abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/post?"+tt.query, nil)

			got, err := parsePostFilter(req)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidQuery)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
