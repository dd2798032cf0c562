package v1

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Gorani9/matzip-sub000/config"
	"github.com/Gorani9/matzip-sub000/container"
	"github.com/Gorani9/matzip-sub000/search"
	"github.com/Gorani9/matzip-sub000/services"
	"github.com/Gorani9/matzip-sub000/storage"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"id", "uuid", "username", "profile_string", "profile_image_url", "level", "created_at", "updated_at"}

type page struct {
	Content []struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"content"`
	NumberOfElements int    `json:"number_of_elements"`
	Size             int    `json:"size"`
	Number           int    `json:"number"`
	First            bool   `json:"first"`
	Last             bool   `json:"last"`
	Empty            bool   `json:"empty"`
	NextPageToken    string `json:"next_page_token"`
}

type apiError struct {
	Error string `json:"error"`
	Field string `json:"field"`
}

func newTestServer(t *testing.T, timeout time.Duration) (*echo.Echo, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	c := &container.Container{
		Config: &config.Config{
			EncryptionKey:         "test-key",
			SearchMaxPageSize:     100,
			SearchDefaultPageSize: 20,
			SearchQueryTimeout:    timeout,
			SearchKeywordStrategy: "contains",
		},
		Postgres: &storage.Postgres{DB: db},
	}

	svc, err := services.NewSearchService(c)
	require.NoError(t, err)

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler()
	RegisterRoutes(e, c, svc)

	return e, mock
}

func expectFollowers(t *testing.T, mock sqlmock.Sqlmock, subject string, req *search.SearchRequest) *sqlmock.ExpectedQuery {
	t.Helper()

	p, err := search.NewPlanner(nil, search.KeywordContains).Plan(search.FamilyFollowers, subject, req)
	require.NoError(t, err)

	query, args := p.SQL()
	values := make([]driver.Value, len(args))
	for i, a := range args {
		values[i] = a
	}

	return mock.ExpectQuery(query).WithArgs(values...)
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func userRow(rows *sqlmock.Rows, id int64, username string) *sqlmock.Rows {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(id) * time.Hour)
	return rows.AddRow(id, "00000000-0000-4000-8000-00000000000"+string(rune('0'+id)), username, nil, nil, int64(1), created, created)
}

func TestListFollowers_PagesWithToken(t *testing.T) {
	e, mock := newTestServer(t, time.Second)

	first := sqlmock.NewRows(userCols)
	userRow(first, 3, "carol")
	userRow(first, 2, "bob")
	expectFollowers(t, mock, "alice", &search.SearchRequest{Size: 1, SortKey: search.SortByCreatedAt}).WillReturnRows(first)

	rec := get(e, "/v1/users/alice/followers?size=1")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var p1 page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p1))
	require.Len(t, p1.Content, 1)
	assert.Equal(t, "carol", p1.Content[0].Username)
	assert.Equal(t, 1, p1.NumberOfElements)
	assert.Equal(t, 1, p1.Size)
	assert.Equal(t, 0, p1.Number)
	assert.True(t, p1.First)
	assert.False(t, p1.Last)
	assert.False(t, p1.Empty)
	require.NotEmpty(t, p1.NextPageToken)

	second := sqlmock.NewRows(userCols)
	userRow(second, 2, "bob")
	expectFollowers(t, mock, "alice", &search.SearchRequest{Size: 1, Page: 1, SortKey: search.SortByCreatedAt}).WillReturnRows(second)

	rec = get(e, "/v1/users/alice/followers?page_token="+url.QueryEscape(p1.NextPageToken))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var p2 page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p2))
	require.Len(t, p2.Content, 1)
	assert.Equal(t, "bob", p2.Content[0].Username)
	assert.Equal(t, 1, p2.Number)
	assert.False(t, p2.First)
	assert.True(t, p2.Last)
	assert.Empty(t, p2.NextPageToken)

	require.NoError(t, mock.ExpectationsWereMet())

	t.Run("token for another subject", func(t *testing.T) {
		rec := get(e, "/v1/users/bob/followers?page_token="+url.QueryEscape(p1.NextPageToken))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body apiError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "page_token", body.Field)
	})

	t.Run("token for another family", func(t *testing.T) {
		rec := get(e, "/v1/users/alice/followings?page_token="+url.QueryEscape(p1.NextPageToken))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListFollowers_EmptyPage(t *testing.T) {
	e, mock := newTestServer(t, time.Second)
	expectFollowers(t, mock, "ghost", &search.SearchRequest{Size: 20, SortKey: search.SortByCreatedAt}).
		WillReturnRows(sqlmock.NewRows(userCols))

	rec := get(e, "/v1/users/ghost/followers")
	require.Equal(t, http.StatusOK, rec.Code)

	var p page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.NotNil(t, p.Content)
	assert.True(t, p.Empty)
	assert.True(t, p.First)
	assert.True(t, p.Last)
	assert.Contains(t, rec.Body.String(), `"content":[]`)
	assert.NotContains(t, rec.Body.String(), "next_page_token")
}

func TestSearchEndpoints_InvalidParameters(t *testing.T) {
	e, mock := newTestServer(t, time.Second)

	tests := []struct {
		name   string
		target string
		field  string
	}{
		{name: "size too large", target: "/v1/users/alice/followers?size=101", field: "size"},
		{name: "negative page", target: "/v1/reviews?page=-1", field: "page"},
		{name: "unknown sort", target: "/v1/reviews?sort=popularity", field: "sort"},
		{name: "sort outside family", target: "/v1/comments?sort=hearts", field: "sort"},
		{name: "bad asc", target: "/v1/users/alice/scraps?asc=maybe", field: "asc"},
		{name: "review is not a uuid", target: "/v1/comments?review=42", field: "review"},
		{name: "garbage page token", target: "/v1/reviews?page_token=0OIl", field: "page_token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(e, tt.target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body apiError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.field, body.Field)
			assert.NotEmpty(t, body.Error)
		})
	}

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListFollowers_Failures(t *testing.T) {
	t.Run("timeout", func(t *testing.T) {
		e, mock := newTestServer(t, 20*time.Millisecond)
		expectFollowers(t, mock, "alice", &search.SearchRequest{Size: 20, SortKey: search.SortByCreatedAt}).
			WillDelayFor(time.Second).
			WillReturnRows(sqlmock.NewRows(userCols))

		rec := get(e, "/v1/users/alice/followers")
		assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	})

	t.Run("database error", func(t *testing.T) {
		e, mock := newTestServer(t, time.Second)
		expectFollowers(t, mock, "alice", &search.SearchRequest{Size: 20, SortKey: search.SortByCreatedAt}).
			WillReturnError(errors.New("connection refused"))

		rec := get(e, "/v1/users/alice/followers")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}

func TestHealthz(t *testing.T) {
	e, _ := newTestServer(t, time.Second)

	rec := get(e, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
