package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookstore-catalog/internal/domains/author/model"
	"bookstore-catalog/internal/domains/catalog"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) List(ctx context.Context, filter model.AuthorFilter, page, pageSize int) ([]model.Author, error) {
	args := m.Called(ctx, filter, page, pageSize)
	authors, _ := args.Get(0).([]model.Author)
	return authors, args.Error(1)
}

func (m *mockService) GetByID(ctx context.Context, id string) (*model.Author, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*model.Author)
	return a, args.Error(1)
}

func (m *mockService) Search(ctx context.Context, query string) ([]model.Author, error) {
	args := m.Called(ctx, query)
	authors, _ := args.Get(0).([]model.Author)
	return authors, args.Error(1)
}

func (m *mockService) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	args := m.Called(ctx, a)
	out, _ := args.Get(0).(*model.Author)
	return out, args.Error(1)
}

func (m *mockService) Update(ctx context.Context, id string, a *model.Author) (*model.Author, error) {
	args := m.Called(ctx, id, a)
	out, _ := args.Get(0).(*model.Author)
	return out, args.Error(1)
}

func (m *mockService) Patch(ctx context.Context, id string, patch model.AuthorPatch) (*model.Author, error) {
	args := m.Called(ctx, id, patch)
	out, _ := args.Get(0).(*model.Author)
	return out, args.Error(1)
}

func (m *mockService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

const authorID = "3f1c2a9e-8b5d-4c7a-9e21-6d4f0b8a1c55"

func newRouter(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthorHandler(svc, "/api/v1/authors")

	r := gin.New()
	g := r.Group("/api/v1/authors")
	g.GET("", h.ListAuthors)
	g.GET("/search", h.SearchAuthors)
	g.GET("/:id", h.GetAuthor)
	g.POST("", h.CreateAuthor)
	g.PUT("/:id", h.UpdateAuthor)
	g.PATCH("/:id", h.PatchAuthor)
	g.DELETE("/:id", h.DeleteAuthor)
	return r
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListAuthorsPassesFilterAndPaging(t *testing.T) {
	svc := new(mockService)
	svc.On("List", mock.Anything, model.AuthorFilter{Nationality: "Irish"}, 2, 5).
		Return([]model.Author{{ID: authorID, Name: "James Joyce"}}, nil)

	w := serve(newRouter(svc), http.MethodGet, "/api/v1/authors?nationality=Irish&page=2&pageSize=5", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"James Joyce"`)
	svc.AssertExpectations(t)
}

func TestCreateAuthorSetsLocation(t *testing.T) {
	svc := new(mockService)
	svc.On("Create", mock.Anything, &model.Author{Name: "Toni Morrison"}).
		Return(&model.Author{ID: authorID, Name: "Toni Morrison"}, nil)

	w := serve(newRouter(svc), http.MethodPost, "/api/v1/authors", `{"name":"Toni Morrison"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/v1/authors/"+authorID, w.Header().Get("Location"))
}

func TestPatchAuthorParsesKnownFields(t *testing.T) {
	bio := "Poet"
	svc := new(mockService)
	svc.On("Patch", mock.Anything, authorID, model.AuthorPatch{Bio: &bio}).
		Return(&model.Author{ID: authorID, Name: "X", Bio: bio}, nil)

	w := serve(newRouter(svc), http.MethodPatch, "/api/v1/authors/"+authorID, `{"BIO":"Poet","unknown":1,"website":42}`)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestAuthorErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(*mockService)
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{
			name: "malformed id",
			setup: func(s *mockService) {
				s.On("GetByID", mock.Anything, "not-a-uuid").Return(nil, model.ErrAuthorNotFound)
			},
			method: http.MethodGet,
			path:   "/api/v1/authors/not-a-uuid",
			status: http.StatusNotFound,
			code:   "NOT_FOUND",
		},
		{
			name: "not found",
			setup: func(s *mockService) {
				s.On("GetByID", mock.Anything, authorID).Return(nil, model.ErrAuthorNotFound)
			},
			method: http.MethodGet,
			path:   "/api/v1/authors/" + authorID,
			status: http.StatusNotFound,
			code:   "NOT_FOUND",
		},
		{
			name: "validation",
			setup: func(s *mockService) {
				s.On("Create", mock.Anything, mock.Anything).
					Return(nil, catalog.NewValidationError(errors.New("name: cannot be blank")))
			},
			method: http.MethodPost,
			path:   "/api/v1/authors",
			body:   `{}`,
			status: http.StatusBadRequest,
			code:   "VALIDATION_FAILED",
		},
		{
			name: "store failure",
			setup: func(s *mockService) {
				s.On("Delete", mock.Anything, authorID).Return(errors.New("connection reset"))
			},
			method: http.MethodDelete,
			path:   "/api/v1/authors/" + authorID,
			status: http.StatusInternalServerError,
			code:   "INTERNAL_SERVER_ERROR",
		},
		{
			name:   "patch body not an object",
			setup:  func(*mockService) {},
			method: http.MethodPatch,
			path:   "/api/v1/authors/" + authorID,
			body:   `[1,2]`,
			status: http.StatusBadRequest,
			code:   "BAD_REQUEST",
		},
		{
			name: "page size too large",
			setup: func(s *mockService) {
				s.On("List", mock.Anything, model.AuthorFilter{}, 1, 500).
					Return(nil, catalog.ValidatePage(1, 500))
			},
			method: http.MethodGet,
			path:   "/api/v1/authors?pageSize=500",
			status: http.StatusBadRequest,
			code:   "VALIDATION_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			tt.setup(svc)

			w := serve(newRouter(svc), tt.method, tt.path, tt.body)

			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"code":"`+tt.code+`"`)
		})
	}
}

func TestDeleteAuthorNoContent(t *testing.T) {
	svc := new(mockService)
	svc.On("Delete", mock.Anything, authorID).Return(nil)

	w := serve(newRouter(svc), http.MethodDelete, "/api/v1/authors/"+authorID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}
