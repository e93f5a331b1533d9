package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	bookmodel "bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/internal/domains/summary"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const bookID = "6b0f3c4e-2a1d-4e8b-9c7f-5a3d2e1b0c9a"

type books struct{}

func (books) GetByID(_ context.Context, id string) (*bookmodel.Book, error) {
	if id != bookID {
		return nil, bookmodel.ErrBookNotFound
	}
	return &bookmodel.Book{ID: bookID, Title: "Dune", Author: "Frank Herbert"}, nil
}

type failing struct{}

func (failing) GenerateSummary(context.Context, string, string, string) (string, error) {
	return "", errors.New("boom")
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	reg := summary.NewRegistry(summary.ProviderTemplate)
	reg.Register(summary.ProviderTemplate, summary.TemplateGenerator{})
	reg.Register("failing", failing{})
	h := NewSummaryHandler(summary.NewService(books{}, reg))

	r := gin.New()
	r.POST("/api/v1/books/:id/generate-summary", h.GenerateSummary)
	r.GET("/api/v1/summary/providers", h.ListProviders)
	return r
}

func TestGenerateSummaryStatuses(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"ok", "/api/v1/books/" + bookID + "/generate-summary", http.StatusOK},
		{"explicit provider", "/api/v1/books/" + bookID + "/generate-summary?provider=template", http.StatusOK},
		{"missing book", "/api/v1/books/00000000-0000-0000-0000-000000000000/generate-summary", http.StatusNotFound},
		{"malformed id", "/api/v1/books/xyz/generate-summary", http.StatusNotFound},
		{"unknown provider", "/api/v1/books/" + bookID + "/generate-summary?provider=gemini", http.StatusBadRequest},
		{"provider failure", "/api/v1/books/" + bookID + "/generate-summary?provider=failing", http.StatusBadGateway},
	}

	r := newRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tt.path, nil))
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestGenerateSummaryBody(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/books/"+bookID+"/generate-summary", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"bookId": "`+bookID+`",
		"title": "Dune",
		"author": "Frank Herbert",
		"provider": "template",
		"aiGeneratedSummary": "\"Dune\" by Frank Herbert. A title worth adding to your reading list."
	}`, w.Body.String())
}

func TestListProviders(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/summary/providers", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"providers":["failing","template"],"default":"template"}`, w.Body.String())
}
