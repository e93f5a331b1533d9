package handler

import (
	"encoding/json"
	"net/http"

	"bookstore-catalog/internal/domains/author/model"
	"bookstore-catalog/internal/domains/author/service"
	"bookstore-catalog/internal/shared/request"
	"bookstore-catalog/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type AuthorHandler struct {
	service  service.ServiceInterface
	basePath string
}

func NewAuthorHandler(svc service.ServiceInterface, basePath string) *AuthorHandler {
	return &AuthorHandler{service: svc, basePath: basePath}
}

// ListAuthors handles GET /authors?nationality=&page=&pageSize=
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	page, pageSize, ok := request.Paging(c)
	if !ok {
		return
	}

	authors, err := h.service.List(c.Request.Context(), model.AuthorFilter{Nationality: c.Query("nationality")}, page, pageSize)
	if err != nil {
		response.HandleError(c, err, model.ErrAuthorNotFound)
		return
	}
	c.JSON(http.StatusOK, authors)
}

// GetAuthor handles GET /authors/:id
func (h *AuthorHandler) GetAuthor(c *gin.Context) {
	id := c.Param("id")

	author, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err, model.ErrAuthorNotFound)
		return
	}
	c.JSON(http.StatusOK, author)
}

// SearchAuthors handles GET /authors/search?query=
func (h *AuthorHandler) SearchAuthors(c *gin.Context) {
	authors, err := h.service.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		response.HandleError(c, err, model.ErrAuthorNotFound)
		return
	}
	c.JSON(http.StatusOK, authors)
}

// CreateAuthor handles POST /authors
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var req model.Author
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	author, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.HandleError(c, err, model.ErrAuthorNotFound)
		return
	}

	c.Header("Location", h.basePath+"/"+author.ID)
	c.JSON(http.StatusCreated, author)
}

// UpdateAuthor handles PUT /authors/:id
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	id := c.Param("id")

	var req model.Author
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	author, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.HandleError(c, err, model.ErrAuthorNotFound)
		return
	}
	c.JSON(http.StatusOK, author)
}

// PatchAuthor handles PATCH /authors/:id
func (h *AuthorHandler) PatchAuthor(c *gin.Context) {
	id := c.Param("id")

	var fields map[string]any
	if err := json.NewDecoder(c.Request.Body).Decode(&fields); err != nil {
		response.BadRequest(c, "request body must be a JSON object")
		return
	}

	author, err := h.service.Patch(c.Request.Context(), id, model.ParseAuthorPatch(fields))
	if err != nil {
		response.HandleError(c, err, model.ErrAuthorNotFound)
		return
	}
	c.JSON(http.StatusOK, author)
}

// DeleteAuthor handles DELETE /authors/:id
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.HandleError(c, err, model.ErrAuthorNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
