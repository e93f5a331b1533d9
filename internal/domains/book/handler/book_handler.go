package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/internal/domains/book/service"
	"bookstore-catalog/internal/shared/request"
	"bookstore-catalog/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	service  service.ServiceInterface
	basePath string
}

// NewBookHandler builds the handler; basePath prefixes Location headers (e.g. "/api/v1/books").
func NewBookHandler(svc service.ServiceInterface, basePath string) *BookHandler {
	return &BookHandler{service: svc, basePath: basePath}
}

// ════════════════════════════════════════════════════════════════
// READS
// ════════════════════════════════════════════════════════════════

// ListBooks handles GET /books?genre=&author=&page=&pageSize=
func (h *BookHandler) ListBooks(c *gin.Context) {
	page, pageSize, ok := request.Paging(c)
	if !ok {
		return
	}
	filter := model.BookFilter{Genre: c.Query("genre"), Author: c.Query("author")}

	books, err := h.service.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		response.HandleError(c, err, model.ErrBookNotFound)
		return
	}
	c.JSON(http.StatusOK, books)
}

// GetBook handles GET /books/:id
func (h *BookHandler) GetBook(c *gin.Context) {
	id := c.Param("id")

	book, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err, model.ErrBookNotFound)
		return
	}
	c.JSON(http.StatusOK, book)
}

// SearchBooks handles GET /books/search?query=
func (h *BookHandler) SearchBooks(c *gin.Context) {
	books, err := h.service.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		response.HandleError(c, err, model.ErrBookNotFound)
		return
	}
	c.JSON(http.StatusOK, books)
}

// ExportBooks handles GET /books/export and streams an .xlsx of one list page.
func (h *BookHandler) ExportBooks(c *gin.Context) {
	page, pageSize, ok := request.Paging(c)
	if !ok {
		return
	}
	filter := model.BookFilter{Genre: c.Query("genre"), Author: c.Query("author")}

	f, err := service.ExportToExcel(c.Request.Context(), h.service, filter, page, pageSize)
	if err != nil {
		response.HandleError(c, err, model.ErrBookNotFound)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="books-page-%d.xlsx"`, page))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

// ════════════════════════════════════════════════════════════════
// WRITES
// ════════════════════════════════════════════════════════════════

// CreateBook handles POST /books
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req model.Book
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	book, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.HandleError(c, err, model.ErrBookNotFound)
		return
	}

	c.Header("Location", h.basePath+"/"+book.ID)
	c.JSON(http.StatusCreated, book)
}

// UpdateBook handles PUT /books/:id (full replace)
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id := c.Param("id")

	var req model.Book
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	book, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.HandleError(c, err, model.ErrBookNotFound)
		return
	}
	c.JSON(http.StatusOK, book)
}

// PatchBook handles PATCH /books/:id with a JSON object of field -> value.
func (h *BookHandler) PatchBook(c *gin.Context) {
	id := c.Param("id")

	var fields map[string]any
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		response.BadRequest(c, "request body must be a JSON object")
		return
	}

	book, err := h.service.Patch(c.Request.Context(), id, model.ParseBookPatch(fields))
	if err != nil {
		response.HandleError(c, err, model.ErrBookNotFound)
		return
	}
	c.JSON(http.StatusOK, book)
}

// DeleteBook handles DELETE /books/:id
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.HandleError(c, err, model.ErrBookNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
