package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	dom "Tugas/internal/domain"
	"Tugas/internal/dto"
	"Tugas/internal/service"

	"github.com/gin-gonic/gin"
)

type TodoHandler struct {
	svc *service.TodoService
}

func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// Create godoc
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        body  body      dto.TodoInput  true  "Todo body"
// @Success      201   {object}  dto.TodoResponse
// @Failure      400   {object}  map[string][]string
// @Failure      409   {object}  map[string]string
// @Router       /todos [post]
func (h *TodoHandler) Create(c *gin.Context) {
	var in dto.TodoInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"message": dto.MsgNoInput})
		return
	}
	if errs := in.Validate(true); errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	var status bool
	if in.Status != nil {
		status = *in.Status
	}
	var priority string
	if in.Prioritas != nil {
		priority = dto.NormalizePriority(*in.Prioritas)
	}
	var deadline *time.Time
	if in.Deadline != nil {
		deadline = in.Deadline.Ptr()
	}

	t, err := h.svc.Create(c.Request.Context(), *in.Judul, status, priority, deadline)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateTitle) {
			c.JSON(http.StatusConflict, gin.H{"message": dto.MsgDuplicateTitle})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, todoToResponse(t))
}

// List godoc
// @Summary      List todos (paginated, id ascending)
// @Tags         todos
// @Produce      json
// @Param        page      query  int  false  "Page (default 1)"
// @Param        per_page  query  int  false  "Page size (default 10, max 100)"
// @Success      200  {object}  dto.ListTodosResponse
// @Failure      500  {object}  map[string]string
// @Router       /todos [get]
func (h *TodoHandler) List(c *gin.Context) {
	page, perPage := dto.ParsePagination(c.Request.URL.Query())
	list, total, err := h.svc.List(c.Request.Context(), page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, listResponse(list, page, perPage, total))
}

// GetByID godoc
// @Summary      Get a todo by ID
// @Tags         todos
// @Produce      json
// @Param        id   path      int  true  "Todo ID"
// @Success      200  {object}  dto.TodoResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /todos/{id} [get]
func (h *TodoHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": dto.MsgTodoNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, todoToResponse(t))
}

// Update godoc
// @Summary      Update a todo (partial merge, PUT and PATCH behave alike)
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        id    path      int  true  "Todo ID"
// @Param        body  body      dto.TodoInput  true  "Fields to change"
// @Success      200   {object}  dto.TodoResponse
// @Failure      400   {object}  map[string][]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /todos/{id} [patch]
func (h *TodoHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in dto.TodoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": dto.MsgNoUpdateData})
		return
	}
	if in.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"message": dto.MsgNoUpdateData})
		return
	}
	if errs := in.Validate(false); errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	t, err := h.svc.Update(c.Request.Context(), id, in.Patch())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": dto.MsgTodoNotFound})
		case errors.Is(err, service.ErrDuplicateTitle):
			c.JSON(http.StatusConflict, gin.H{"message": dto.MsgDuplicateTitle})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, todoToResponse(t))
}

// Delete godoc
// @Summary      Delete a todo
// @Tags         todos
// @Param        id   path  int  true  "Todo ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /todos/{id} [delete]
func (h *TodoHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": dto.MsgTodoNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Complete godoc
// @Summary      Mark a todo as done
// @Tags         todos
// @Produce      json
// @Param        id   path      int  true  "Todo ID"
// @Success      200  {object}  dto.TodoResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /todos/{id}/complete [post]
func (h *TodoHandler) Complete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.Complete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": dto.MsgTodoNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, todoToResponse(t))
}

// Search godoc
// @Summary      Search todos with filters
// @Tags         todos
// @Produce      json
// @Param        q              query  string  false  "Keyword (title substring, case-insensitive)"
// @Param        prioritas      query  string  false  "High, Medium or Low (case-insensitive)"
// @Param        status         query  string  false  "selesai / belum selesai"
// @Param        deadline       query  string  false  "Exact date YYYY-MM-DD"
// @Param        deadline_from  query  string  false  "Range start YYYY-MM-DD (inclusive)"
// @Param        deadline_to    query  string  false  "Range end YYYY-MM-DD (inclusive)"
// @Param        page           query  int     false  "Page (default 1)"
// @Param        per_page       query  int     false  "Page size (default 10, max 100)"
// @Success      200  {object}  dto.ListTodosResponse
// @Failure      500  {object}  map[string]string
// @Router       /todos/search [get]
func (h *TodoHandler) Search(c *gin.Context) {
	f := dto.TodoFilterFromQuery(c.Request.URL.Query())
	list, total, err := h.svc.Search(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, listResponse(list, f.Page, f.PerPage, total))
}

// Overdue godoc
// @Summary      List overdue todos
// @Tags         todos
// @Produce      json
// @Success      200  {object}  dto.ListTodosResponse
// @Failure      500  {object}  map[string]string
// @Router       /todos/overdue [get]
func (h *TodoHandler) Overdue(c *gin.Context) {
	page, perPage := dto.ParsePagination(c.Request.URL.Query())
	list, total, err := h.svc.Overdue(c.Request.Context(), page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, listResponse(list, page, perPage, total))
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func todoToResponse(t dom.Todo) dto.TodoResponse {
	return dto.TodoResponse{
		ID:        t.ID,
		Judul:     t.Title,
		Status:    t.Status,
		Prioritas: t.Priority,
		Deadline:  dto.NewDate(t.Deadline),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func listResponse(list []dom.Todo, page, perPage int, total int64) dto.ListTodosResponse {
	data := make([]dto.TodoResponse, 0, len(list))
	for _, t := range list {
		data = append(data, todoToResponse(t))
	}
	return dto.ListTodosResponse{
		Success:    true,
		Count:      len(data),
		Data:       data,
		Pagination: dto.NewPagination(page, perPage, total),
	}
}
