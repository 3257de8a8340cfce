package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dom/todo-api/internal/api/middleware"
	"github.com/dom/todo-api/internal/domain"
	"github.com/dom/todo-api/internal/service"
	"github.com/go-chi/chi/v5"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

type TaskResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	OwnerID     uint   `json:"ownerId"`
}

func toTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		OwnerID:     task.OwnerID,
	}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "missing or invalid token")
		return
	}

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	task, err := h.taskService.Create(r.Context(), ownerID, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyTitle) {
			writeError(w, http.StatusBadRequest, "invalid_input", "title is required")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, toTaskResponse(task))
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, domain.TaskFilterAll)
}

func (h *TaskHandler) ListCompleted(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, domain.TaskFilterCompleted)
}

func (h *TaskHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, domain.TaskFilterPending)
}

func (h *TaskHandler) list(w http.ResponseWriter, r *http.Request, filter domain.TaskFilter) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "missing or invalid token")
		return
	}

	tasks, err := h.taskService.List(r.Context(), ownerID, filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	resp := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		resp = append(resp, toTaskResponse(task))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "missing or invalid token")
		return
	}

	taskID, err := parseTaskID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "task not found")
		return
	}

	task, err := h.taskService.Get(r.Context(), ownerID, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "task not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "missing or invalid token")
		return
	}

	taskID, err := parseTaskID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "task not found")
		return
	}

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	task, err := h.taskService.Update(r.Context(), ownerID, taskID, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTaskNotFound):
			writeError(w, http.StatusNotFound, "not_found", "task not found")
		case errors.Is(err, domain.ErrEmptyTitle):
			writeError(w, http.StatusBadRequest, "invalid_input", "title must not be empty")
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "missing or invalid token")
		return
	}

	taskID, err := parseTaskID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "task not found")
		return
	}

	if err := h.taskService.Delete(r.Context(), ownerID, taskID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "task not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "task deleted"})
}

func parseTaskID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
