package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"delegate/internal/adapter/http/dto"
	"delegate/internal/adapter/http/mapper"
	"delegate/internal/adapter/http/middleware"
	"delegate/internal/adapter/http/validation"
	"delegate/internal/core/domain"
	"delegate/internal/core/ports"
	"delegate/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	orgID := middleware.GetOrganisationID(c)
	actorID := middleware.GetActorID(c)

	views, err := h.taskService.ListTasks(c.Request.Context(), orgID, actorID)
	if err != nil {
		zap.L().Error("failed to list tasks", zap.Uint64("organisation_id", orgID), zap.Error(err))
		respondError(c, err, apierrors.MsgFailListTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(views))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	view, err := h.taskService.GetTask(
		c.Request.Context(),
		middleware.GetOrganisationID(c),
		middleware.GetActorID(c),
		taskID,
	)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(view))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	input, err := validation.BuildCreateTaskInput(req, middleware.GetOrganisationID(c))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	view, err := h.taskService.CreateTask(c.Request.Context(), middleware.GetActorID(c), input)
	if err != nil {
		zap.L().Error("failed to create task", zap.Error(err))
		respondError(c, err, apierrors.MsgFailCreateTask)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(view))
}

func (h *TaskHandler) CreateSubtask(c *gin.Context) {
	lang := middleware.GetLang(c)

	parentTaskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	input, err := validation.BuildCreateTaskInput(req, middleware.GetOrganisationID(c))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	view, err := h.taskService.CreateSubtask(c.Request.Context(), middleware.GetActorID(c), parentTaskID, input)
	if err != nil {
		zap.L().Error("failed to create subtask", zap.Uint64("parent_task_id", parentTaskID), zap.Error(err))
		respondError(c, err, apierrors.MsgFailCreateTask)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(view))
}

func (h *TaskHandler) AcceptTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req dto.AcceptTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	committedDeadline, err := validation.ParseCommittedDeadline(req.CommittedDeadline)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	view, err := h.taskService.Accept(
		c.Request.Context(),
		middleware.GetOrganisationID(c),
		middleware.GetActorID(c),
		taskID,
		committedDeadline,
	)
	if err != nil {
		respondError(c, err, apierrors.MsgFailApplyAction)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(view))
}

func (h *TaskHandler) RejectTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req dto.RejectTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	view, err := h.taskService.Reject(
		c.Request.Context(),
		middleware.GetOrganisationID(c),
		middleware.GetActorID(c),
		taskID,
		req.Reason,
	)
	if err != nil {
		respondError(c, err, apierrors.MsgFailApplyAction)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(view))
}

func (h *TaskHandler) CompleteTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	view, err := h.taskService.Complete(
		c.Request.Context(),
		middleware.GetOrganisationID(c),
		middleware.GetActorID(c),
		taskID,
	)
	if err != nil {
		respondError(c, err, apierrors.MsgFailApplyAction)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(view))
}

func (h *TaskHandler) EditDeadline(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req dto.EditDeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	deadline, err := validation.ParseDeadline(req.Deadline)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	view, err := h.taskService.EditDeadline(
		c.Request.Context(),
		middleware.GetOrganisationID(c),
		middleware.GetActorID(c),
		taskID,
		deadline,
	)
	if err != nil {
		respondError(c, err, apierrors.MsgFailApplyAction)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(view))
}

func (h *TaskHandler) EditAssignee(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req dto.EditAssigneeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	view, err := h.taskService.EditPersons(
		c.Request.Context(),
		middleware.GetOrganisationID(c),
		middleware.GetActorID(c),
		taskID,
		req.AssigneeID,
	)
	if err != nil {
		respondError(c, err, apierrors.MsgFailApplyAction)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(view))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	err := h.taskService.Delete(
		c.Request.Context(),
		middleware.GetOrganisationID(c),
		middleware.GetActorID(c),
		taskID,
	)
	if err != nil {
		respondError(c, err, apierrors.MsgFailApplyAction)
		return
	}

	c.Status(http.StatusNoContent)
}

func taskIDParam(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || taskID == 0 {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, middleware.GetLang(c)),
		)
		return 0, false
	}
	return taskID, true
}

// respondError maps domain errors onto the API taxonomy: authorization,
// precondition, not-found, conflict, and a logged 500 for the rest.
func respondError(c *gin.Context, err error, fallbackKey string) {
	lang := middleware.GetLang(c)

	switch {
	case errors.Is(err, domain.ErrTaskNotFound), errors.Is(err, domain.ErrOrganisationMismatch):
		c.JSON(http.StatusNotFound, apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang))
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, apierrors.CreateError(http.StatusNotFound, apierrors.MsgUserNotFound, lang))
	case errors.Is(err, domain.ErrActionNotAllowed):
		c.JSON(http.StatusForbidden, apierrors.CreateError(http.StatusForbidden, apierrors.MsgActionNotAllowed, lang))
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrTaskHierarchyCycle):
		c.JSON(http.StatusConflict, apierrors.CreateError(http.StatusConflict, apierrors.MsgInvalidTransition, lang))
	case errors.Is(err, domain.ErrDeadlineRequired):
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgDeadlineRequired, lang))
	default:
		zap.L().Error("task request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierrors.CreateError(http.StatusInternalServerError, fallbackKey, lang))
	}
}
