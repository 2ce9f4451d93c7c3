package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"delegate/internal/adapter/http/mapper"
	"delegate/internal/adapter/http/middleware"
	"delegate/internal/core/ports"
	"delegate/pkg/apierrors"
)

type OrgHandler struct {
	orgService ports.OrgService
}

func NewOrgHandler(orgService ports.OrgService) *OrgHandler {
	return &OrgHandler{orgService: orgService}
}

// ListVisibleUsers returns the members the actor may see, filtered by
// hierarchy rank. An empty list is the normal answer for an actor outside
// the ranked forest.
func (h *OrgHandler) ListVisibleUsers(c *gin.Context) {
	orgID := middleware.GetOrganisationID(c)
	actorID := middleware.GetActorID(c)

	users, err := h.orgService.VisibleUsers(c.Request.Context(), orgID, actorID)
	if err != nil {
		zap.L().Error("failed to list visible users",
			zap.Uint64("organisation_id", orgID), zap.Uint64("actor_id", actorID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListUsers, middleware.GetLang(c)),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToOrgUserItems(users))
}
