package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"delegate/pkg/apierrors"
)

const (
	actorHeader        = "X-Actor-ID"
	organisationHeader = "X-Organisation-ID"

	actorKey        = "actor_id"
	organisationKey = "organisation_id"
)

// ActorMiddleware reads the acting user and organisation established by the
// upstream auth gateway. Session resolution itself happens there; requests
// arriving without the headers are rejected.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID, actorErr := strconv.ParseUint(c.GetHeader(actorHeader), 10, 64)
		orgID, orgErr := strconv.ParseUint(c.GetHeader(organisationHeader), 10, 64)
		if actorErr != nil || actorID == 0 || orgErr != nil || orgID == 0 {
			lang := GetLang(c)
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgMissingActor, lang),
			)
			return
		}

		c.Set(actorKey, actorID)
		c.Set(organisationKey, orgID)
		c.Next()
	}
}

func GetActorID(c *gin.Context) uint64 {
	return getUint64(c, actorKey)
}

func GetOrganisationID(c *gin.Context) uint64 {
	return getUint64(c, organisationKey)
}

func getUint64(c *gin.Context, key string) uint64 {
	if value, exists := c.Get(key); exists {
		if id, ok := value.(uint64); ok {
			return id
		}
	}
	return 0
}
