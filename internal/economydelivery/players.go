package economydelivery

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/playforge/economy/internal/identity"
	"github.com/playforge/economy/pkg/errorspkg"
	"github.com/playforge/economy/pkg/web"
)

// PlayerHandler resolves display names for callers that do not track uuids.
type PlayerHandler struct {
	resolver identity.Resolver
}

// NewPlayerHandler returns player handler.
func NewPlayerHandler(r identity.Resolver) PlayerHandler {
	return PlayerHandler{resolver: r}
}

type playerData struct {
	Name string `json:"name"`
	UUID string `json:"uuid"`
}

type playerURI struct {
	Name string `uri:"name" binding:"required"`
}

// Get handles http request to resolve a display name to a player uuid.
func (h *PlayerHandler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri playerURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	id, err := h.resolver.UUIDByName(ctx, uri.Name)
	if err != nil {
		l.Info().Err(err).Send()

		if errors.Is(err, identity.ErrPlayerNotFound) {
			gctx.JSON(http.StatusNotFound, web.Response{Error: err.Error()})
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Response{Error: errorspkg.ErrInternal.Error()})

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: playerData{Name: uri.Name, UUID: id}})
}
