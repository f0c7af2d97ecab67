package mazeapi

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/simplemaze/api/auth"
	"github.com/beka-birhanu/simplemaze/domain"
	"github.com/beka-birhanu/simplemaze/maze"
	"github.com/beka-birhanu/simplemaze/service"
	"github.com/beka-birhanu/simplemaze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxImportBytes = 8 << 20

// MazeController handles HTTP requests on mazes.
type MazeController struct {
	mazes  i.MazeManager
	logger i.Logger
}

// NewMazeController initializes a MazeController.
func NewMazeController(m i.MazeManager, logger i.Logger) (*MazeController, error) {
	if m == nil || logger == nil {
		return nil, errors.New("maze controller: missing dependency")
	}
	return &MazeController{
		mazes:  m,
		logger: logger,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.create)
		mazes.POST("/import", mc.importMaze)
		mazes.GET("/:ID", mc.byID)
		mazes.GET("/:ID/route", mc.route)
		mazes.GET("/:ID/export", mc.export)
	}
	route.GET("/shared/:token/export", mc.exportShared)
}

// RegisterProtected registers routes that require an owner token.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.DELETE("/:ID", mc.delete)
		mazes.POST("/:ID/share", mc.share)
	}
}

// create handles maze generation requests.
func (mc *MazeController) create(ctx *gin.Context) {
	var request CreateMazeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, ownerToken, err := mc.mazes.Create(ctx, i.CreateMazeRequest{
		Width:       request.Width,
		Height:      request.Height,
		EntranceRow: request.EntranceRow,
		ExitRow:     request.ExitRow,
		Algorithm:   request.Algorithm,
	})
	if err != nil {
		mc.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, &CreatedMazeResponse{
		MazeResponse: toMazeResponse(record),
		OwnerToken:   ownerToken,
	})
}

// importMaze stores a maze sent in its text encoding.
func (mc *MazeController) importMaze(ctx *gin.Context) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxImportBytes)
	body, err := ctx.GetRawData()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "could not read maze data"})
		return
	}

	record, ownerToken, err := mc.mazes.Import(ctx, string(body))
	if err != nil {
		mc.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, &CreatedMazeResponse{
		MazeResponse: toMazeResponse(record),
		OwnerToken:   ownerToken,
	})
}

func (mc *MazeController) byID(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	record, err := mc.mazes.ByID(ctx, id)
	if err != nil {
		mc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toMazeResponse(record))
}

// route returns the solved path of a maze.
func (mc *MazeController) route(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	route, err := mc.mazes.Route(ctx, id)
	if err != nil {
		mc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toRouteResponse(route))
}

func (mc *MazeController) export(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	data, err := mc.mazes.Export(ctx, id)
	if err != nil {
		mc.fail(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(data))
}

func (mc *MazeController) exportShared(ctx *gin.Context) {
	data, err := mc.mazes.ExportShared(ctx, ctx.Params.ByName("token"))
	if err != nil {
		mc.fail(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(data))
}

// share issues a read-only token for an owned maze.
func (mc *MazeController) share(ctx *gin.Context) {
	id, ok := ownedID(ctx)
	if !ok {
		return
	}

	shareToken, err := mc.mazes.Share(ctx, id)
	if err != nil {
		mc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, &ShareResponse{ShareToken: shareToken})
}

func (mc *MazeController) delete(ctx *gin.Context) {
	id, ok := ownedID(ctx)
	if !ok {
		return
	}

	if err := mc.mazes.Delete(ctx, id); err != nil {
		mc.fail(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// fail maps service errors to HTTP statuses.
func (mc *MazeController) fail(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, maze.ErrInvalidParameter),
		errors.Is(err, maze.ErrUnknownAlgorithm),
		errors.Is(err, maze.ErrInvalidFormat):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrMazeNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, maze.ErrRouteNotFound):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		mc.logger.Error("Handling " + ctx.Request.Method + " " + ctx.FullPath() + ": " + err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func pathID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return uuid.Nil, false
	}
	return id, true
}

// ownedID returns the path ID when the bearer token was issued for that maze.
func ownedID(ctx *gin.Context) (uuid.UUID, bool) {
	id, ok := pathID(ctx)
	if !ok {
		return uuid.Nil, false
	}

	granted, _ := ctx.Get(auth.ContextMazeID)
	if grantedID, ok := granted.(uuid.UUID); !ok || grantedID != id {
		ctx.JSON(http.StatusForbidden, gin.H{"error": service.ErrForbidden.Error()})
		return uuid.Nil, false
	}
	return id, true
}
