package archive

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nvbf/olympic-feed/pkg/auth"
	olympics "github.com/nvbf/olympic-feed/repos/olympics"
	resend "github.com/nvbf/olympic-feed/repos/resend"
	snapshots "github.com/nvbf/olympic-feed/repos/snapshots"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

type Archive interface {
	TakeSnapshot(ctx context.Context, takenBy string) (*snapshots.FeedSnapshot, error)
	Snapshot(ctx context.Context, id string) (*snapshots.FeedSnapshot, error)
	SendDigest(ctx context.Context, email string) (int, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Archive

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.POST("/snapshot", h.takeSnapshotHandler)
	r.GET("/snapshot/:id", h.snapshotHandler)
	r.POST("/digest", h.digestHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (s *httpHandler) takeSnapshotHandler(c *gin.Context) {
	snapshot, err := s.Service.TakeSnapshot(c.Request.Context(), auth.UID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, snapshot)
}

func (s *httpHandler) snapshotHandler(c *gin.Context) {
	snapshot, err := s.Service.Snapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (s *httpHandler) digestHandler(c *gin.Context) {
	var request resend.DigestRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	events, err := s.Service.SendDigest(c.Request.Context(), request.Email)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"result": "Digest sent",
		"email":  request.Email,
		"events": events,
	})
}

func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, snapshots.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "snapshot not found"})
	case errors.Is(err, olympics.ErrFetchFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch games. Please try again later."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	}
	c.Abort()
}
