package stats

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	olympics "github.com/nvbf/olympic-feed/repos/olympics"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

type Stats interface {
	Summary(ctx context.Context) (*Summary, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Stats

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.GET("/summary", h.summaryHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (s *httpHandler) summaryHandler(c *gin.Context) {
	summary, err := s.Service.Summary(c.Request.Context())
	if err != nil {
		if errors.Is(err, olympics.ErrFetchFailed) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch stats. Please try again later."})
			c.Abort()
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": summary})
}
