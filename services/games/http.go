package games

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nvbf/olympic-feed/pkg/viewstate"
	olympics "github.com/nvbf/olympic-feed/repos/olympics"
)

// RevealStep is how many upcoming and completed events one "show more" adds.
const RevealStep = 4

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Games is the feed the HTTP handler serves.
type Games interface {
	Now() time.Time
	Aggregate(ctx context.Context, ref time.Time) (*Feed, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Games

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.GET("/feed", h.feedHandler)
	r.GET("/counts", h.countsHandler)
	r.GET("/live", h.sectionHandler(bucketLive))
	r.GET("/upcoming", h.sectionHandler(bucketUpcoming))
	r.GET("/completed", h.sectionHandler(bucketCompleted))
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) feedHandler(c *gin.Context) {
	reveal, err := parseReveal(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	feed, ok := h.aggregate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, NewFeedResponse(feed, reveal))
}

func (h *httpHandler) countsHandler(c *gin.Context) {
	feed, ok := h.aggregate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":   feed.Date,
		"counts": feed.Counts(),
	})
}

func (h *httpHandler) sectionHandler(kind bucket) gin.HandlerFunc {
	return func(c *gin.Context) {
		reveal, err := parseReveal(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		feed, ok := h.aggregate(c)
		if !ok {
			return
		}

		var events []olympics.Event
		switch kind {
		case bucketLive:
			events = feed.Live
			reveal = reveal.All(len(events))
		case bucketUpcoming:
			events = feed.Upcoming
		case bucketCompleted:
			events = feed.Completed
		}
		c.JSON(http.StatusOK, newSection(events, kind, feed.ReferenceTime, reveal))
	}
}

// aggregate runs the feed for the request's reference time and writes the
// error response itself when it fails.
func (h *httpHandler) aggregate(c *gin.Context) (*Feed, bool) {
	ref := h.Service.Now()
	if at := c.Query("at"); at != "" {
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "at must be RFC3339"})
			return nil, false
		}
		ref = parsed.In(ref.Location())
	}

	feed, err := h.Service.Aggregate(c.Request.Context(), ref)
	if err != nil {
		if errors.Is(err, olympics.ErrFetchFailed) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch games. Please try again later."})
			return nil, false
		}
		log.Printf("Could not build feed: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return nil, false
	}
	return feed, true
}

func parseReveal(c *gin.Context) (viewstate.Reveal, error) {
	reveal := viewstate.NewReveal(RevealStep)
	if raw := c.Query("visible"); raw != "" {
		visible, err := strconv.Atoi(raw)
		if err != nil || visible < 0 {
			return reveal, errors.New("visible must be a non-negative integer")
		}
		reveal.Visible = visible
	}
	return reveal, nil
}
