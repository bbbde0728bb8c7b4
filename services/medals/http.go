package medals

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nvbf/olympic-feed/pkg/viewstate"
	olympics "github.com/nvbf/olympic-feed/repos/olympics"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

type Medals interface {
	Countries(ctx context.Context) ([]olympics.Country, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Medals

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.GET("/table", h.tableHandler)
	r.GET("/countries", h.countriesHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) tableHandler(c *gin.Context) {
	view := viewstate.NewTableView().WithSearch(c.Query("search"))
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be an integer"})
			return
		}
		view = view.WithPage(page)
	}
	view.Direction = viewstate.ParseSortDirection(c.Query("sort"))

	countries, ok := h.countries(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, Table(countries, view))
}

func (h *httpHandler) countriesHandler(c *gin.Context) {
	countries, ok := h.countries(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"countries": countries, "total": len(countries)})
}

func (h *httpHandler) countries(c *gin.Context) ([]olympics.Country, bool) {
	countries, err := h.Service.Countries(c.Request.Context())
	if err != nil {
		if errors.Is(err, olympics.ErrFetchFailed) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch medal data. Please try again later."})
			return nil, false
		}
		log.Printf("Could not load medal table: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return nil, false
	}
	return countries, true
}
