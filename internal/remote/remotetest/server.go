package remotetest

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"github.com/hammamikhairi/ottoshelf/internal/domain"
	"github.com/hammamikhairi/ottoshelf/internal/logger"
)

// Path is the collection's mount point on the test server.
const Path = "/api"

type record struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Ingredients string `json:"ingredients"`
	Steps       string `json:"steps"`
	Cuisine     string `json:"cuisine"`
}

type body struct {
	Name        string `json:"name"`
	Ingredients string `json:"ingredients"`
	Steps       string `json:"steps"`
	Cuisine     string `json:"cuisine"`
}

func toRecord(r domain.Recipe) record {
	return record{ID: r.ID, Name: r.Name, Ingredients: r.Ingredients, Steps: r.Steps, Cuisine: r.Cuisine}
}

// Server is a running fake collection endpoint.
type Server struct {
	Store *MemoryStore

	srv      *httptest.Server
	failing  atomic.Bool
	requests atomic.Int64
}

// NewServer starts a server over store. Call Close when done.
func NewServer(store *MemoryStore, log *logger.Logger) *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{Store: store}
	r := gin.New()
	r.Use(s.count, s.maybeFail)

	api := r.Group(Path)
	api.GET("", s.list)
	api.POST("", s.create)
	api.PUT("/:id", s.update)
	api.DELETE("/:id", s.remove)

	s.srv = httptest.NewServer(r)
	log.Debug("remotetest: listening on %s", s.srv.URL)
	return s
}

// URL returns the collection's base URL.
func (s *Server) URL() string { return s.srv.URL + Path }

// Close shuts the server down.
func (s *Server) Close() { s.srv.Close() }

// SetFailing makes every subsequent request answer 500.
func (s *Server) SetFailing(fail bool) { s.failing.Store(fail) }

// Requests returns how many requests have reached the server.
func (s *Server) Requests() int64 { return s.requests.Load() }

func (s *Server) count(c *gin.Context) {
	s.requests.Add(1)
	c.Next()
}

func (s *Server) maybeFail(c *gin.Context) {
	if s.failing.Load() {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "unavailable"})
		return
	}
	c.Next()
}

func (s *Server) list(c *gin.Context) {
	items := s.Store.List()
	out := make([]record, 0, len(items))
	for _, r := range items {
		out = append(out, toRecord(r))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) create(c *gin.Context) {
	var b body
	if err := c.ShouldBindJSON(&b); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r, err := s.Store.Create(domain.Draft(b))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, toRecord(r))
}

func (s *Server) update(c *gin.Context) {
	var b body
	if err := c.ShouldBindJSON(&b); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r, err := s.Store.Update(c.Param("id"), domain.Draft(b))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toRecord(r))
}

func (s *Server) remove(c *gin.Context) {
	r, err := s.Store.Delete(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toRecord(r))
}

func writeErr(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
