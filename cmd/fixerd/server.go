// Package fixerd is an HTTP front end for a fixer.DataFixer: POST a
// payload at one schema version and get back the payload migrated to
// another, plus introspection endpoints for the schemas currently
// registered.
package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/basinfx/datafixer/backend/jsonops"
	"github.com/basinfx/datafixer/cmd/fixerd/domain"
	"github.com/basinfx/datafixer/diagnostics"
	"github.com/basinfx/datafixer/fixer"
	"github.com/basinfx/datafixer/ops"
	"github.com/basinfx/datafixer/schema"
	"github.com/basinfx/datafixer/schemadiff"
)

// ServerConfig configures a Server.
type ServerConfig struct {
	GinMode string // "debug", "release", "test"
}

func applyServerDefaults(config *ServerConfig) {
	if config.GinMode == "" {
		config.GinMode = gin.ReleaseMode
	}
}

// Server wraps a gin.Engine around a DataFixer and its schema registry.
type Server struct {
	engine *gin.Engine
	fixer  *fixer.DataFixer[jsonops.Value]
	config *ServerConfig
}

// NewServer builds a Server for the given DataFixer.
func NewServer(f *fixer.DataFixer[jsonops.Value], config ServerConfig) *Server {
	applyServerDefaults(&config)
	gin.SetMode(config.GinMode)

	engine := gin.New()
	engine.Use(gin.Logger())
	engine.Use(gin.Recovery())

	s := &Server{engine: engine, fixer: f, config: &config}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/schemas/:version", s.handleListTypes)
	s.engine.GET("/schemas/:version/:type/openapi", s.handleRenderOpenAPI)
	s.engine.GET("/schemas/diff", s.handleSchemaDiff)
	s.engine.POST("/migrate", s.handleMigrate)
}

// Engine exposes the underlying gin.Engine for tests and for embedding in
// a larger service.
func (s *Server) Engine() *gin.Engine { return s.engine }

// Run starts the HTTP server on the given address.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"current": s.fixer.CurrentVersion(),
	})
}

func (s *Server) handleListTypes(c *gin.Context) {
	v, err := parseVersion(c.Param("version"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sch := s.fixer.Schemas().Lookup(v)
	if sch == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no schema published at or before version %d", v)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"version": sch.Version, "types": sch.TypeReferences()})
}

func (s *Server) handleRenderOpenAPI(c *gin.Context) {
	v, err := parseVersion(c.Param("version"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sch := s.fixer.Schemas().Lookup(v)
	if sch == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no schema published at or before version %d", v)})
		return
	}
	typeRef := schema.TypeReference(c.Param("type"))
	t, ok := sch.Resolve(typeRef)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("type %q is not bound in version %d", typeRef, v)})
		return
	}
	c.JSON(http.StatusOK, schemadiff.RenderOpenAPI(t))
}

// schemaDiffRequest binds the query parameters for a schema diff, using
// gin's struct-tag binding (backed by go-playground/validator) instead of
// manual query-string parsing.
type schemaDiffRequest struct {
	Type string `form:"type" binding:"required"`
	From int    `form:"from" binding:"required"`
	To   int    `form:"to" binding:"required,gtfield=From"`
}

func (s *Server) handleSchemaDiff(c *gin.Context) {
	var req schemaDiffRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	oldSchema := s.fixer.Schemas().Lookup(schema.DataVersion(req.From))
	newSchema := s.fixer.Schemas().Lookup(schema.DataVersion(req.To))
	if oldSchema == nil || newSchema == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "one or both requested versions have no published schema"})
		return
	}

	diff, ok := schemadiff.CompareTypes(schema.TypeReference(req.Type), oldSchema, newSchema)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("type %q is not bound in both versions", req.Type)})
		return
	}
	c.JSON(http.StatusOK, diff)
}

// migrateRequest is the POST /migrate body.
type migrateRequest struct {
	Type string        `json:"type" binding:"required"`
	From int           `json:"from"`
	To   int           `json:"to" binding:"required,gtfield=From"`
	Data jsonops.Value `json:"data" binding:"required"`
	Diag bool          `json:"diagnostics"`
}

type migrateResponse struct {
	Data        jsonops.Value               `json:"data"`
	Diagnostics *diagnostics.MigrationReport `json:"diagnostics,omitempty"`
}

func (s *Server) handleMigrate(c *gin.Context) {
	var req migrateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var rec *diagnostics.Recorder
	ctx := fixer.Context{}
	if req.Diag {
		rec = diagnostics.NewRecorder()
		ctx.Recorder = rec
	}

	d := ops.NewDynamic(jsonops.Ops, req.Data)

	defer func() {
		if r := recover(); r != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprint(r)})
		}
	}()

	migrated := s.fixer.Update(schema.TypeReference(req.Type), d, schema.DataVersion(req.From), schema.DataVersion(req.To), ctx)

	resp := migrateResponse{Data: migrated.Value}
	if rec != nil {
		report := s.fixer.Report(rec)
		resp.Diagnostics = &report
	}
	c.JSON(http.StatusOK, resp)
}

func parseVersion(raw string) (schema.DataVersion, error) {
	var n int
	if _, err := fmt.Sscanf(raw, "%d", &n); err != nil {
		return 0, fmt.Errorf("invalid version %q: must be an integer", raw)
	}
	return schema.DataVersion(n), nil
}

// NewPlayerFixer builds the daemon's default DataFixer: the demo player
// bootstrap at current version 3.
func NewPlayerFixer() *fixer.DataFixer[jsonops.Value] {
	b := fixer.NewBuilder[jsonops.Value](3).Install(domain.Bootstrap{})
	return b.MustBuild()
}
