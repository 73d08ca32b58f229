package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shinyyama/spool-backend/internal/config"
	"github.com/shinyyama/spool-backend/internal/handler"
	appmw "github.com/shinyyama/spool-backend/internal/middleware"
	"github.com/shinyyama/spool-backend/internal/repository"
	"github.com/shinyyama/spool-backend/internal/service"
)

type Server struct {
	e     *echo.Echo
	sha   string
	build string
}

// New wires the catalog, services and routes. mirror may be nil.
func New(cfg *config.Config, mirror service.CatalogMirror) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(appmw.RequestID())
	e.Use(middleware.Logger())
	e.Use(appmw.CORS(cfg.AllowOrigins))
	e.Use(middleware.BodyLimit(cfg.MaxUploadSize))

	spoolRepo := repository.NewFileSpoolRepository(cfg.RepoRoot, cfg.CatalogRoot(), cfg.LockRoot())
	spoolSvc := service.NewSpoolService(spoolRepo, mirror)
	spoolHandler := handler.NewSpoolHandler(spoolSvc)

	analysisHandler := handler.NewAnalysisHandler(service.NewPlaceholderAnalysisService())

	s := &Server{e: e, sha: cfg.GitSHA, build: cfg.BuildTime}

	e.GET("/health", s.health)
	e.POST("/contrib/spool", spoolHandler.Contribute)
	e.POST("/analyze/spool-image", analysisHandler.AnalyzeImage)
	e.GET("/spools", spoolHandler.List)
	e.GET("/spools/:id", spoolHandler.Get)

	return s
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":     "ok",
		"git_sha":    s.sha,
		"build_time": s.build,
	})
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}
