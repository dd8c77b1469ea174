// Package httpapi exposes the auth and roster services over an authenticated
// HTTP/JSON API. It is a thin translation layer: bind request, call service,
// map errors to statuses.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"facultydesk/internal/logging"
	"facultydesk/internal/server/models"
)

// UserAPI is the slice of UserService the gateway needs.
type UserAPI interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	VerifyToken(token string) (string, error)
}

// RosterAPI is the slice of RosterService the gateway needs.
type RosterAPI interface {
	ListFaculty(ctx context.Context, userID string) ([]models.FacultyRecord, error)
	ListVacancies(ctx context.Context, userID string) ([]models.VacancyRecord, error)
	AddFaculty(ctx context.Context, userID string, rec *models.FacultyRecord) (*models.FacultyRecord, error)
	AddVacancy(ctx context.Context, userID string, rec *models.VacancyRecord) (*models.VacancyRecord, error)
	Apply(ctx context.Context, userID string, vacancyID string, candidate *models.FacultyRecord) (*models.UserSnapshot, error)
}

type Server struct {
	address string
	logger  logging.Logger
	users   UserAPI
	roster  RosterAPI
	engine  *gin.Engine
}

func NewServer(address string, l logging.Logger, users UserAPI, roster RosterAPI) *Server {
	s := &Server{
		address: address,
		logger:  l.With("module", "httpapi"),
		users:   users,
		roster:  roster,
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/ping", s.ping)

	authGroup := engine.Group("/auth")
	{
		authGroup.POST("/signup", s.signup)
		authGroup.POST("/login", s.login)
	}

	facultyGroup := engine.Group("/faculty", s.authRequired())
	{
		facultyGroup.GET("/faculties", s.listFaculties)
		facultyGroup.POST("/faculties", s.addFaculty)
		facultyGroup.GET("/vacancy", s.listVacancies)
		facultyGroup.POST("/vacancy", s.addVacancy)
		facultyGroup.POST("/myapply", s.apply)
	}

	s.engine = engine
	return s
}

// Handler exposes the routing tree; used by tests and by Run.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.engine,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *Server) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
