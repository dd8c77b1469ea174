package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"facultydesk/internal/common"
	"facultydesk/internal/server/models"
)

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if _, err := s.users.Register(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrEmailTaken.Error()})
			return
		}
		s.serverError(c, "signup failed", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrInvalidCredentials.Error()})
			return
		}
		s.serverError(c, "login failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) listFaculties(c *gin.Context) {
	list, err := s.roster.ListFaculty(c.Request.Context(), s.userID(c))
	if err != nil {
		s.rosterError(c, "listing faculties failed", err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (s *Server) listVacancies(c *gin.Context) {
	list, err := s.roster.ListVacancies(c.Request.Context(), s.userID(c))
	if err != nil {
		s.rosterError(c, "listing vacancies failed", err)
		return
	}

	c.JSON(http.StatusOK, list)
}

type facultyRequest struct {
	Name           string    `json:"name" binding:"required"`
	Email          string    `json:"email" binding:"required"`
	Phone          string    `json:"phone" binding:"required"`
	CoverLetter    string    `json:"coverLetter"`
	Position       string    `json:"position" binding:"required"`
	Department     string    `json:"department" binding:"required"`
	Expertise      string    `json:"expertise" binding:"required"`
	JoinDate       time.Time `json:"joinDate" binding:"required"`
	RetirementDate time.Time `json:"retirementDate" binding:"required"`
}

func (r *facultyRequest) record() *models.FacultyRecord {
	return &models.FacultyRecord{
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		CoverLetter:    r.CoverLetter,
		Position:       r.Position,
		Department:     r.Department,
		Expertise:      r.Expertise,
		JoinDate:       r.JoinDate,
		RetirementDate: r.RetirementDate,
	}
}

func (s *Server) addFaculty(c *gin.Context) {
	var req facultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rec, err := s.roster.AddFaculty(c.Request.Context(), s.userID(c), req.record())
	if err != nil {
		s.rosterError(c, "adding faculty record failed", err)
		return
	}

	c.JSON(http.StatusCreated, rec)
}

type vacancyRequest struct {
	Position   string    `json:"position" binding:"required"`
	Department string    `json:"department" binding:"required"`
	Expertise  string    `json:"expertise" binding:"required"`
	Deadline   time.Time `json:"deadline" binding:"required"`
}

func (s *Server) addVacancy(c *gin.Context) {
	var req vacancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rec, err := s.roster.AddVacancy(c.Request.Context(), s.userID(c), &models.VacancyRecord{
		Position:   req.Position,
		Department: req.Department,
		Expertise:  req.Expertise,
		Deadline:   req.Deadline,
	})
	if err != nil {
		s.rosterError(c, "adding vacancy failed", err)
		return
	}

	c.JSON(http.StatusCreated, rec)
}

// applyRequest keeps the field names of the frontend this API replaces:
// jdate/rdate are the join and retirement dates, v_id the consumed vacancy.
type applyRequest struct {
	Name        string    `json:"name" binding:"required"`
	Email       string    `json:"email" binding:"required"`
	Phone       string    `json:"phone" binding:"required"`
	CoverLetter string    `json:"coverLetter"`
	Position    string    `json:"position" binding:"required"`
	Department  string    `json:"department" binding:"required"`
	Expertise   string    `json:"expertise" binding:"required"`
	JoinDate    time.Time `json:"jdate" binding:"required"`
	RetDate     time.Time `json:"rdate" binding:"required"`
	VacancyID   string    `json:"v_id" binding:"required"`
}

func (s *Server) apply(c *gin.Context) {
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	candidate := &models.FacultyRecord{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		CoverLetter:    req.CoverLetter,
		Position:       req.Position,
		Department:     req.Department,
		Expertise:      req.Expertise,
		JoinDate:       req.JoinDate,
		RetirementDate: req.RetDate,
	}

	snap, err := s.roster.Apply(c.Request.Context(), s.userID(c), req.VacancyID, candidate)
	if err != nil {
		s.rosterError(c, "application failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Application submitted and vacancy deleted successfully",
		"user":    snap,
	})
}

// rosterError maps roster failures to statuses: lookups to 404, the rest to 500.
func (s *Server) rosterError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, common.ErrVacancyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": common.ErrVacancyNotFound.Error()})
	default:
		s.serverError(c, msg, err)
	}
}

func (s *Server) serverError(c *gin.Context, msg string, err error) {
	s.logger.Error(c.Request.Context(), msg, "error", err.Error())
	c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
}
