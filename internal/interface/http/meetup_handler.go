package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/meetup-api/internal/application"
	"github.com/oksasatya/meetup-api/internal/domain/entity"
	"github.com/oksasatya/meetup-api/internal/interface/middleware"
	"github.com/oksasatya/meetup-api/pkg/response"
	"github.com/oksasatya/meetup-api/pkg/validation"
)

type MeetupHandler struct {
	Svc           *application.MeetupService
	Participation *application.ParticipationService
	Logger        *logrus.Logger
}

func NewMeetupHandler(svc *application.MeetupService, participation *application.ParticipationService, logger *logrus.Logger) *MeetupHandler {
	return &MeetupHandler{Svc: svc, Participation: participation, Logger: logger}
}

type createMeetupRequest struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description"`
	Date            string   `json:"date" binding:"required"`
	Location        string   `json:"location"`
	Host            string   `json:"host" binding:"required"`
	MaxParticipants *int     `json:"max_participants"`
	Categories      []string `json:"categories"`
}

// Accepted timestamp layouts for the meetup date, most specific first.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func meetupJSON(m *entity.Meetup) gin.H {
	return gin.H{
		"id":               m.ID,
		"title":            m.Title,
		"description":      m.Description,
		"date":             m.Date,
		"location":         m.Location,
		"host":             m.Host,
		"max_participants": m.MaxParticipants,
		"participants":     m.Participants,
		"categories":       m.Categories,
		"is_full":          m.IsFull(),
		"created_at":       m.CreatedAt,
		"updated_at":       m.UpdatedAt,
	}
}

// List GET /api/meetups — upcoming meetups ascending by date.
func (h *MeetupHandler) List(c *gin.Context) {
	meetups, err := h.Svc.ListUpcoming(c.Request.Context(), time.Now())
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	out := make([]gin.H, 0, len(meetups))
	for i := range meetups {
		out = append(out, meetupJSON(&meetups[i]))
	}
	response.Success(c, http.StatusOK, out, "upcoming meetups")
}

// Get GET /api/meetups/:id — with participants resolved.
func (h *MeetupHandler) Get(c *gin.Context) {
	m, participants, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	body := meetupJSON(m)
	body["participants"] = participants
	response.Success(c, http.StatusOK, body, "meetup")
}

// Create POST /api/meetups (auth required)
func (h *MeetupHandler) Create(c *gin.Context) {
	var req createMeetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	when, ok := parseDate(req.Date)
	if !ok {
		response.Error[any](c, http.StatusBadRequest, "invalid date format", gin.H{"date": "must be an RFC3339 timestamp"})
		return
	}

	m, err := h.Svc.Create(c.Request.Context(), application.CreateMeetupInput{
		Title:           req.Title,
		Description:     req.Description,
		Date:            when,
		Location:        req.Location,
		Host:            req.Host,
		MaxParticipants: req.MaxParticipants,
		Categories:      req.Categories,
	})
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, meetupJSON(m), "meetup created")
}

// Join POST /api/meetups/:id/join (auth required)
func (h *MeetupHandler) Join(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	m, err := h.Participation.Join(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, meetupJSON(m), "joined")
}

// Leave DELETE /api/meetups/:id/join (auth required)
func (h *MeetupHandler) Leave(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	m, err := h.Participation.Leave(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, meetupJSON(m), "unregistered")
}

// Delete DELETE /api/meetups/:id (auth required)
func (h *MeetupHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "meetup deleted")
}
