package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/meetup-api/internal/interface/http"
	"github.com/oksasatya/meetup-api/internal/interface/middleware"
	"github.com/oksasatya/meetup-api/pkg/helpers"
)

// MeetupModule wires the meetup surface.
// Public: GET /api/meetups, GET /api/meetups/:id
// Protected: create, join, leave, delete
type MeetupModule struct {
	Handler *handlers.MeetupHandler
	JWT     *helpers.JWTManager
}

func NewMeetupModule(h *handlers.MeetupHandler, jwt *helpers.JWTManager) *MeetupModule {
	return &MeetupModule{Handler: h, JWT: jwt}
}

func (m *MeetupModule) Register(rg *gin.RouterGroup) {
	rg.GET("/meetups", m.Handler.List)
	rg.GET("/meetups/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/meetups", m.Handler.Create)
		auth.POST("/meetups/:id/join", m.Handler.Join)
		auth.DELETE("/meetups/:id/join", m.Handler.Leave)
		auth.DELETE("/meetups/:id", m.Handler.Delete)
	}
}
