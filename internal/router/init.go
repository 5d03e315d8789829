package router

import (
	"github.com/oksasatya/meetup-api/internal/application"
	"github.com/oksasatya/meetup-api/internal/container"
	pginfra "github.com/oksasatya/meetup-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/meetup-api/internal/interface/http"
	"github.com/oksasatya/meetup-api/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	meetupRepo := pginfra.NewMeetupRepository(container.GetPGPool())

	authSvc := application.NewAuthService(
		userRepo,
		container.GetJWT(),
		container.GetRabbitPub(),
		logger,
		cfg.MailSendEnabled,
	)
	meetupSvc := application.NewMeetupService(
		meetupRepo,
		userRepo,
		container.GetRedis(),
		logger,
		cfg.MeetupCacheTTL,
	)
	participationSvc := application.NewParticipationService(
		meetupRepo,
		userRepo,
		container.GetRedis(),
		logger,
		cfg.MeetupCacheTTL,
	)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	r.Add(modules.NewMeetupModule(handlers.NewMeetupHandler(meetupSvc, participationSvc, logger), container.GetJWT()))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
