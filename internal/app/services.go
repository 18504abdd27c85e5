package app

import (
	"pet-marketplace/internal/adapters/capabilities/orgdirectory"
	"pet-marketplace/internal/adapters/capabilities/userroles"
	"pet-marketplace/internal/authz"
	"pet-marketplace/internal/domain/certifications"
	"pet-marketplace/internal/domain/clubs"
	"pet-marketplace/internal/domain/competitions"
	"pet-marketplace/internal/domain/courses"
	"pet-marketplace/internal/domain/images"
	"pet-marketplace/internal/domain/kennels"
	"pet-marketplace/internal/domain/matches"
	"pet-marketplace/internal/domain/messages"
	"pet-marketplace/internal/domain/paperwork"
	"pet-marketplace/internal/domain/pets"
	"pet-marketplace/internal/domain/users"
	"pet-marketplace/internal/platform/logger"
	"pet-marketplace/internal/ports/auth"
)

type Deps struct {
	Issuer      auth.TokenIssuer // nil en modo dev
	AdminEmails []string
	Broadcaster messages.Broadcaster
	Log         logger.Logger

	// UserOptions extra (p.ej. WithHashCost en tests).
	UserOptions []users.Option
}

type Services struct {
	Rules *authz.RuleSet

	Users          *users.Service
	Clubs          *clubs.Service
	Kennels        *kennels.Service
	Pets           *pets.Service
	Courses        *courses.Service
	Competitions   *competitions.Service
	Certifications *certifications.Service
	Paperwork      *paperwork.Service
	Matches        *matches.Service
	Messages       *messages.Service
	Images         *images.Service
}

// NewServices arma el grafo de services. El directorio de orgs lee los stores
// directo para que el RuleSet no dependa de ningún service.
func NewServices(st Stores, d Deps) *Services {
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	bus := d.Broadcaster
	if bus == nil {
		bus = nopBroadcaster{}
	}

	roles := userroles.NewResolver(st.Users)
	dir := orgdirectory.New(st.Clubs, st.Kennels, roles)
	rules := authz.NewRuleSet(dir)

	userOpts := append([]users.Option{users.WithAdminEmails(d.AdminEmails)}, d.UserOptions...)
	usersSvc := users.NewService(st.Users, d.Issuer, rules, userOpts...)
	petsSvc := pets.NewService(st.Pets, rules, dir)
	coursesSvc := courses.NewService(st.Courses, rules, dir, petsSvc)
	matchesSvc := matches.NewService(st.Matches, rules, usersSvc, roles, petsSvc)

	return &Services{
		Rules:          rules,
		Users:          usersSvc,
		Clubs:          clubs.NewService(st.Clubs, rules),
		Kennels:        kennels.NewService(st.Kennels, rules),
		Pets:           petsSvc,
		Courses:        coursesSvc,
		Competitions:   competitions.NewService(st.Competitions, rules, dir, petsSvc, usersSvc),
		Certifications: certifications.NewService(st.Certifications, rules, coursesSvc, petsSvc),
		Paperwork:      paperwork.NewService(st.Paperwork, rules),
		Matches:        matchesSvc,
		Messages:       messages.NewService(st.Messages, matchesSvc, usersSvc, bus, log.With(map[string]any{"module": "messages"})),
		Images:         images.NewService(st.Images, petsSvc),
	}
}
