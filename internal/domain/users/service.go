package users

import (
	"context"
	"errors"
	"net/mail"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"pet-marketplace/internal/authz"
	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/ports/auth"
)

const minPasswordLen = 8

type Service struct {
	repo   Repository
	issuer auth.TokenIssuer // nil en modo dev
	rules  *authz.RuleSet
	now    func() time.Time

	adminEmails []string
	hashCost    int
}

type Option func(*Service)

// WithAdminEmails: los registros con estos emails reciben además el rol admin.
func WithAdminEmails(emails []string) Option {
	return func(s *Service) {
		for _, e := range emails {
			if e = normalizeEmail(e); e != "" {
				s.adminEmails = append(s.adminEmails, e)
			}
		}
	}
}

// WithHashCost baja el costo de bcrypt (tests).
func WithHashCost(cost int) Option {
	return func(s *Service) { s.hashCost = cost }
}

func NewService(repo Repository, issuer auth.TokenIssuer, rules *authz.RuleSet, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		issuer:   issuer,
		rules:    rules,
		now:      time.Now,
		hashCost: bcrypt.DefaultCost,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

type RegisterInput struct {
	Email       string
	Password    string
	Role        string
	DisplayName string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	email := normalizeEmail(in.Email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return User{}, apperr.Validation("invalid email")
	}
	if len(in.Password) < minPasswordLen {
		return User{}, apperr.Validation("password too short").WithDetails("minimum 8 characters")
	}
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = RoleOwner
	}
	if !slices.Contains(SelfServiceRoles, role) {
		return User{}, apperr.Validation("invalid role").WithDetails("expected owner, sitter or kennel")
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, apperr.Conflict("Email already registered")
	} else if !apperr.IsRecordNotFound(err) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return User{}, err
	}

	now := s.now()
	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}
	displayName := strings.TrimSpace(in.DisplayName)
	if displayName == "" {
		displayName = strings.SplitN(email, "@", 2)[0]
	}
	p := Profile{UserID: u.ID, DisplayName: displayName, UpdatedAt: now}

	if err := s.repo.Create(ctx, u, UserRole{UserID: u.ID, Role: role, CreatedAt: now}, p); err != nil {
		if errors.Is(err, apperr.ErrDuplicateKey) {
			return User{}, apperr.Conflict("Email already registered")
		}
		return User{}, err
	}

	if slices.Contains(s.adminEmails, email) {
		// un segundo después para que el rol primario siga siendo el elegido
		if err := s.repo.AddRole(ctx, UserRole{UserID: u.ID, Role: RoleAdmin, CreatedAt: now.Add(time.Second)}); err != nil {
			return User{}, err
		}
	}

	return s.Get(ctx, u.ID)
}

// Session es la respuesta del login.
type Session struct {
	Token     string    `json:"token,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitzero"`
	User      User      `json:"user"`
}

func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return Session{}, apperr.Validation("email and password are required")
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if apperr.IsRecordNotFound(err) {
		return Session{}, apperr.Unauthenticated("invalid credentials")
	}
	if err != nil {
		return Session{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return Session{}, apperr.Unauthenticated("invalid credentials")
	}

	u, err = s.Get(ctx, u.ID)
	if err != nil {
		return Session{}, err
	}
	out := Session{User: u}
	if s.issuer == nil {
		// modo dev: el cliente usa X-Debug-User-ID
		return out, nil
	}
	tok, err := s.issuer.Issue(ctx, auth.Claims{UserID: u.ID, Email: u.Email, Role: u.PrimaryRole()})
	if err != nil {
		return Session{}, err
	}
	out.Token = tok.Token
	out.ExpiresAt = tok.ExpiresAt
	return out, nil
}

// Get devuelve el usuario con roles y perfil.
func (s *Service) Get(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, apperr.Validation("user id is required")
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, apperr.MapNotFound(err, "User not found")
	}
	roles, err := s.repo.ListRoles(ctx, id)
	if err != nil {
		return User{}, err
	}
	u.Roles = roleNames(roles)

	p, err := s.repo.GetProfile(ctx, id)
	switch {
	case err == nil:
		u.Profile = &p
	case !apperr.IsRecordNotFound(err):
		return User{}, err
	}
	return u, nil
}

// Exists devuelve NotFound si el usuario no existe.
func (s *Service) Exists(ctx context.Context, id string) error {
	_, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	return apperr.MapNotFound(err, "User not found")
}

func (s *Service) List(ctx context.Context, role string) ([]User, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	items, err := s.repo.List(ctx, role)
	if err != nil {
		return nil, err
	}
	for i := range items {
		roles, err := s.repo.ListRoles(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Roles = roleNames(roles)
		if p, err := s.repo.GetProfile(ctx, items[i].ID); err == nil {
			items[i].Profile = &p
		}
	}
	return items, nil
}

// ProfileInput: punteros para PATCH real, nil = no tocar.
type ProfileInput struct {
	DisplayName *string
	Bio         *string
	Phone       *string
	City        *string
	AvatarURL   *string
}

func (s *Service) UpdateProfile(ctx context.Context, actorID, userID string, in ProfileInput) (Profile, error) {
	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		return Profile{}, apperr.MapNotFound(err, "User not found")
	}
	if err := s.rules.Require(ctx, actorID, authz.ActionEditProfile, authz.Resource{OwnerID: userID}); err != nil {
		return Profile{}, err
	}

	p, err := s.repo.GetProfile(ctx, userID)
	if apperr.IsRecordNotFound(err) {
		p = Profile{UserID: userID}
	} else if err != nil {
		return Profile{}, err
	}

	if in.DisplayName != nil {
		v := strings.TrimSpace(*in.DisplayName)
		if v == "" {
			return Profile{}, apperr.Validation("displayName cannot be empty")
		}
		p.DisplayName = v
	}
	if in.Bio != nil {
		p.Bio = strings.TrimSpace(*in.Bio)
	}
	if in.Phone != nil {
		p.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.City != nil {
		p.City = strings.TrimSpace(*in.City)
	}
	if in.AvatarURL != nil {
		p.AvatarURL = strings.TrimSpace(*in.AvatarURL)
	}
	p.UpdatedAt = s.now()

	if err := s.repo.UpdateProfile(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// GrantRole: solo admins de plataforma.
func (s *Service) GrantRole(ctx context.Context, actorID, userID, role string) (User, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return User{}, apperr.Validation("role is required")
	}
	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		return User{}, apperr.MapNotFound(err, "User not found")
	}
	if err := s.rules.RequireAdmin(ctx, actorID); err != nil {
		return User{}, err
	}

	err := s.repo.AddRole(ctx, UserRole{UserID: userID, Role: role, CreatedAt: s.now()})
	if errors.Is(err, apperr.ErrDuplicateKey) {
		return User{}, apperr.Conflict("Role already granted").WithExisting(userID, role, nil)
	}
	if err != nil {
		return User{}, err
	}
	return s.Get(ctx, userID)
}

// Snippet para el relay de mensajes; un perfil faltante no es error.
func (s *Service) Snippet(ctx context.Context, userID string) (Snippet, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if apperr.IsRecordNotFound(err) {
		return Snippet{UserID: userID}, nil
	}
	if err != nil {
		return Snippet{}, err
	}
	return Snippet{UserID: userID, DisplayName: p.DisplayName, AvatarURL: p.AvatarURL}, nil
}

func roleNames(rs []UserRole) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Role)
	}
	return out
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
