package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-marketplace/internal/middleware"
	"pet-marketplace/internal/platform/httpx"
	"pet-marketplace/internal/platform/logger"
)

// RegisterPublicRoutes monta register/login (sin auth).
func RegisterPublicRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Post("/auth/register", registerHandler(svc, log))
	r.Post("/auth/login", loginHandler(svc, log))
}

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Get("/me", meHandler(svc, log))
	r.Route("/users", func(ur chi.Router) {
		ur.Get("/", listUsersHandler(svc, log))
		ur.Get("/{userID}", getUserHandler(svc, log))
		ur.Patch("/{userID}/profile", updateProfileHandler(svc, log))
		ur.Post("/{userID}/roles", grantRoleHandler(svc, log))
	})
}

type registerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Role        string `json:"role" validate:"omitempty,oneof=owner sitter kennel"`
	DisplayName string `json:"displayName" validate:"max=80"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	DisplayName *string `json:"displayName" validate:"omitempty,max=80"`
	Bio         *string `json:"bio" validate:"omitempty,max=2000"`
	Phone       *string `json:"phone" validate:"omitempty,max=40"`
	City        *string `json:"city" validate:"omitempty,max=80"`
	AvatarURL   *string `json:"avatarUrl" validate:"omitempty,url"`
}

type grantRoleRequest struct {
	Role string `json:"role" validate:"required,max=40"`
}

// registerHandler godoc
// @Summary Registrar usuario
// @Description Crea la cuenta, el rol inicial (owner, sitter o kennel) y el perfil.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Datos de registro"
// @Success 201 {object} User
// @Failure 400 {object} map[string]string "validación"
// @Failure 409 {object} map[string]string "email ya registrado"
// @Router /auth/register [post]
func registerHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		u, err := svc.Register(r.Context(), RegisterInput{
			Email:       req.Email,
			Password:    req.Password,
			Role:        req.Role,
			DisplayName: req.DisplayName,
		})
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, u)
	}
}

// loginHandler godoc
// @Summary Login
// @Description Valida credenciales y emite un bearer token (si hay emisor configurado).
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} Session
// @Failure 401 {object} map[string]string "credenciales inválidas"
// @Router /auth/login [post]
func loginHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		sess, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, sess)
	}
}

func meHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.Get(r.Context(), middleware.UserID(r.Context()))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, u)
	}
}

// listUsersHandler godoc
// @Summary Listar usuarios
// @Description Filtra por rol (?role=sitter) para buscar a quién pedir un match.
// @Tags users
// @Produce json
// @Param role query string false "owner | sitter | kennel | admin"
// @Success 200 {array} User
// @Router /users [get]
func listUsersHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), r.URL.Query().Get("role"))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}

func getUserHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.Get(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, u)
	}
}

func updateProfileHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateProfileRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		p, err := svc.UpdateProfile(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "userID"), ProfileInput{
			DisplayName: req.DisplayName,
			Bio:         req.Bio,
			Phone:       req.Phone,
			City:        req.City,
			AvatarURL:   req.AvatarURL,
		})
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, p)
	}
}

// grantRoleHandler godoc
// @Summary Otorgar rol de plataforma
// @Description Solo admins de plataforma.
// @Tags users
// @Accept json
// @Produce json
// @Param userID path string true "ID del usuario"
// @Param payload body grantRoleRequest true "Rol"
// @Success 200 {object} User
// @Failure 403 {object} map[string]string "forbidden"
// @Failure 409 {object} map[string]string "rol ya otorgado"
// @Router /users/{userID}/roles [post]
func grantRoleHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req grantRoleRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		u, err := svc.GrantRole(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "userID"), req.Role)
		if err != nil {
			httpx.WriteError(w, log, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, u)
	}
}
