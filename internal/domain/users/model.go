package users

import "time"

// Roles de plataforma (tabla user_roles).
const (
	RoleOwner  = "owner"
	RoleSitter = "sitter"
	RoleKennel = "kennel"
	RoleAdmin  = "admin"
)

// SelfServiceRoles son los que se pueden elegir al registrarse.
var SelfServiceRoles = []string{RoleOwner, RoleSitter, RoleKennel}

// User es la cuenta. Nunca se borra en los flujos observados.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:text"`
	Email        string    `json:"email" gorm:"type:text;not null;uniqueIndex:ux_users_email"`
	PasswordHash string    `json:"-" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"createdAt"`

	// Cargados por el service, no son columnas.
	Roles   []string `json:"roles" gorm:"-"`
	Profile *Profile `json:"profile,omitempty" gorm:"-"`
}

// PrimaryRole es el primer rol otorgado.
func (u User) PrimaryRole() string {
	if len(u.Roles) == 0 {
		return ""
	}
	return u.Roles[0]
}

// UserRole es la fila join sin status.
type UserRole struct {
	UserID    string    `json:"userId" gorm:"primaryKey;type:text"`
	Role      string    `json:"role" gorm:"primaryKey;type:text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile 1:1 con User; solo lo edita su dueño.
type Profile struct {
	UserID      string    `json:"userId" gorm:"primaryKey;type:text"`
	DisplayName string    `json:"displayName"`
	Bio         string    `json:"bio"`
	Phone       string    `json:"phone"`
	City        string    `json:"city"`
	AvatarURL   string    `json:"avatarUrl"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Snippet es lo que viaja con los mensajes de chat.
type Snippet struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}
