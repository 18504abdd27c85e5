package authz

// Role es el rol de una fila de membresía (club o kennel).
type Role string

const (
	RoleOwner    Role = "OWNER"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
	RoleMember   Role = "MEMBER"
	// RoleAdmin solo existe en clubes (administrador del club, no de plataforma).
	RoleAdmin Role = "ADMIN"
)

// Action es la operación que el actor intenta ejecutar.
type Action string

const (
	ActionManagePet            Action = "pet:manage"
	ActionProcessPetLink       Action = "pet_link:process"
	ActionCreateCourse         Action = "course:create"
	ActionCreateCompetition    Action = "competition:create"
	ActionAssignAward          Action = "award:assign"
	ActionNominateAwarder      Action = "awarder:nominate"
	ActionProcessAwarder       Action = "awarder:process"
	ActionProcessEnrollment    Action = "enrollment:process"
	ActionProcessEntry         Action = "entry:process"
	ActionProcessJoinRequest   Action = "membership:process"
	ActionManageMembers        Action = "membership:manage"
	ActionViewMembers          Action = "membership:view"
	ActionManageCertifiers     Action = "certifier:manage"
	ActionApproveCertification Action = "certification:approve"
	ActionRejectCertification  Action = "certification:reject"
	ActionProcessPaperwork     Action = "paperwork:process"
	ActionEditProfile          Action = "profile:edit"
	ActionCancelMatch          Action = "match:cancel"
	ActionRequestOnBehalf      Action = "target:request"
)

// policy describe quién puede ejecutar una Action.
type policy struct {
	// el dueño directo del recurso (Resource.OwnerID) pasa
	owner bool
	// roles aceptados en el club emisor (fila con status ACCEPTED)
	club []Role
	// roles aceptados en el kennel emisor
	kennel []Role
	// fallback para admins de plataforma
	admin bool
}

var (
	ownerOnly      = []Role{RoleOwner}
	ownerEmployee  = []Role{RoleOwner, RoleEmployee}
	petManagers    = []Role{RoleOwner, RoleManager, RoleEmployee}
	courseCreators = []Role{RoleOwner, RoleAdmin}
)

var policies = map[Action]policy{
	ActionManagePet:      {owner: true, kennel: petManagers},
	ActionProcessPetLink: {kennel: []Role{RoleOwner, RoleManager}},

	ActionCreateCourse:      {club: courseCreators, kennel: ownerOnly},
	ActionCreateCompetition: {club: ownerOnly, kennel: ownerOnly},
	ActionAssignAward:       {club: ownerOnly, kennel: ownerOnly},
	ActionNominateAwarder:   {club: ownerOnly, kennel: ownerOnly},
	ActionProcessAwarder:    {club: ownerOnly, kennel: ownerOnly, admin: true},

	ActionProcessEnrollment:  {club: ownerEmployee, kennel: ownerOnly},
	ActionProcessEntry:       {club: ownerEmployee, kennel: ownerOnly},
	ActionProcessJoinRequest: {club: ownerEmployee, kennel: ownerOnly},
	ActionManageMembers:      {club: ownerOnly, kennel: ownerOnly},
	ActionViewMembers:        {club: ownerEmployee, kennel: petManagers},
	ActionManageCertifiers:   {club: ownerEmployee},

	ActionApproveCertification: {club: ownerEmployee, kennel: ownerOnly},
	ActionRejectCertification:  {club: ownerEmployee, kennel: ownerOnly, admin: true},

	ActionProcessPaperwork: {admin: true},

	ActionEditProfile:     {owner: true},
	ActionCancelMatch:     {owner: true},
	ActionRequestOnBehalf: {owner: true},
}

func hasRole(set []Role, r Role) bool {
	for _, x := range set {
		if x == r {
			return true
		}
	}
	return false
}
