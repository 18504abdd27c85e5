package authz

import (
	"strings"

	"pet-marketplace/internal/platform/apperr"
)

// OrgKind identifica el tipo de organización emisora.
type OrgKind string

const (
	OrgClub   OrgKind = "CLUB"
	OrgKennel OrgKind = "KENNEL"
)

func ParseOrgKind(s string) (OrgKind, bool) {
	switch OrgKind(strings.ToUpper(strings.TrimSpace(s))) {
	case OrgClub:
		return OrgClub, true
	case OrgKennel:
		return OrgKennel, true
	}
	return "", false
}

// Issuer es la variante Club(id) | Kennel(id) que emite cursos, competencias y certificaciones.
// El valor cero significa "sin emisor".
type Issuer struct {
	Kind OrgKind
	ID   string
}

func ClubIssuer(id string) Issuer   { return Issuer{Kind: OrgClub, ID: id} }
func KennelIssuer(id string) Issuer { return Issuer{Kind: OrgKennel, ID: id} }

func (i Issuer) IsZero() bool {
	return i.Kind == "" || strings.TrimSpace(i.ID) == ""
}

// IssuerFromColumns arma el Issuer desde las dos columnas nullables del store.
// Si ambas vienen seteadas gana el club (no debería pasar: lo impiden los services).
func IssuerFromColumns(clubID, kennelID *string) Issuer {
	if clubID != nil && strings.TrimSpace(*clubID) != "" {
		return ClubIssuer(*clubID)
	}
	if kennelID != nil && strings.TrimSpace(*kennelID) != "" {
		return KennelIssuer(*kennelID)
	}
	return Issuer{}
}

// ParseIssuer valida el trío issuerType/clubId/kennelId de un request.
// Sin issuerType se infiere de la única columna seteada.
func ParseIssuer(kind, clubID, kennelID string) (Issuer, error) {
	clubID, kennelID = strings.TrimSpace(clubID), strings.TrimSpace(kennelID)
	if clubID != "" && kennelID != "" {
		return Issuer{}, apperr.Validation("exactly one of clubId or kennelId must be set")
	}
	k, ok := ParseOrgKind(kind)
	if strings.TrimSpace(kind) != "" && !ok {
		return Issuer{}, apperr.Validation("invalid issuerType").WithDetails("expected CLUB or KENNEL")
	}
	switch {
	case k == OrgClub || (k == "" && clubID != ""):
		if clubID == "" {
			return Issuer{}, apperr.Validation("clubId is required for CLUB issuer")
		}
		return ClubIssuer(clubID), nil
	case k == OrgKennel || (k == "" && kennelID != ""):
		if kennelID == "" {
			return Issuer{}, apperr.Validation("kennelId is required for KENNEL issuer")
		}
		return KennelIssuer(kennelID), nil
	}
	return Issuer{}, apperr.Validation("issuer is required").WithDetails("set issuerType with clubId or kennelId")
}

// Columns es la inversa de IssuerFromColumns.
func (i Issuer) Columns() (clubID, kennelID *string) {
	if i.IsZero() {
		return nil, nil
	}
	id := i.ID
	switch i.Kind {
	case OrgClub:
		return &id, nil
	case OrgKennel:
		return nil, &id
	}
	return nil, nil
}

func (i Issuer) String() string {
	if i.IsZero() {
		return "none"
	}
	return strings.ToLower(string(i.Kind)) + ":" + i.ID
}
