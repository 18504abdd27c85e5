// Package authztest tiene un Directory en memoria para tests de services.
package authztest

import (
	"context"
	"sync"

	"pet-marketplace/internal/authz"
	"pet-marketplace/internal/platform/apperr"
)

type Directory struct {
	mu      sync.RWMutex
	clubs   map[string]map[string]authz.Membership
	kennels map[string]map[string]authz.Membership
	admins  map[string]bool
}

func NewDirectory() *Directory {
	return &Directory{
		clubs:   map[string]map[string]authz.Membership{},
		kennels: map[string]map[string]authz.Membership{},
		admins:  map[string]bool{},
	}
}

// AddClub registra un club sin miembros.
func (d *Directory) AddClub(clubID string) *Directory {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.clubs[clubID] == nil {
		d.clubs[clubID] = map[string]authz.Membership{}
	}
	return d
}

func (d *Directory) AddKennel(kennelID string) *Directory {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.kennels[kennelID] == nil {
		d.kennels[kennelID] = map[string]authz.Membership{}
	}
	return d
}

func (d *Directory) SetClubMember(clubID, userID string, role authz.Role, status authz.MemberStatus) *Directory {
	d.AddClub(clubID)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clubs[clubID][userID] = authz.Membership{Role: role, Status: status}
	return d
}

func (d *Directory) SetKennelMember(kennelID, userID string, role authz.Role) *Directory {
	d.AddKennel(kennelID)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.kennels[kennelID][userID] = authz.Membership{Role: role, Status: authz.MemberAccepted}
	return d
}

func (d *Directory) SetAdmin(userID string) *Directory {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.admins[userID] = true
	return d
}

func (d *Directory) ClubMembership(_ context.Context, clubID, userID string) (authz.Membership, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	m, ok := d.clubs[clubID][userID]
	if !ok {
		return authz.Membership{}, apperr.ErrRecordNotFound
	}
	return m, nil
}

func (d *Directory) KennelMembership(_ context.Context, kennelID, userID string) (authz.Membership, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	m, ok := d.kennels[kennelID][userID]
	if !ok {
		return authz.Membership{}, apperr.ErrRecordNotFound
	}
	return m, nil
}

func (d *Directory) IsPlatformAdmin(_ context.Context, userID string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.admins[userID], nil
}

func (d *Directory) IssuerExists(_ context.Context, iss authz.Issuer) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	switch iss.Kind {
	case authz.OrgClub:
		if _, ok := d.clubs[iss.ID]; ok {
			return nil
		}
		return apperr.NotFound("club not found")
	case authz.OrgKennel:
		if _, ok := d.kennels[iss.ID]; ok {
			return nil
		}
		return apperr.NotFound("kennel not found")
	}
	return apperr.Validation("invalid issuer")
}

// RuleSet atajo para tests.
func (d *Directory) RuleSet() *authz.RuleSet {
	return authz.NewRuleSet(d)
}
