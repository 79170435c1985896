// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"fmt"
	"time"
)

// Role is the closed set of user roles. Comparisons against string
// literals are confined to ParseRole.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleMember:
		return RoleMember, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Tier is the closed set of subscription tiers.
type Tier string

const (
	TierFree Tier = "free"
	TierPro  Tier = "pro"
)

const freeTierNoteLimit = 3

func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierFree:
		return TierFree, nil
	case TierPro:
		return TierPro, nil
	default:
		return "", fmt.Errorf("unknown subscription tier %q", s)
	}
}

// NoteLimit derives the tenant note quota from the tier. The limit is
// never stored: it is a pure function of the tier. limited is false for
// tiers without a quota.
func (t Tier) NoteLimit() (limit int64, limited bool) {
	if t == TierPro {
		return 0, false
	}
	return freeTierNoteLimit, true
}

type Tenant struct {
	ID        string    `db:"id" json:"id"`
	Slug      string    `db:"slug" json:"slug"`
	Name      string    `db:"name" json:"name"`
	Tier      Tier      `db:"tier" json:"subscription"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	TenantID     string    `db:"tenant_id" json:"tenant_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type Note struct {
	ID          string    `db:"id" json:"id"`
	TenantID    string    `db:"tenant_id" json:"tenant_id"`
	AuthorID    string    `db:"author_id" json:"author_id"`
	AuthorEmail string    `db:"author_email" json:"author_email,omitempty"`
	Title       string    `db:"title" json:"title"`
	Content     string    `db:"content" json:"content"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
