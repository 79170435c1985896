// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/types"
)

// Capability is the minimum role an endpoint requires. There are exactly
// two capability levels, totally ordered: admin above member.
type Capability int

const (
	CapabilityMember Capability = iota
	CapabilityAdmin
)

func (c Capability) String() string {
	switch c {
	case CapabilityAdmin:
		return "admin"
	default:
		return "member"
	}
}

// SatisfiedBy reports whether a role meets the capability. member
// capability is satisfied by both roles, admin capability only by admin.
// This is the single place role-to-capability comparison happens.
func (c Capability) SatisfiedBy(r types.Role) bool {
	switch c {
	case CapabilityMember:
		return r == types.RoleMember || r == types.RoleAdmin
	case CapabilityAdmin:
		return r == types.RoleAdmin
	default:
		return false
	}
}
