package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type ownedBy uint

func (o ownedBy) OwnerID() uint { return uint(o) }

var (
	staff   = Identity{UserID: 1, Username: "admin", Role: RoleStaff}
	member  = Identity{UserID: 2, Username: "alice", Role: RoleMember}
	visitor = Identity{UserID: 3, Username: "guest", Role: RoleVisitor}
	editor  = Identity{UserID: 4, Username: "curator", Role: RoleMember, Capabilities: []Capability{CapManageCatalog}}
)

func TestAdminWriteElseRead(t *testing.T) {
	tests := []struct {
		name string
		id   Identity
		verb Verb
		want bool
	}{
		{"anonymous read", Anonymous, VerbRead, true},
		{"anonymous write", Anonymous, VerbWrite, false},
		{"member read", member, VerbRead, true},
		{"member write", member, VerbWrite, false},
		{"visitor write", visitor, VerbWrite, false},
		{"staff read", staff, VerbRead, true},
		{"staff write", staff, VerbWrite, true},
		{"catalog editor write", editor, VerbWrite, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AdminWriteElseRead(tt.id, tt.verb, nil))
		})
	}
}

func TestOwnerOrAdmin(t *testing.T) {
	tests := []struct {
		name string
		id   Identity
		obj  Owned
		want bool
	}{
		{"anonymous", Anonymous, ownedBy(2), false},
		{"owner", member, ownedBy(2), true},
		{"other user", visitor, ownedBy(2), false},
		{"staff on foreign object", staff, ownedBy(2), true},
		{"member without object", member, nil, false},
		{"staff without object", staff, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OwnerOrAdmin(tt.id, VerbRead, tt.obj))
		})
	}
}

func TestOwnerElseRead(t *testing.T) {
	tests := []struct {
		name string
		id   Identity
		verb Verb
		obj  Owned
		want bool
	}{
		{"anonymous read", Anonymous, VerbRead, ownedBy(2), true},
		{"anonymous write", Anonymous, VerbWrite, ownedBy(2), false},
		{"owner write", member, VerbWrite, ownedBy(2), true},
		{"other user write", visitor, VerbWrite, ownedBy(2), false},
		// Staff get no special case for rating/comment mutation.
		{"staff write on foreign object", staff, VerbWrite, ownedBy(2), false},
		{"staff read", staff, VerbRead, ownedBy(2), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OwnerElseRead(tt.id, tt.verb, tt.obj))
		})
	}
}

func TestAll(t *testing.T) {
	authedOwnerOnly := All(Authenticated, OwnerElseRead)

	assert.False(t, authedOwnerOnly(Anonymous, VerbRead, ownedBy(2)),
		"Authenticated short-circuits before OwnerElseRead's open read")
	assert.True(t, authedOwnerOnly(member, VerbWrite, ownedBy(2)))
	assert.False(t, authedOwnerOnly(member, VerbWrite, ownedBy(9)))
}

func TestIdentityCapabilities(t *testing.T) {
	assert.True(t, editor.Has(CapManageCatalog))
	assert.False(t, member.Has(CapManageCatalog))
	assert.False(t, editor.IsStaff())
}
