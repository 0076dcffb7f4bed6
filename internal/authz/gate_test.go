package authz

import (
	"testing"

	"github.com/openclassroom/client/internal/session"
	"github.com/openclassroom/client/types"
)

func userWith(roles ...types.Role) *types.User {
	return &types.User{ID: 1, Username: "alice", Roles: roles}
}

func TestCheckTable(t *testing.T) {
	tests := []struct {
		name string
		snap session.Snapshot
		cap  Capability
		want Decision
	}{
		{
			name: "anonymous denied",
			snap: session.Snapshot{},
			cap:  Authenticated(),
			want: Deny,
		},
		{
			name: "loading without user is pending",
			snap: session.Snapshot{Loading: true},
			cap:  Authenticated(),
			want: Pending,
		},
		{
			name: "loading with user already known allows",
			snap: session.Snapshot{Loading: true, User: userWith(types.RoleStudent)},
			cap:  Authenticated(),
			want: Allow,
		},
		{
			name: "any authenticated user",
			snap: session.Snapshot{User: userWith(types.RoleStudent)},
			cap:  Authenticated(),
			want: Allow,
		},
		{
			name: "student denied teacher-or-admin",
			snap: session.Snapshot{User: userWith(types.RoleStudent)},
			cap:  AnyOf(types.RoleTeacher, types.RoleAdmin),
			want: Deny,
		},
		{
			name: "admin allowed teacher-or-admin",
			snap: session.Snapshot{User: userWith(types.RoleAdmin)},
			cap:  AnyOf(types.RoleTeacher, types.RoleAdmin),
			want: Allow,
		},
		{
			name: "admin not implicitly granted teacher-only",
			snap: session.Snapshot{User: userWith(types.RoleAdmin)},
			cap:  AnyOf(types.RoleTeacher),
			want: Deny,
		},
		{
			name: "multi-role user matches either",
			snap: session.Snapshot{User: userWith(types.RoleStudent, types.RoleTeacher)},
			cap:  AnyOf(types.RoleTeacher),
			want: Allow,
		},
		{
			name: "error state still denies",
			snap: session.Snapshot{Error: "Login failed"},
			cap:  Authenticated(),
			want: Deny,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Check(tt.snap, tt.cap); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestCheckIsPure(t *testing.T) {
	snap := session.Snapshot{Loading: true}
	cap := AnyOf(types.RoleTeacher)

	first := Check(snap, cap)
	second := Check(snap, cap)
	if first != second {
		t.Fatalf("expected identical results, got %s then %s", first, second)
	}
	if first != Pending {
		t.Fatalf("expected Pending while loading with no user, got %s", first)
	}
}

func TestPendingOnlyWhileLoadingWithoutUser(t *testing.T) {
	// Not loading, no user: deny, not pending.
	if got := Check(session.Snapshot{}, Authenticated()); got != Deny {
		t.Fatalf("expected Deny, got %s", got)
	}
	// Loading with a user: never pending.
	snap := session.Snapshot{Loading: true, User: userWith(types.RoleAdmin)}
	if got := Check(snap, AnyOf(types.RoleAdmin)); got != Allow {
		t.Fatalf("expected Allow, got %s", got)
	}
}
