package access

import (
	"testing"

	"review-catalog/internal/data/entity"

	"github.com/google/uuid"
)

func TestCanMutateCatalog(t *testing.T) {
	tests := []struct {
		name  string
		ident Identity
		want  bool
	}{
		{"plain user", Identity{UserID: uuid.New(), Role: entity.RoleUser}, false},
		{"moderator", Identity{UserID: uuid.New(), Role: entity.RoleModerator}, false},
		{"admin", Identity{UserID: uuid.New(), Role: entity.RoleAdmin}, true},
		{"superuser with user role", Identity{UserID: uuid.New(), Role: entity.RoleUser, IsSuperuser: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanMutateCatalog(tt.ident); got != tt.want {
				t.Errorf("CanMutateCatalog() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanManageUsers(t *testing.T) {
	tests := []struct {
		name  string
		ident Identity
		want  bool
	}{
		{"plain user", Identity{UserID: uuid.New(), Role: entity.RoleUser}, false},
		{"moderator", Identity{UserID: uuid.New(), Role: entity.RoleModerator}, false},
		{"admin", Identity{UserID: uuid.New(), Role: entity.RoleAdmin}, true},
		{"superuser with moderator role", Identity{UserID: uuid.New(), Role: entity.RoleModerator, IsSuperuser: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanManageUsers(tt.ident); got != tt.want {
				t.Errorf("CanManageUsers() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanModifyContent(t *testing.T) {
	authorID := uuid.New()
	otherID := uuid.New()

	tests := []struct {
		name  string
		ident Identity
		want  bool
	}{
		{"author edits own content", Identity{UserID: authorID, Role: entity.RoleUser}, true},
		{"stranger cannot edit", Identity{UserID: otherID, Role: entity.RoleUser}, false},
		{"moderator edits anyone's", Identity{UserID: otherID, Role: entity.RoleModerator}, true},
		{"admin edits anyone's", Identity{UserID: otherID, Role: entity.RoleAdmin}, true},
		{"superuser edits anyone's", Identity{UserID: otherID, Role: entity.RoleUser, IsSuperuser: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanModifyContent(tt.ident, authorID); got != tt.want {
				t.Errorf("CanModifyContent() = %v, want %v", got, tt.want)
			}
		})
	}
}
