package services

import (
	"testing"

	"github.com/anonto42/idea-board/backend/internal/common"
	"github.com/anonto42/idea-board/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestEnsureOwner(t *testing.T) {
	idea := &models.Idea{ID: "i1", AuthorID: "alice"}
	comment := &models.Comment{ID: "c1", AuthorID: "bob"}

	tests := []struct {
		name    string
		entity  Owned
		caller  string
		wantErr error
	}{
		{"idea owner", idea, "alice", nil},
		{"idea stranger", idea, "bob", common.ErrForbidden},
		{"comment owner", comment, "bob", nil},
		{"comment stranger", comment, "alice", common.ErrForbidden},
		{"anonymous caller", idea, "", common.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := EnsureOwner(tt.entity, tt.caller)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
