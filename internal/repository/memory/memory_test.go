package memory

import (
	"testing"

	"praia-backend/internal/repository"
	"praia-backend/internal/repository/repotest"
)

func TestStore(t *testing.T) {
	repotest.Run(t, func(t *testing.T) *repository.Store {
		return NewStore()
	})
}
