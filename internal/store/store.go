package store

import "github.com/starford/ansuz/internal/models"

// AgendaStore defines the persistence gateway operations. Consumers should
// depend on this interface rather than the concrete *DB type to facilitate
// testing with mocks.
//
// Read operations translate the store's "no rows" condition to a nil record,
// not an error; NotFound is a normal outcome for "no such id/token".
type AgendaStore interface {
	CreateAgenda(params CreateParams) (*models.AgendaRecord, error)
	GetAgendaByID(id string) (*models.AgendaRecord, error)
	GetAgendaByShareToken(token string) (*models.AgendaRecord, error)
	UpdateAgenda(id string, updates UpdateParams) (*models.AgendaRecord, error)
	DeleteAgenda(id string) error
	ListAgendasByUser(userID string) ([]models.AgendaRecord, error)
	Close() error
}

// Verify *DB satisfies AgendaStore at compile time.
var _ AgendaStore = (*DB)(nil)
