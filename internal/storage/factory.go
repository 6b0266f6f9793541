package storage

import (
	"io"

	"github.com/yourname/habitquest/internal"
)

// Repositories bundles the two aggregate stores a single backend
// serves, plus its Close for shutdown flushing.
type Repositories struct {
	Items ItemRepository
	Users UserRepository
	io.Closer
}

func NewFileRepositories(usersFile, itemsFile string, logger internal.Logger) (*Repositories, error) {
	s, err := NewFileStorage(usersFile, itemsFile, logger)
	if err != nil {
		return nil, err
	}
	return &Repositories{Items: s, Users: s, Closer: s}, nil
}

func NewPostgresRepositories(dsn string, logger internal.Logger) (*Repositories, error) {
	s, err := NewPostgresStorage(dsn, logger)
	if err != nil {
		return nil, err
	}
	return &Repositories{Items: s, Users: s, Closer: s}, nil
}
