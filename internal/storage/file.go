package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/yourname/habitquest/internal"
)

// FileStorage keeps everything in memory behind a RWMutex and flushes
// to JSON files through debounced background workers, so a burst of
// toggles costs one write.
type FileStorage struct {
	users          map[string]*internal.User // id -> User
	userTokenIndex map[string]string         // token -> user id
	items          map[string]*internal.Item // id -> Item
	userItemIndex  map[string][]string       // userID -> item ids, creation order
	mu             sync.RWMutex
	usersFile      string
	itemsFile      string
	saveUsersChan  chan struct{}
	saveItemsChan  chan struct{}
	shutdownChan   chan struct{}
	saveDelay      time.Duration
	logger         internal.Logger
}

func NewFileStorage(usersFile, itemsFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		users:          make(map[string]*internal.User),
		userTokenIndex: make(map[string]string),
		items:          make(map[string]*internal.Item),
		userItemIndex:  make(map[string][]string),
		usersFile:      usersFile,
		itemsFile:      itemsFile,
		saveUsersChan:  make(chan struct{}, 1),
		saveItemsChan:  make(chan struct{}, 1),
		shutdownChan:   make(chan struct{}),
		saveDelay:      500 * time.Millisecond,
		logger:         logger,
	}

	if err := s.loadUsers(); err != nil {
		logger.Errorf("storage: failed to load users: %v", err)
		return nil, err
	}
	if err := s.loadItems(); err != nil {
		logger.Errorf("storage: failed to load items: %v", err)
		return nil, err
	}

	go s.saveWorker(s.saveUsersChan, s.saveUsers, "users")
	go s.saveWorker(s.saveItemsChan, s.saveItems, "items")

	return s, nil
}

func (s *FileStorage) loadUsers() error {
	file, err := os.Open(s.usersFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var users []*internal.User
	if err := json.NewDecoder(file).Decode(&users); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.users[u.ID] = u
		if u.Token != "" {
			s.userTokenIndex[u.Token] = u.ID
		}
	}
	return nil
}

func (s *FileStorage) loadItems() error {
	file, err := os.Open(s.itemsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var items []*internal.Item
	if err := json.NewDecoder(file).Decode(&items); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range items {
		s.items[it.ID] = it
		s.userItemIndex[it.UserID] = append(s.userItemIndex[it.UserID], it.ID)
	}

	// Keep each user's items in creation order so listings are stable.
	for userID := range s.userItemIndex {
		ids := s.userItemIndex[userID]
		sort.Slice(ids, func(i, j int) bool {
			return s.items[ids[i]].CreatedAt.Before(s.items[ids[j]].CreatedAt)
		})
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveUsers() error {
	s.mu.RLock()
	users := make([]*internal.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	s.mu.RUnlock()

	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return atomicWriteFileJSON(s.usersFile, users)
}

func (s *FileStorage) saveItems() error {
	s.mu.RLock()
	items := make([]*internal.Item, 0, len(s.items))
	for _, it := range s.items {
		items = append(items, it)
	}
	s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return atomicWriteFileJSON(s.itemsFile, items)
}

func (s *FileStorage) saveWorker(signal chan struct{}, save func() error, what string) {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-signal:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := save(); err != nil {
				s.logger.Errorf("storage: error saving %s: %v", what, err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

// Close stops the workers and flushes pending data synchronously.
func (s *FileStorage) Close() error {
	close(s.shutdownChan)

	if err := s.saveUsers(); err != nil {
		return err
	}
	return s.saveItems()
}

// --- ItemRepository ---

func (s *FileStorage) SaveItem(ctx context.Context, item *internal.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *item
	if _, exists := s.items[cp.ID]; !exists {
		s.userItemIndex[cp.UserID] = append(s.userItemIndex[cp.UserID], cp.ID)
	}
	s.items[cp.ID] = &cp

	select {
	case s.saveItemsChan <- struct{}{}:
	default:
	}
	return nil
}

func (s *FileStorage) GetItem(ctx context.Context, id string) (*internal.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("storage: item %s: %w", id, internal.ErrNotFound)
	}
	cp := *it
	return &cp, nil
}

func (s *FileStorage) ListItems(ctx context.Context, userID string) ([]internal.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids, ok := s.userItemIndex[userID]
	if !ok {
		return []internal.Item{}, nil
	}
	items := make([]internal.Item, 0, len(ids))
	for _, id := range ids {
		if it, ok := s.items[id]; ok {
			items = append(items, *it)
		}
	}
	return items, nil
}

func (s *FileStorage) DeleteItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[id]
	if !ok {
		return fmt.Errorf("storage: item %s: %w", id, internal.ErrNotFound)
	}
	delete(s.items, id)

	ids := s.userItemIndex[it.UserID]
	for i, existing := range ids {
		if existing == id {
			s.userItemIndex[it.UserID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}

	select {
	case s.saveItemsChan <- struct{}{}:
	default:
	}
	return nil
}

// --- UserRepository ---

func (s *FileStorage) SaveUser(ctx context.Context, user *internal.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *user
	if old, exists := s.users[cp.ID]; exists && old.Token != cp.Token {
		delete(s.userTokenIndex, old.Token)
	}
	s.users[cp.ID] = &cp
	if cp.Token != "" {
		s.userTokenIndex[cp.Token] = cp.ID
	}

	select {
	case s.saveUsersChan <- struct{}{}:
	default:
	}
	return nil
}

func (s *FileStorage) GetUser(ctx context.Context, id string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("storage: user %s: %w", id, internal.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (s *FileStorage) GetUserByToken(ctx context.Context, token string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.userTokenIndex[token]
	if !ok {
		return nil, fmt.Errorf("storage: user by token: %w", internal.ErrNotFound)
	}
	cp := *s.users[id]
	return &cp, nil
}

func (s *FileStorage) ListTopUsers(ctx context.Context, limit int) ([]internal.User, error) {
	s.mu.RLock()
	users := make([]internal.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, *u)
	}
	s.mu.RUnlock()

	sort.Slice(users, func(i, j int) bool {
		if users[i].Points != users[j].Points {
			return users[i].Points > users[j].Points
		}
		return users[i].ID < users[j].ID
	})
	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

// --- Compile-time assertions ---
var _ ItemRepository = (*FileStorage)(nil)
var _ UserRepository = (*FileStorage)(nil)
