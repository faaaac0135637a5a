package services

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/picshare/internal/common"
	"github.com/dmitrijs2005/picshare/internal/dbx"
	"github.com/dmitrijs2005/picshare/internal/server/models"
	"github.com/dmitrijs2005/picshare/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/picshare/internal/server/repositories/users"
)

// --- in-memory repositories ---

type memUsers struct {
	mu      sync.Mutex
	nextID  int64
	byName  map[string]*models.User
	err     error
	creates int
}

func newMemUsers() *memUsers { return &memUsers{byName: map[string]*models.User{}} }

func (m *memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if m.err != nil {
		return nil, m.err
	}
	if u.UserName == "" || u.PasswordHash == "" {
		return nil, common.ErrValidation
	}
	if _, ok := m.byName[u.UserName]; ok {
		return nil, common.ErrDuplicateUsername
	}
	m.nextID++
	stored := *u
	stored.ID = m.nextID
	stored.CreatedAt = time.Now()
	m.byName[u.UserName] = &stored
	out := stored
	return &out, nil
}

func (m *memUsers) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.byName[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

func (m *memUsers) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.byName {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

type memSessions struct {
	mu   sync.Mutex
	rows map[string]models.Session
	err  error
}

func newMemSessions() *memSessions { return &memSessions{rows: map[string]models.Session{}} }

func (m *memSessions) Create(ctx context.Context, id string, userID int64, validity time.Duration) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return time.Time{}, m.err
	}
	now := time.Now()
	m.rows[id] = models.Session{ID: id, UserID: userID, ExpiresAt: now.Add(validity), CreatedAt: now}
	return now.Add(validity), nil
}

func (m *memSessions) Find(ctx context.Context, id string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &s, nil
}

func (m *memSessions) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.rows, id)
	return nil
}

func (m *memSessions) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type fakeRepoManager struct {
	users    *memUsers
	sessions *memSessions
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{users: newMemUsers(), sessions: newMemSessions()}
}

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (f *fakeRepoManager) Users(dbx.DBTX) users.Repository { return f.users }
func (f *fakeRepoManager) Sessions(dbx.DBTX) sessions.Repository { return f.sessions }

// --- storage ---

type putCall struct {
	key         string
	path        string
	content     string
	existedThen bool
}

type fakeGateway struct {
	mu      sync.Mutex
	keys    []string
	listErr error
	putErr  error
	puts    []putCall
}

func (f *fakeGateway) PutObject(ctx context.Context, key, localPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := os.ReadFile(localPath)
	f.puts = append(f.puts, putCall{key: key, path: localPath, content: string(b), existedThen: err == nil})
	if f.putErr != nil {
		return f.putErr
	}
	f.keys = append(f.keys, key)
	return nil
}

func (f *fakeGateway) ListObjects(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out, nil
}

func (f *fakeGateway) PublicURL(key string) string {
	return "https://pics.s3.amazonaws.com/" + key
}
