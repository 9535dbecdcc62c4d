package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/pgseed/pkg/pgseed"
)

type mockConnector struct {
	pool *pgxpool.Pool
	err  error
}

func (m *mockConnector) Connect(_ context.Context) (*pgxpool.Pool, error) {
	return m.pool, m.err
}

type mockApprover struct {
	approved bool
	err      error
	asked    []string
}

func (m *mockApprover) RequestApproval(_ context.Context, dbName string) (bool, error) {
	m.asked = append(m.asked, dbName)
	return m.approved, m.err
}

// captureLogger records formatted lines per level.
type captureLogger struct {
	mu      sync.Mutex
	verbose []string
	info    []string
	errors  []string
}

func (l *captureLogger) Verbose(format string, args ...interface{}) {
	l.add(&l.verbose, format, args)
}

func (l *captureLogger) Info(format string, args ...interface{}) {
	l.add(&l.info, format, args)
}

func (l *captureLogger) Error(format string, args ...interface{}) {
	l.add(&l.errors, format, args)
}

func (l *captureLogger) add(dst *[]string, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*dst = append(*dst, fmt.Sprintf(format, args...))
}

// fakeDB records executed SQL. A statement equal to failOn fails.
type fakeDB struct {
	failOn   string
	failErr  error
	beginErr error
	count    int64
	countErr error

	committed  []string
	rolledBack []string
	queries    []string
}

func (f *fakeDB) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("exec outside transaction")
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, _ ...any) pgseed.Row {
	f.queries = append(f.queries, sql)
	return fakeRow{value: f.count, err: f.countErr}
}

func (f *fakeDB) Begin(_ context.Context) (pgseed.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	return &fakeTx{db: f}, nil
}

type fakeTx struct {
	db      *fakeDB
	pending string
	done    bool
}

func (t *fakeTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	if sql == t.db.failOn {
		return pgconn.CommandTag{}, t.db.failErr
	}
	t.pending = sql
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (t *fakeTx) Commit(_ context.Context) error {
	t.db.committed = append(t.db.committed, t.pending)
	t.done = true
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	if !t.done {
		t.db.rolledBack = append(t.db.rolledBack, t.pending)
		t.done = true
	}
	return nil
}

type fakeRow struct {
	value int64
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*int64)) = r.value
	return nil
}

// memFS serves file contents from a map.
type memFS map[string]string

func (m memFS) read(name string) ([]byte, error) {
	content, ok := m[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return []byte(content), nil
}

func (m memFS) stat(name string) (os.FileInfo, error) {
	content, ok := m[name]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return memFileInfo{name: name, size: int64(len(content))}, nil
}

type memFileInfo struct {
	name string
	size int64
}

func (i memFileInfo) Name() string       { return i.name }
func (i memFileInfo) Size() int64        { return i.size }
func (i memFileInfo) Mode() fs.FileMode  { return 0o644 }
func (i memFileInfo) ModTime() time.Time { return time.Time{} }
func (i memFileInfo) IsDir() bool        { return false }
func (i memFileInfo) Sys() any           { return nil }
