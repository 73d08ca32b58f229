package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 25 * time.Millisecond

// slugLocker serializes writers of the same slug: first inside the process,
// then across processes through a lock file per slug.
type slugLocker struct {
	dir  string
	mu   sync.Mutex
	held map[string]*slugLock
}

type slugLock struct {
	sem  chan struct{}
	refs int
}

func newSlugLocker(dir string) *slugLocker {
	return &slugLocker{dir: dir, held: make(map[string]*slugLock)}
}

// Lock blocks until the slug is exclusively held or ctx is done.
func (l *slugLocker) Lock(ctx context.Context, slug string) (func(), error) {
	sl := l.acquire(slug)
	select {
	case sl.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(slug, sl)
		return nil, ctx.Err()
	}

	fl, err := l.lockFile(ctx, slug)
	if err != nil {
		<-sl.sem
		l.release(slug, sl)
		return nil, err
	}

	return func() {
		_ = fl.Unlock()
		<-sl.sem
		l.release(slug, sl)
	}, nil
}

func (l *slugLocker) lockFile(ctx context.Context, slug string) (*flock.Flock, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return nil, &StorageError{Op: "mkdir", Path: l.dir, Err: err}
	}
	path := filepath.Join(l.dir, slug+".lock")
	fl := flock.New(path)
	ok, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, ctxErr
		}
		return nil, &StorageError{Op: "lock", Path: path, Err: err}
	}
	if !ok {
		return nil, &StorageError{Op: "lock", Path: path, Err: errors.New("lock not acquired")}
	}
	return fl, nil
}

func (l *slugLocker) acquire(slug string) *slugLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	sl, ok := l.held[slug]
	if !ok {
		sl = &slugLock{sem: make(chan struct{}, 1)}
		l.held[slug] = sl
	}
	sl.refs++
	return sl
}

func (l *slugLocker) release(slug string, sl *slugLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	sl.refs--
	if sl.refs == 0 {
		delete(l.held, slug)
	}
}
