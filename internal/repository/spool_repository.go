package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/shinyyama/spool-backend/internal/model"
	"github.com/shinyyama/spool-backend/internal/reqctx"
	"github.com/shinyyama/spool-backend/internal/slug"
)

const (
	spoolsSubdir = "spools"
	imagesSubdir = "images/spools"
)

var validExt = regexp.MustCompile(`^\.[a-z0-9]+$`)

type SpoolRepository interface {
	Put(ctx context.Context, id string, record *model.SpoolRecord, image []byte, ext string) (*PutResult, error)
	Get(ctx context.Context, id string) (*model.SpoolRecord, error)
	List(ctx context.Context) ([]model.CatalogEntry, error)
	// ImageRef is the value stored in a record's image field.
	ImageRef(id, ext string) string
}

// PutResult locates a committed catalog entry. JSONPath and ImagePath are
// relative to the repository root; the keys are relative to the catalog root.
type PutResult struct {
	JSONPath  string
	ImagePath string
	JSONKey   string
	ImageKey  string
	Replaced  bool
}

type FileSpoolRepository struct {
	repoRoot  string
	spoolsDir string
	imagesDir string
	locks     *slugLocker
}

var _ SpoolRepository = (*FileSpoolRepository)(nil)

func NewFileSpoolRepository(repoRoot, catalogRoot, lockDir string) *FileSpoolRepository {
	return &FileSpoolRepository{
		repoRoot:  repoRoot,
		spoolsDir: filepath.Join(catalogRoot, spoolsSubdir),
		imagesDir: filepath.Join(catalogRoot, filepath.FromSlash(imagesSubdir)),
		locks:     newSlugLocker(lockDir),
	}
}

func (r *FileSpoolRepository) ImageRef(id, ext string) string {
	return "/" + path.Join(imagesSubdir, id+ext)
}

// Put stores the record and image for id, replacing any previous entry.
// Both files are staged next to their targets and renamed into place while
// the slug lock is held, image first, so concurrent writers of one slug
// never interleave and readers never see a partially written file.
func (r *FileSpoolRepository) Put(ctx context.Context, id string, record *model.SpoolRecord, image []byte, ext string) (*PutResult, error) {
	if !slug.Valid(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSlug, id)
	}
	if !validExt.MatchString(ext) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidExt, ext)
	}
	payload, err := record.CatalogJSON()
	if err != nil {
		return nil, fmt.Errorf("encode spool %s: %w", id, err)
	}
	for _, dir := range []string{r.spoolsDir, r.imagesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &StorageError{Op: "mkdir", Path: dir, Err: err}
		}
	}

	unlock, err := r.locks.Lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	jsonPath := r.jsonPath(id)
	imagePath := filepath.Join(r.imagesDir, id+ext)
	_, statErr := os.Stat(jsonPath)
	replaced := statErr == nil

	imageTmp, err := writeTemp(r.imagesDir, id, image)
	if err != nil {
		return nil, err
	}
	jsonTmp, err := writeTemp(r.spoolsDir, id, payload)
	if err != nil {
		_ = os.Remove(imageTmp)
		return nil, err
	}
	if err := os.Rename(imageTmp, imagePath); err != nil {
		_ = os.Remove(imageTmp)
		_ = os.Remove(jsonTmp)
		return nil, &StorageError{Op: "rename", Path: imagePath, Err: err}
	}
	if err := os.Rename(jsonTmp, jsonPath); err != nil {
		_ = os.Remove(jsonTmp)
		return nil, &StorageError{Op: "rename", Path: jsonPath, Err: err}
	}
	r.removeStaleImages(ctx, id, ext)

	return &PutResult{
		JSONPath:  r.rel(jsonPath),
		ImagePath: r.rel(imagePath),
		JSONKey:   path.Join(spoolsSubdir, id+".json"),
		ImageKey:  path.Join(imagesSubdir, id+ext),
		Replaced:  replaced,
	}, nil
}

func (r *FileSpoolRepository) Get(ctx context.Context, id string) (*model.SpoolRecord, error) {
	if !slug.Valid(id) {
		return nil, ErrNotFound
	}
	return r.read(r.jsonPath(id))
}

// List returns every readable record in the catalog ordered by id.
func (r *FileSpoolRepository) List(ctx context.Context) ([]model.CatalogEntry, error) {
	entries, err := os.ReadDir(r.spoolsDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.CatalogEntry{}, nil
		}
		return nil, &StorageError{Op: "readdir", Path: r.spoolsDir, Err: err}
	}
	out := make([]model.CatalogEntry, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != ".json" {
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		if !slug.Valid(id) {
			continue
		}
		rec, err := r.read(filepath.Join(r.spoolsDir, name))
		if err != nil {
			log.Printf("[catalog] rid=%s stage=list_skip file=%s err=%v", reqctx.RID(ctx), name, err)
			continue
		}
		out = append(out, model.CatalogEntry{ID: id, Spool: *rec})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *FileSpoolRepository) read(p string) (*model.SpoolRecord, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, &StorageError{Op: "read", Path: p, Err: err}
	}
	var rec model.SpoolRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode %s: %w", p, err)
	}
	return &rec, nil
}

func (r *FileSpoolRepository) jsonPath(id string) string {
	return filepath.Join(r.spoolsDir, id+".json")
}

// removeStaleImages drops images left under the same slug by an earlier
// submission that used a different extension.
func (r *FileSpoolRepository) removeStaleImages(ctx context.Context, id, keepExt string) {
	entries, err := os.ReadDir(r.imagesDir)
	if err != nil {
		log.Printf("[catalog] rid=%s slug=%s stage=stale_scan_fail err=%v", reqctx.RID(ctx), id, err)
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		ext := filepath.Ext(name)
		if entry.IsDir() || ext == keepExt || strings.TrimSuffix(name, ext) != id {
			continue
		}
		if err := os.Remove(filepath.Join(r.imagesDir, name)); err != nil {
			log.Printf("[catalog] rid=%s slug=%s stage=stale_remove_fail file=%s err=%v", reqctx.RID(ctx), id, name, err)
			continue
		}
		log.Printf("[catalog] rid=%s slug=%s stage=stale_removed file=%s", reqctx.RID(ctx), id, name)
	}
}

func (r *FileSpoolRepository) rel(p string) string {
	base, err := filepath.Abs(r.repoRoot)
	if err != nil {
		return filepath.ToSlash(p)
	}
	target, err := filepath.Abs(p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}

func writeTemp(dir, id string, data []byte) (string, error) {
	f, err := os.CreateTemp(dir, "."+id+"-*.tmp")
	if err != nil {
		return "", &StorageError{Op: "create", Path: dir, Err: err}
	}
	name := f.Name()
	fail := func(op string, err error) (string, error) {
		_ = f.Close()
		_ = os.Remove(name)
		return "", &StorageError{Op: op, Path: name, Err: err}
	}
	if _, err := f.Write(data); err != nil {
		return fail("write", err)
	}
	if err := f.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := f.Chmod(0o644); err != nil {
		return fail("chmod", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return "", &StorageError{Op: "close", Path: name, Err: err}
	}
	return name, nil
}
