// Package publish versions published storefronts in per-shop git
// repositories. Every publish is a commit of the rendered artifacts
// (storefront.json plus the compiled theme.css), which gives the publish
// timeline, point-in-time reads, and rollback for free.
package publish

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"storeforge/api/internal/editor"
	"storeforge/api/internal/tokens"
)

const (
	documentFile = "storefront.json"
	themeFile    = "theme.css"
	mainBranch   = "main"
)

// ErrNotPublished is returned when a shop has no publish history yet.
var ErrNotPublished = errors.New("shop has never been published")

// Info describes one publish in the timeline.
type Info struct {
	Hash        string    `json:"hash"`
	Message     string    `json:"message"`
	Author      string    `json:"author"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Service versions published documents under baseDir, one repository per
// shop. Repo access is serialized per shop id.
type Service struct {
	baseDir string
	lockMu  sync.Mutex
	locks   map[string]*sync.Mutex
}

func New(baseDir string) *Service {
	return &Service{
		baseDir: baseDir,
		locks:   make(map[string]*sync.Mutex),
	}
}

// Publish commits the document as the new live version, initializing the
// shop's repository on first publish.
func (s *Service) Publish(shopID string, doc editor.ShopSettings, author, message string) (Info, error) {
	lock := s.shopLock(shopID)
	lock.Lock()
	defer lock.Unlock()

	repo, err := s.openOrInit(shopID)
	if err != nil {
		return Info{}, err
	}

	hash, err := s.commit(repo, doc, author, message)
	if err != nil {
		return Info{}, err
	}

	commitObj, err := repo.CommitObject(hash)
	if err != nil {
		return Info{}, fmt.Errorf("read commit object: %w", err)
	}
	return toInfo(commitObj), nil
}

// Live returns the currently published document and its publish info.
func (s *Service) Live(shopID string) (editor.ShopSettings, Info, error) {
	lock := s.shopLock(shopID)
	lock.Lock()
	defer lock.Unlock()

	repo, err := git.PlainOpen(s.repoPath(shopID))
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return editor.ShopSettings{}, Info{}, ErrNotPublished
		}
		return editor.ShopSettings{}, Info{}, fmt.Errorf("open repo: %w", err)
	}

	ref, err := repo.Reference(plumbing.NewBranchReferenceName(mainBranch), true)
	if err != nil {
		return editor.ShopSettings{}, Info{}, fmt.Errorf("resolve %s: %w", mainBranch, err)
	}
	commitObj, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return editor.ShopSettings{}, Info{}, fmt.Errorf("load commit object: %w", err)
	}

	doc, err := readDocumentFromCommit(commitObj)
	if err != nil {
		return editor.ShopSettings{}, Info{}, err
	}
	return doc, toInfo(commitObj), nil
}

// GetByHash returns the document as published at the given commit. Short
// hashes are resolved.
func (s *Service) GetByHash(shopID, hash string) (editor.ShopSettings, Info, error) {
	lock := s.shopLock(shopID)
	lock.Lock()
	defer lock.Unlock()

	repo, err := git.PlainOpen(s.repoPath(shopID))
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return editor.ShopSettings{}, Info{}, ErrNotPublished
		}
		return editor.ShopSettings{}, Info{}, fmt.Errorf("open repo: %w", err)
	}

	resolvedHash, err := resolveHash(repo, hash)
	if err != nil {
		return editor.ShopSettings{}, Info{}, err
	}
	commitObj, err := repo.CommitObject(resolvedHash)
	if err != nil {
		return editor.ShopSettings{}, Info{}, fmt.Errorf("read commit %s: %w", hash, err)
	}

	doc, err := readDocumentFromCommit(commitObj)
	if err != nil {
		return editor.ShopSettings{}, Info{}, err
	}
	return doc, toInfo(commitObj), nil
}

// History lists publishes, newest first. limit <= 0 means all.
func (s *Service) History(shopID string, limit int) ([]Info, error) {
	lock := s.shopLock(shopID)
	lock.Lock()
	defer lock.Unlock()

	repo, err := git.PlainOpen(s.repoPath(shopID))
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return []Info{}, nil
		}
		return nil, fmt.Errorf("open repo: %w", err)
	}

	ref, err := repo.Reference(plumbing.NewBranchReferenceName(mainBranch), true)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", mainBranch, err)
	}

	iter, err := repo.Log(&git.LogOptions{From: ref.Hash()})
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	defer iter.Close()

	items := make([]Info, 0, limit)
	count := 0
	err = iter.ForEach(func(commitObj *object.Commit) error {
		items = append(items, toInfo(commitObj))
		count++
		if limit > 0 && count >= limit {
			return io.EOF
		}
		return nil
	})
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("iterate log: %w", err)
	}
	return items, nil
}

func (s *Service) repoPath(shopID string) string {
	return filepath.Join(s.baseDir, shopID)
}

func (s *Service) shopLock(shopID string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	lock, ok := s.locks[shopID]
	if ok {
		return lock
	}
	lock = &sync.Mutex{}
	s.locks[shopID] = lock
	return lock
}

func (s *Service) openOrInit(shopID string) (*git.Repository, error) {
	path := s.repoPath(shopID)
	repo, err := git.PlainOpen(path)
	if err == nil {
		return repo, nil
	}
	if !errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("open repo: %w", err)
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create repo dir: %w", err)
	}
	repo, err = git.PlainInit(path, false)
	if err != nil {
		return nil, fmt.Errorf("init repo: %w", err)
	}
	return repo, nil
}

func (s *Service) commit(repo *git.Repository, doc editor.ShopSettings, author, message string) (plumbing.Hash, error) {
	worktree, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("open worktree: %w", err)
	}

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("marshal document: %w", err)
	}

	repoRoot := worktree.Filesystem.Root()
	if err := os.WriteFile(filepath.Join(repoRoot, documentFile), append(payload, '\n'), 0o644); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("write %s: %w", documentFile, err)
	}
	css := tokens.Compile(doc.Theme).CSS(":root")
	if err := os.WriteFile(filepath.Join(repoRoot, themeFile), []byte(css), 0o644); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("write %s: %w", themeFile, err)
	}

	if _, err := worktree.Add(documentFile); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("git add %s: %w", documentFile, err)
	}
	if _, err := worktree.Add(themeFile); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("git add %s: %w", themeFile, err)
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  author,
			Email: fmt.Sprintf("%s@storeforge.local", sanitizeEmail(author)),
			When:  time.Now(),
		},
	})
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("commit publish: %w", err)
	}

	if err := repo.Storer.SetReference(plumbing.NewHashReference(plumbing.NewBranchReferenceName(mainBranch), hash)); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("set %s ref: %w", mainBranch, err)
	}
	if err := repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName(mainBranch))); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("set HEAD: %w", err)
	}
	return hash, nil
}

func readDocumentFromCommit(commitObj *object.Commit) (editor.ShopSettings, error) {
	file, err := commitObj.File(documentFile)
	if err != nil {
		return editor.ShopSettings{}, fmt.Errorf("load %s from commit: %w", documentFile, err)
	}
	reader, err := file.Reader()
	if err != nil {
		return editor.ShopSettings{}, fmt.Errorf("open document reader: %w", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return editor.ShopSettings{}, fmt.Errorf("read document bytes: %w", err)
	}

	var doc editor.ShopSettings
	if err := json.Unmarshal(raw, &doc); err != nil {
		return editor.ShopSettings{}, fmt.Errorf("decode published document: %w", err)
	}
	return doc, nil
}

func toInfo(commitObj *object.Commit) Info {
	return Info{
		Hash:        commitObj.Hash.String()[:7],
		Message:     commitObj.Message,
		Author:      commitObj.Author.Name,
		PublishedAt: commitObj.Author.When,
	}
}

func sanitizeEmail(input string) string {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			out = append(out, r)
			continue
		}
		if r == ' ' || r == '-' || r == '_' {
			out = append(out, '.')
		}
	}
	if len(out) == 0 {
		return "merchant"
	}
	return string(out)
}

func resolveHash(repo *git.Repository, hash string) (plumbing.Hash, error) {
	if len(hash) == 40 {
		return plumbing.NewHash(hash), nil
	}
	resolved, err := repo.ResolveRevision(plumbing.Revision(hash))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolve hash %s: %w", hash, err)
	}
	return *resolved, nil
}
