package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/its-ME-007/adk-web-api/internal/domain"
)

// Store writes one file per saved response under a directory. File names
// carry the agent name and record ID so repeated saves never collide.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("dir is required for file store")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating responses dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) SaveResponse(ctx context.Context, rec *domain.ResponseRecord) error {
	name := fmt.Sprintf("%s_%s.txt", sanitize(rec.AgentName), rec.ID)
	path := filepath.Join(s.dir, name)

	var b strings.Builder
	fmt.Fprintf(&b, "agent: %s\n", rec.AgentName)
	fmt.Fprintf(&b, "session: %s\n", rec.SessionID)
	fmt.Fprintf(&b, "user: %s\n", rec.UserID)
	fmt.Fprintf(&b, "saved_at: %s\n\n", rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
	b.WriteString(rec.Content)
	b.WriteString("\n")

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("file SaveResponse: %w", err)
	}
	return nil
}

// FindLatestByKeyword scans saved files newest-first for a content match.
func (s *Store) FindLatestByKeyword(ctx context.Context, keyword string) (*domain.ResponseRecord, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("file FindLatestByKeyword: %w", err)
	}

	type candidate struct {
		name    string
		modTime int64
	}

	var files []candidate
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, candidate{name: e.Name(), modTime: info.ModTime().UnixNano()})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime > files[j].modTime
	})

	needle := strings.ToLower(keyword)

	for _, f := range files {
		data, err := os.ReadFile(filepath.Join(s.dir, f.name))
		if err != nil {
			continue
		}
		content := string(data)
		if !strings.Contains(strings.ToLower(content), needle) {
			continue
		}

		rec := &domain.ResponseRecord{Content: content}
		if i := strings.LastIndex(f.name, "_"); i > 0 {
			rec.AgentName = f.name[:i]
			rec.ID = domain.ResponseRecordID(strings.TrimSuffix(f.name[i+1:], ".txt"))
		}
		return rec, nil
	}

	return nil, domain.ErrRecordNotFound
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
