package service

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/canstudy/tracker/internal/markdown"
	"github.com/canstudy/tracker/internal/model"
)

var ErrGuideNotFound = errors.New("guide not found")

const wordsPerMinute = 200

type guideMeta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Stage       string `yaml:"stage"`
	Order       int    `yaml:"order"`
}

type GuideService struct {
	fsys   fs.FS
	reload bool
	parser *markdown.Parser

	mu     sync.RWMutex
	guides map[string]*model.Guide
	order  []string
}

// NewGuideService serves markdown guides from fsys. With reload set, the
// files are re-read on every call, which is how development picks up edits.
func NewGuideService(fsys fs.FS, reload bool) *GuideService {
	return &GuideService{
		fsys:   fsys,
		reload: reload,
		parser: markdown.NewParser(),
		guides: make(map[string]*model.Guide),
	}
}

func (s *GuideService) LoadGuides() error {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return fmt.Errorf("failed to read guides directory: %w", err)
	}

	guides := make(map[string]*model.Guide)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		slug := strings.TrimSuffix(entry.Name(), ".md")
		guide, err := s.loadGuide(slug)
		if err != nil {
			return fmt.Errorf("failed to load guide %s: %w", slug, err)
		}
		guides[slug] = guide
	}

	order := make([]string, 0, len(guides))
	for slug := range guides {
		order = append(order, slug)
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := guides[order[i]], guides[order[j]]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.Slug < b.Slug
	})

	s.mu.Lock()
	s.guides = guides
	s.order = order
	s.mu.Unlock()
	return nil
}

func (s *GuideService) loadGuide(slug string) (*model.Guide, error) {
	content, err := fs.ReadFile(s.fsys, path.Join(".", slug+".md"))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var meta guideMeta
	html, err := s.parser.Render(content, &meta)
	if err != nil {
		return nil, err
	}

	title := meta.Title
	if title == "" {
		title = cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
	}

	return &model.Guide{
		Title:       title,
		Slug:        slug,
		Description: meta.Description,
		Stage:       meta.Stage,
		Order:       meta.Order,
		ReadTime:    readTime(string(content)),
		Content:     string(content),
		HTMLContent: string(html),
	}, nil
}

func (s *GuideService) ensureLoaded() error {
	s.mu.RLock()
	loaded := len(s.order) > 0
	s.mu.RUnlock()

	if loaded && !s.reload {
		return nil
	}
	return s.LoadGuides()
}

// Guides lists guide summaries without rendered HTML, in display order.
func (s *GuideService) Guides() ([]model.Guide, error) {
	err := s.ensureLoaded()
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	guides := make([]model.Guide, 0, len(s.order))
	for _, slug := range s.order {
		g := *s.guides[slug]
		g.HTMLContent = ""
		guides = append(guides, g)
	}
	return guides, nil
}

func (s *GuideService) Guide(slug string) (*model.Guide, error) {
	err := s.ensureLoaded()
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	guide, ok := s.guides[slug]
	if !ok {
		return nil, ErrGuideNotFound
	}
	g := *guide
	return &g, nil
}

// readTime estimates minutes to read, never less than one.
func readTime(content string) int {
	words := len(strings.Fields(content))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
