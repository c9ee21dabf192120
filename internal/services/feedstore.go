package services

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aitbenali/autoparts-backend/internal/platform/logger"
)

// StagedFeed describes one pre-staged fitment feed the admin can trigger by
// name. Separator and baseline year are fixed per feed.
type StagedFeed struct {
	Name         string `yaml:"name"`
	Path         string `yaml:"path"`
	Separator    string `yaml:"separator"`
	BaselineYear int    `yaml:"baseline_year"`
}

type feedFile struct {
	Feeds []StagedFeed `yaml:"feeds"`
}

type FeedRegistry interface {
	Get(name string) (StagedFeed, bool)
	Open(name string) (io.ReadCloser, StagedFeed, error)
	Names() []string
}

type feedRegistry struct {
	log   *logger.Logger
	feeds map[string]StagedFeed
	order []string
}

// NewFeedRegistry loads the staged-feed declarations from a YAML file. An
// empty path yields an empty registry: only direct uploads work then.
func NewFeedRegistry(path string, baseLog *logger.Logger) (FeedRegistry, error) {
	reg := &feedRegistry{
		log:   baseLog.With("service", "FeedRegistry"),
		feeds: map[string]StagedFeed{},
	}
	if path == "" {
		return reg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feed registry %s: %w", path, err)
	}
	var ff feedFile
	if err := yaml.Unmarshal(raw, &ff); err != nil {
		return nil, fmt.Errorf("parse feed registry %s: %w", path, err)
	}
	for _, f := range ff.Feeds {
		if f.Name == "" || f.Path == "" {
			return nil, fmt.Errorf("feed registry %s: every feed needs name and path", path)
		}
		if _, dup := reg.feeds[f.Name]; dup {
			return nil, fmt.Errorf("feed registry %s: duplicate feed %q", path, f.Name)
		}
		reg.feeds[f.Name] = f
		reg.order = append(reg.order, f.Name)
	}
	reg.log.Info("feed registry loaded", "path", path, "feeds", len(reg.feeds))
	return reg, nil
}

func (r *feedRegistry) Get(name string) (StagedFeed, bool) {
	f, ok := r.feeds[name]
	return f, ok
}

func (r *feedRegistry) Open(name string) (io.ReadCloser, StagedFeed, error) {
	f, ok := r.feeds[name]
	if !ok {
		return nil, StagedFeed{}, fmt.Errorf("unknown staged feed %q", name)
	}
	rc, err := os.Open(f.Path)
	if err != nil {
		return nil, StagedFeed{}, fmt.Errorf("open staged feed %q: %w", name, err)
	}
	return rc, f, nil
}

func (r *feedRegistry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
