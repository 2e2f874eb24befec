// Package group partitions files into groups of identical content.
//
// Each group keeps its members in insertion order; the first member is the
// representative that every later file is compared against. Byte equality
// is transitive, so comparing against the representative alone is enough.
package group

import (
	"context"
	"fmt"
	"sort"

	"github.com/sdejongh/cmpgroups/pkg/compare"
	"github.com/sdejongh/cmpgroups/pkg/logging"
	"github.com/sdejongh/cmpgroups/pkg/storage"
)

// Group is a non-empty, insertion-ordered list of identical files
type Group struct {
	Files []string
}

// Representative returns the member used for all comparisons
func (g *Group) Representative() string {
	return g.Files[0]
}

// Len returns the number of member files
func (g *Group) Len() int {
	return len(g.Files)
}

// Collection is the ordered result of grouping. Its order is fixed once
// Build returns.
type Collection struct {
	Groups    []*Group
	FileCount int
}

// Len returns the number of groups
func (c *Collection) Len() int {
	return len(c.Groups)
}

// Last returns the highest valid group index, or -1 when empty
func (c *Collection) Last() int {
	return len(c.Groups) - 1
}

// InitialBase returns the index of the largest group, the lowest index
// winning ties. Returns 0 for an empty collection.
func (c *Collection) InitialBase() int {
	base := 0
	for i, g := range c.Groups {
		if g.Len() > c.Groups[base].Len() {
			base = i
		}
	}
	return base
}

// FileAccessError reports an input file that cannot be read
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

type buildOptions struct {
	backend  storage.Backend
	progress func(done, total int)
	logger   logging.Logger
}

// Option configures Build
type Option func(*buildOptions)

// WithBackend sets the backend used to check that inputs are readable
func WithBackend(backend storage.Backend) Option {
	return func(o *buildOptions) { o.backend = backend }
}

// WithProgress sets a callback invoked after each file is placed
func WithProgress(fn func(done, total int)) Option {
	return func(o *buildOptions) { o.progress = fn }
}

// WithLogger sets the logger receiving placement events
func WithLogger(logger logging.Logger) Option {
	return func(o *buildOptions) { o.logger = logger }
}

// Build groups files by content using cmp.
//
// All files are checked readable before the first comparison; any
// unreadable file or comparator failure aborts the whole build and no
// partial collection is returned. Groups are returned sorted by descending
// size, keeping discovery order between groups of equal size.
func Build(ctx context.Context, files []string, cmp compare.Comparator, opts ...Option) (*Collection, error) {
	o := buildOptions{logger: logging.NewNullLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.backend == nil {
		local, err := storage.NewLocal("")
		if err != nil {
			return nil, err
		}
		o.backend = local
	}

	for _, path := range files {
		if err := checkReadable(ctx, o.backend, path); err != nil {
			return nil, err
		}
	}

	var groups []*Group
	for i, path := range files {
		placed := false
		for gi, g := range groups {
			result, err := cmp.Compare(ctx, path, g.Representative())
			if err != nil {
				o.logger.Error(ctx, "comparison failed", err, logging.Fields{"file": path, "representative": g.Representative()})
				return nil, err
			}
			if result.Result == compare.Same {
				g.Files = append(g.Files, path)
				placed = true
				o.logger.Debug(ctx, "file joined group", logging.Fields{"file": path, "group": gi})
				break
			}
		}

		if !placed {
			groups = append(groups, &Group{Files: []string{path}})
			o.logger.Debug(ctx, "new group", logging.Fields{"file": path, "group": len(groups) - 1})
		}

		if o.progress != nil {
			o.progress(i+1, len(files))
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Len() > groups[j].Len()
	})

	coll := &Collection{Groups: groups, FileCount: len(files)}
	o.logger.Info(ctx, "grouping complete", logging.Fields{
		"groups":     coll.Len(),
		"files":      coll.FileCount,
		"comparator": cmp.Name(),
	})
	return coll, nil
}

func checkReadable(ctx context.Context, backend storage.Backend, path string) error {
	rc, err := backend.Read(ctx, path)
	if err != nil {
		return &FileAccessError{Path: path, Err: err}
	}
	rc.Close()
	return nil
}
