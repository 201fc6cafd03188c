package site

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gomdsite/pkg/config"
	"github.com/yaklabco/gomdsite/pkg/fsutil"
)

// Artifact is a site-level file, addressed relative to the output root with
// forward slashes.
type Artifact struct {
	Path    string
	Content []byte
}

// Artifact paths.
const (
	PathPostsJS   = "data/posts-data.js"
	PathPostsJSON = "data/posts.json"
	PathFeed      = "feed.xml"
	PathSitemap   = "sitemap.xml"
	PathRobots    = "robots.txt"
	PathTOCJS     = "scripts/toc.js"
)

// ArtifactOptions configures Artifacts.
type ArtifactOptions struct {
	Categories  []config.Category
	BaseURL     string
	SiteTitle   string
	Description string
	Language    string

	// TOCScript is written to scripts/toc.js when non-empty.
	TOCScript []byte
}

// Artifacts renders the index files for posts, plus the feed, sitemap and
// robots.txt when a base URL is configured.
func Artifacts(posts []Post, opts ArtifactOptions) ([]Artifact, error) {
	index := NewIndex(posts, opts.Categories)

	js, err := index.JS()
	if err != nil {
		return nil, err
	}
	data, err := index.JSON()
	if err != nil {
		return nil, err
	}

	artifacts := []Artifact{
		{Path: PathPostsJS, Content: js},
		{Path: PathPostsJSON, Content: data},
	}

	if len(opts.TOCScript) > 0 {
		artifacts = append(artifacts, Artifact{Path: PathTOCJS, Content: opts.TOCScript})
	}

	if opts.BaseURL == "" {
		return artifacts, nil
	}

	feed, err := Feed(posts, FeedOptions{
		BaseURL:     opts.BaseURL,
		Title:       opts.SiteTitle,
		Description: opts.Description,
		Language:    opts.Language,
	})
	if err != nil {
		return nil, err
	}
	sitemap, err := Sitemap(posts, opts.BaseURL)
	if err != nil {
		return nil, err
	}

	return append(artifacts,
		Artifact{Path: PathFeed, Content: feed},
		Artifact{Path: PathSitemap, Content: sitemap},
		Artifact{Path: PathRobots, Content: Robots(opts.BaseURL)},
	), nil
}

// WriteResult reports what happened to one artifact.
type WriteResult struct {
	Path    string
	Bytes   int
	Written bool
}

// WriteArtifacts writes artifacts under root concurrently. Files whose
// content is unchanged are left alone. Results are in artifact order. With
// dryRun nothing touches the disk and every result reports Written false.
func WriteArtifacts(ctx context.Context, root string, artifacts []Artifact, dryRun bool) ([]WriteResult, error) {
	results := make([]WriteResult, len(artifacts))
	group, groupCtx := errgroup.WithContext(ctx)

	for i, artifact := range artifacts {
		results[i] = WriteResult{Path: artifact.Path, Bytes: len(artifact.Content)}
		if dryRun {
			continue
		}

		group.Go(func() error {
			target := filepath.Join(root, filepath.FromSlash(artifact.Path))
			written, err := fsutil.WriteAtomicIfChanged(groupCtx, target, artifact.Content, fsutil.DefaultFileMode)
			if err != nil {
				return fmt.Errorf("write %s: %w", artifact.Path, err)
			}
			results[i].Written = written
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return results, err
	}

	return results, nil
}
