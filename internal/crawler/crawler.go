package crawler

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Crawler finds Java sources under a set of paths.
type Crawler struct {
	ignored []string
	ext     string
}

// NewCrawler creates a new crawler instance.
func NewCrawler() *Crawler {
	return &Crawler{
		ignored: []string{".git", ".idea", ".gradle", "node_modules", "target", "build", "out"},
		ext:     ".java",
	}
}

// Walk calls onFile for every source file under root. A root that is itself
// a file is passed through when it has the right extension.
func (c *Crawler) Walk(root string, onFile func(path string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip ignored directories
		if d.IsDir() {
			if path != root {
				for _, ign := range c.ignored {
					if d.Name() == ign {
						return filepath.SkipDir
					}
				}
			}
			return nil
		}

		if !strings.EqualFold(filepath.Ext(d.Name()), c.ext) {
			return nil
		}
		return onFile(path)
	})
}

// Collect walks every root and returns the sorted, de-duplicated file list.
func (c *Crawler) Collect(roots ...string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			return nil, fmt.Errorf("scan %s: %w", root, err)
		}
		err := c.Walk(root, func(path string) error {
			clean := filepath.Clean(path)
			if !seen[clean] {
				seen[clean] = true
				files = append(files, clean)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", root, err)
		}
	}
	sort.Strings(files)
	return files, nil
}
