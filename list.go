package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leighmcculloch/codesync/internal/repository"
)

func newListCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list [path]",
		Short: "List repositories below a path",
		Long:  "Walk path (default: the current directory) and its subdirectories and print every repository found, with the reason it cannot be opened if any.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			listing, err := list(a, path)
			if err != nil {
				return err
			}
			return encode(a.stdout, format, listing)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json or yaml")
	return cmd
}

// list walks start looking for repositories. Directories that cannot be read
// are skipped.
func list(a *app, start string) (*Listing, error) {
	root, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", start, err)
	}
	isDir, err := afero.IsDir(a.fs, root)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", start, err)
	}
	if !isDir {
		return nil, fmt.Errorf("%s is not a directory", start)
	}

	a.log.Debug("searching for repositories", zap.String("root", root))

	found := make(map[string]ListedRepository)
	err = afero.Walk(a.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			a.log.Debug("skipping", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if info.Name() == repository.MetadataDir {
			return filepath.SkipDir
		}

		metadata := filepath.Join(path, repository.MetadataDir)
		if ok, _ := afero.IsDir(a.fs, metadata); !ok {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			relPath = path
		}
		a.log.Debug("found repository", zap.String("path", relPath))

		entry := ListedRepository{Path: relPath}
		repo, err := repository.Open(path, false, a.repoOptions()...)
		if err != nil {
			entry.Error = err.Error()
		} else {
			repo.Close()
		}
		found[relPath] = entry
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", start, err)
	}

	paths := make([]string, 0, len(found))
	for p := range found {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	listing := &Listing{
		Repositories: make([]ListedRepository, 0, len(found)),
	}
	for _, p := range paths {
		listing.Repositories = append(listing.Repositories, found[p])
	}

	a.log.Debug("search finished", zap.Int("count", len(listing.Repositories)))
	return listing, nil
}
