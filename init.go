package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leighmcculloch/codesync/internal/repository"
)

func newInitCmd(a *app) *cobra.Command {
	var path string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create an empty repository",
		Long: `Create an empty repository with path as its work tree, creating the path if needed.

If a repository already exists at or above the path nothing is changed.
The path defaults to the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				if path != "" {
					return fmt.Errorf("path given both as argument and with --path")
				}
				path = args[0]
			}
			if path == "" {
				path = "."
			}
			return initRepository(a, path, quiet)
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "the path to create a repository at")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print errors")
	return cmd
}

// initRepository creates a repository at path unless one is already
// discoverable from there.
func initRepository(a *app, path string, quiet bool) error {
	out := newPrinter(a.stdout)

	existing, err := repository.Discover(path, true, a.repoOptions()...)
	switch {
	case err == nil:
		defer existing.Close()
		if !quiet {
			out.Printf("Repository already exists at %s\n", out.path(existing.WorkTree()))
		}
		return nil
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrNotARepository):
		a.log.Debug("no repository found, creating one", zap.String("path", path))
	default:
		return err
	}

	repo, err := repository.Bootstrap(path, a.repoOptions()...)
	if err != nil {
		return err
	}
	defer repo.Close()

	if !quiet {
		out.Printf("%s empty repository in %s\n", out.ok("Initialized"), out.path(repo.MetadataRoot()))
	}
	return nil
}
