package main

import (
	"github.com/spf13/cobra"

	"github.com/leighmcculloch/codesync/internal/repository"
)

func newInfoCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "info [path]",
		Short: "Describe the repository enclosing a path",
		Long:  "Find the repository at or above path (default: the current directory) and print its location and core settings.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			repo, err := repository.Discover(path, true, a.repoOptions()...)
			if err != nil {
				return err
			}
			defer repo.Close()

			return encode(a.stdout, format, describe(repo))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json or yaml")
	return cmd
}

// describe reads what info reports from an opened repository. Settings that
// are missing or malformed are left nil.
func describe(repo *repository.Repository) RepositoryInfo {
	info := RepositoryInfo{
		WorkTree:     repo.WorkTree(),
		MetadataRoot: repo.MetadataRoot(),
	}

	cfg := repo.Config()
	if v, ok, err := cfg.LookupInt(repository.KeyFormatVersion); ok && err == nil {
		info.FormatVersion = &v
	}
	if v, ok, err := cfg.LookupBool(repository.KeyFileMode); ok && err == nil {
		info.FileMode = &v
	}
	if v, ok, err := cfg.LookupBool(repository.KeyBare); ok && err == nil {
		info.Bare = &v
	}
	return info
}
