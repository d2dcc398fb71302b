package main

// RepositoryInfo describes an opened repository
type RepositoryInfo struct {
	WorkTree      string `json:"work_tree" yaml:"work_tree"`
	MetadataRoot  string `json:"metadata_root" yaml:"metadata_root"`
	FormatVersion *int   `json:"repository_format_version" yaml:"repository_format_version"`
	FileMode      *bool  `json:"filemode" yaml:"filemode"`
	Bare          *bool  `json:"bare" yaml:"bare"`
}

// ListedRepository is a repository found below the listed directory
type ListedRepository struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Listing represents every repository found by list
type Listing struct {
	Repositories []ListedRepository `json:"repositories" yaml:"repositories"`
}
