//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of calc embedded at build time.
var Version = strings.TrimSpace(version)

const (
	// Name is the canonical command identifier. It appears in help text and
	// default config paths.
	Name = "calc"
	// Description is a short summary used in help output.
	Description = "Infix arithmetic and logic expression evaluator"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
