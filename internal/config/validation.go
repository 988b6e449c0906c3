package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fisty/mcsfix/internal/errors"
)

// markerDecoration is the rune count of an opener without its name or
// fill: "// ", two corners and the spaces around the name.
const markerDecoration = 7

// Validate checks the configuration and returns every problem at once as
// a config error.
func (c *Config) Validate() error {
	vec := &errors.ValidationErrorCollection{}

	if c.Project.Extension == "" {
		vec.AddField("project.extension", c.Project.Extension, "extension cannot be empty",
			"Use the source suffix to process, e.g. \".zig\"")
	} else if !strings.HasPrefix(c.Project.Extension, ".") {
		vec.AddField("project.extension", c.Project.Extension, "extension must start with a dot",
			fmt.Sprintf("Use \".%s\"", c.Project.Extension))
	}

	for _, dir := range c.Project.ExcludeDirs {
		if dir == "" || strings.ContainsAny(dir, `/\`) {
			vec.AddField("project.exclude_dirs", dir, "exclude entries must be plain directory names",
				"Use a name such as \"zig-out\", not a path")
		}
	}

	validateBorder(&c.Border, vec)

	validateURL(vec, "header.repo_url", c.Header.RepoURL)
	validateURL(vec, "header.docs_base", c.Header.DocsBase)
	validateURL(vec, "header.author_url", c.Header.AuthorURL)
	validateURL(vec, "urls.repo_url", c.URLs.RepoURL)
	validateURL(vec, "urls.docs_base", c.URLs.DocsBase)

	for i, rule := range c.Header.Rules {
		if len(rule.Contains) == 0 || rule.Description == "" {
			vec.AddField(fmt.Sprintf("header.rules[%d]", i), rule,
				"rules need at least one contains entry and a description")
		}
	}

	if strings.ContainsAny(c.Names.Keyword, " \t\"") {
		vec.AddField("names.keyword", c.Names.Keyword, "keyword must be a single word")
	}
	if strings.ContainsAny(c.Braces.Keyword, " \t\"") {
		vec.AddField("braces.keyword", c.Braces.Keyword, "keyword must be a single word")
	}

	if vec.HasErrors() {
		return vec.ToMCSError()
	}
	return nil
}

func validateBorder(b *BorderConfig, vec *errors.ValidationErrorCollection) {
	if b.Indent == "" {
		vec.AddField("border.indent", b.Indent, "indent cannot be empty",
			"Use four spaces, the MCS default")
	} else if strings.Trim(b.Indent, " \t") != "" {
		vec.AddField("border.indent", b.Indent, "indent must contain only spaces or tabs")
	}

	longest := 0
	for _, name := range b.KnownSections {
		if len(name) > longest {
			longest = len(name)
		}
	}
	// at least one fill rune on each side of the longest name
	minWidth := markerDecoration + longest + 2
	if b.Width < minWidth {
		vec.AddField("border.width", b.Width,
			fmt.Sprintf("width %d cannot hold section names of length %d", b.Width, longest),
			fmt.Sprintf("Use a width of at least %d", minWidth))
	}
}

func validateURL(vec *errors.ValidationErrorCollection, field, raw string) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		vec.AddField(field, raw, "must be an absolute https URL",
			"Use a value like https://github.com/owner/repo")
	}
}

func wrapUnmarshal(err error) error {
	return errors.WrapConfig(err, "cannot decode configuration")
}
