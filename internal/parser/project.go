package parser

import (
	"regexp"
	"sort"
	"strings"
)

// Project is one entry of the project directory used to resolve "~name"
// references.
type Project struct {
	ID   string
	Name string
}

// ProjectIndex is an immutable snapshot of the project directory,
// keyed by lowercase name. It is rebuilt wholesale whenever the project
// list is refreshed, so concurrent readers never observe a partial
// update. A nil index matches nothing.
type ProjectIndex struct {
	byName  map[string]Project
	names   []string
	pattern *regexp.Regexp
}

// NewProjectIndex builds an index from a project directory snapshot.
// Projects with empty names are skipped; on duplicate names the last
// entry wins. Returns nil for an empty list.
func NewProjectIndex(projects []Project) *ProjectIndex {
	byName := make(map[string]Project, len(projects))
	for _, p := range projects {
		if p.Name == "" {
			continue
		}
		byName[strings.ToLower(p.Name)] = p
	}
	if len(byName) == 0 {
		return nil
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	// Longest name first, so "work-private" wins over "work" in the
	// alternation. Ties break alphabetically to keep the pattern stable.
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = regexp.QuoteMeta(name)
	}

	return &ProjectIndex{
		byName:  byName,
		names:   names,
		pattern: regexp.MustCompile(`(?i)(^|\s)~(` + strings.Join(quoted, "|") + `)($|\s)`),
	}
}

// Len returns the number of indexed projects.
func (idx *ProjectIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.byName)
}

// Names returns the canonical display names of all indexed projects,
// sorted alphabetically.
func (idx *ProjectIndex) Names() []string {
	if idx == nil {
		return nil
	}
	names := make([]string, 0, len(idx.byName))
	for _, p := range idx.byName {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// extract finds a "~name" reference matching a known project, strips it
// and returns the cleaned string plus the canonical name and id. With no
// index loaded, or no match, s comes back unchanged with empty name/id.
func (idx *ProjectIndex) extract(s string) (cleaned, name, id string) {
	if idx == nil {
		return s, "", ""
	}
	loc := idx.pattern.FindStringSubmatchIndex(s)
	if loc == nil {
		return s, "", ""
	}
	project := idx.byName[strings.ToLower(group(s, loc, 2))]
	return stripSpan(s, loc[4]-1, loc[5]), project.Name, project.ID
}
