// Package gitinfo reads HEAD metadata of the repository enclosing a site.
package gitinfo

import (
	"errors"
	"time"

	"github.com/go-git/go-git/v5"
)

// Info describes the commit checked out in the working directory.
type Info struct {
	Commit string
	Short  string
	Branch string
	Date   time.Time
}

// Map returns the metadata exposed to templates as site.git.
func (i Info) Map() map[string]any {
	return map[string]any{
		"commit": i.Commit,
		"short":  i.Short,
		"branch": i.Branch,
		"date":   i.Date,
	}
}

// Read opens the repository containing dir and resolves HEAD. ok is false
// when dir is not inside a git repository or HEAD is unborn.
func Read(dir string) (info Info, ok bool, err error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return Info{}, false, nil
	}
	if err != nil {
		return Info{}, false, err
	}

	head, err := repo.Head()
	if err != nil {
		// Fresh repositories have no HEAD commit yet.
		return Info{}, false, nil
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return Info{}, false, err
	}

	hash := head.Hash().String()
	info = Info{
		Commit: hash,
		Short:  hash[:8],
		Date:   commit.Committer.When.UTC(),
	}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}
	return info, true, nil
}
