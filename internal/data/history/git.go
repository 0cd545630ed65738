package history

import (
	"github.com/go-git/go-git/v5"
)

// ResolveCommit returns the abbreviated HEAD commit of the repository that
// contains projectRoot, or "" when there is none.
func ResolveCommit(projectRoot string) string {
	repo, err := git.PlainOpenWithOptions(projectRoot, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	hash := head.Hash().String()
	if len(hash) > 12 {
		hash = hash[:12]
	}
	return hash
}
