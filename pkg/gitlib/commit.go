package gitlib

import (
	"fmt"
	"time"

	git2go "github.com/libgit2/git2go/v34"
)

// Signature is the author or committer identity recorded on a commit.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// Commit wraps a libgit2 commit.
type Commit struct {
	commit *git2go.Commit
}

// Hash returns the commit hash.
func (c *Commit) Hash() Hash {
	return HashFromOid(c.commit.Id())
}

// Author returns the commit author. A commit without an author record
// yields the zero Signature.
func (c *Commit) Author() Signature {
	sig := c.commit.Author()
	if sig == nil {
		return Signature{}
	}

	return Signature{
		Name:  sig.Name,
		Email: sig.Email,
		When:  sig.When,
	}
}

// Summary returns the first paragraph of the message, collapsed to one line.
func (c *Commit) Summary() string {
	return c.commit.Summary()
}

// Tree returns the tree associated with this commit.
func (c *Commit) Tree() (*Tree, error) {
	tree, err := c.commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("get commit tree: %w", err)
	}

	return &Tree{tree: tree}, nil
}

// Free releases the commit resources.
func (c *Commit) Free() {
	if c.commit != nil {
		c.commit.Free()
		c.commit = nil
	}
}
