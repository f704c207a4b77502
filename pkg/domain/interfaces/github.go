package interfaces

import (
	"context"

	"github.com/m-mizutani/depdiff/pkg/domain/model"
)

// SourceHost defines operations against the hosting service of upstream repositories
type SourceHost interface {
	// ListTags returns every tag of a repository
	ListTags(ctx context.Context, owner, repo string) ([]model.Tag, error)

	// Compare returns the files changed between two commits, base...head
	Compare(ctx context.Context, owner, repo, base, head string) ([]model.ChangedFile, error)
}
