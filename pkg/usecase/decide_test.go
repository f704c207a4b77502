package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/depdiff/pkg/domain/model"
	"github.com/m-mizutani/depdiff/pkg/usecase"
)

func TestDecide(t *testing.T) {
	tags := []model.Tag{
		{Name: "2.0.0", CommitSHA: "sha-200"},
		{Name: "1.2.0", CommitSHA: "sha-120"},
		{Name: "v3.0.0", CommitSHA: "sha-v300"},
	}

	tests := []struct {
		name     string
		pkg      model.Package
		tags     []model.Tag
		opts     []usecase.DecideOption
		expected model.Decision
	}{
		{
			name:     "No latest version with matching tags",
			pkg:      model.Package{Name: "foo", CurrentVersion: "1.2.0"},
			tags:     tags,
			expected: model.Skip(model.SkipNoLatestVersion),
		},
		{
			name:     "No latest version without tags",
			pkg:      model.Package{Name: "foo", CurrentVersion: "1.2.0"},
			tags:     nil,
			expected: model.Skip(model.SkipNoLatestVersion),
		},
		{
			name:     "Already latest",
			pkg:      model.Package{Name: "foo", CurrentVersion: "2.0.0", LatestVersion: "2.0.0"},
			tags:     tags,
			expected: model.Skip(model.SkipAlreadyLatest),
		},
		{
			name:     "Both tags found",
			pkg:      model.Package{Name: "foo", CurrentVersion: "1.2.0", LatestVersion: "2.0.0"},
			tags:     tags,
			expected: model.Compare("sha-120", "sha-200"),
		},
		{
			name:     "Latest tag missing",
			pkg:      model.Package{Name: "foo", CurrentVersion: "1.2.0", LatestVersion: "2.1.0"},
			tags:     tags,
			expected: model.SkipMissingTag(model.MissingLatestTag),
		},
		{
			name:     "Current tag missing",
			pkg:      model.Package{Name: "foo", CurrentVersion: "1.1.0", LatestVersion: "2.0.0"},
			tags:     tags,
			expected: model.SkipMissingTag(model.MissingCurrentTag),
		},
		{
			name:     "Both tags missing",
			pkg:      model.Package{Name: "foo", CurrentVersion: "0.1", LatestVersion: "0.2"},
			tags:     tags,
			expected: model.SkipMissingTag(model.MissingBothTags),
		},
		{
			name:     "Prefixed tag is ignored by default",
			pkg:      model.Package{Name: "foo", CurrentVersion: "2.0.0", LatestVersion: "3.0.0"},
			tags:     tags,
			expected: model.SkipMissingTag(model.MissingLatestTag),
		},
		{
			name:     "Prefixed tag is accepted when configured",
			pkg:      model.Package{Name: "foo", CurrentVersion: "2.0.0", LatestVersion: "3.0.0"},
			tags:     tags,
			opts:     []usecase.DecideOption{usecase.WithTagPrefixes("v")},
			expected: model.Compare("sha-200", "sha-v300"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := usecase.Decide(tt.pkg, tt.tags, tt.opts...)
			gt.V(t, got).Equal(tt.expected)

			// Same inputs always produce the same decision
			gt.V(t, usecase.Decide(tt.pkg, tt.tags, tt.opts...)).Equal(got)
		})
	}
}

func TestDecide_ExactMatchWinsOverPrefix(t *testing.T) {
	tags := []model.Tag{
		{Name: "v1.0", CommitSHA: "prefixed"},
		{Name: "1.0", CommitSHA: "exact"},
		{Name: "0.9", CommitSHA: "old"},
	}
	pkg := model.Package{Name: "foo", CurrentVersion: "0.9", LatestVersion: "1.0"}

	got := usecase.Decide(pkg, tags, usecase.WithTagPrefixes("v"))
	gt.True(t, got.IsCompare())
	gt.V(t, got.From).Equal("old")
	gt.V(t, got.To).Equal("exact")
}
