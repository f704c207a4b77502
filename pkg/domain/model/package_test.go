package model_test

import (
	"testing"

	"github.com/m-mizutani/depdiff/pkg/domain/model"
)

func TestPackage_Repository(t *testing.T) {
	tests := []struct {
		name      string
		homepage  string
		wantOwner string
		wantRepo  string
		wantOK    bool
	}{
		{
			name:      "plain GitHub URL",
			homepage:  "https://github.com/psf/requests",
			wantOwner: "psf",
			wantRepo:  "requests",
			wantOK:    true,
		},
		{
			name:      "git+ scheme with .git suffix",
			homepage:  "git+https://github.com/pallets/flask.git",
			wantOwner: "pallets",
			wantRepo:  "flask",
			wantOK:    true,
		},
		{
			name:      "deep link into tree",
			homepage:  "https://github.com/encode/httpx/tree/master",
			wantOwner: "encode",
			wantRepo:  "httpx",
			wantOK:    true,
		},
		{
			name:      "www host without scheme",
			homepage:  "www.github.com/tiangolo/fastapi/",
			wantOwner: "tiangolo",
			wantRepo:  "fastapi",
			wantOK:    true,
		},
		{
			name:     "owner only",
			homepage: "https://github.com/psf",
			wantOK:   false,
		},
		{
			name:     "not GitHub",
			homepage: "https://gitlab.com/group/project",
			wantOK:   false,
		},
		{
			name:     "empty",
			homepage: "",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg := &model.Package{Name: "x", CurrentVersion: "1", Homepage: tt.homepage}
			owner, repo, ok := pkg.Repository()
			if ok != tt.wantOK {
				t.Fatalf("Repository() ok = %v, want %v", ok, tt.wantOK)
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("Repository() = %s/%s, want %s/%s", owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}

func TestDecision_String(t *testing.T) {
	tests := []struct {
		name     string
		decision model.Decision
		expected string
	}{
		{
			name:     "compare shortens SHAs",
			decision: model.Compare("0123456789abcdef", "fedcba9876543210"),
			expected: "compare 0123456...fedcba9",
		},
		{
			name:     "missing tag names the side",
			decision: model.SkipMissingTag(model.MissingCurrentTag),
			expected: "tag_not_found (current)",
		},
		{
			name:     "plain skip",
			decision: model.Skip(model.SkipAlreadyLatest),
			expected: "already_latest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.decision.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestLineKind_Text(t *testing.T) {
	for _, kind := range []model.LineKind{model.LineContext, model.LineAdded, model.LineRemoved} {
		text, err := kind.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText() error = %v", err)
		}

		var decoded model.LineKind
		if err := decoded.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", text, err)
		}
		if decoded != kind {
			t.Errorf("UnmarshalText(%q) = %v, want %v", text, decoded, kind)
		}
	}

	var k model.LineKind
	if err := k.UnmarshalText([]byte("moved")); err == nil {
		t.Error("UnmarshalText(moved) should fail")
	}
}
