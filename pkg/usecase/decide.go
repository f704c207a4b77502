package usecase

import "github.com/m-mizutani/depdiff/pkg/domain/model"

type decideConfig struct {
	tagPrefixes []string
}

// DecideOption customizes tag matching in Decide
type DecideOption func(*decideConfig)

// WithTagPrefixes also accepts tags named prefix+version (e.g. "v1.2.0") when
// no tag matches the version exactly. Prefixes are tried in order.
func WithTagPrefixes(prefixes ...string) DecideOption {
	return func(c *decideConfig) {
		c.tagPrefixes = append(c.tagPrefixes, prefixes...)
	}
}

// Decide selects the pair of commits to compare for a package. It performs no
// I/O and never fails; skips are ordinary outcomes.
func Decide(pkg model.Package, tags []model.Tag, opts ...DecideOption) model.Decision {
	var cfg decideConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if !pkg.HasLatestVersion() {
		return model.Skip(model.SkipNoLatestVersion)
	}
	if pkg.LatestVersion == pkg.CurrentVersion {
		return model.Skip(model.SkipAlreadyLatest)
	}

	latest, latestOK := findTag(tags, pkg.LatestVersion, cfg.tagPrefixes)
	current, currentOK := findTag(tags, pkg.CurrentVersion, cfg.tagPrefixes)

	switch {
	case !latestOK && !currentOK:
		return model.SkipMissingTag(model.MissingBothTags)
	case !latestOK:
		return model.SkipMissingTag(model.MissingLatestTag)
	case !currentOK:
		return model.SkipMissingTag(model.MissingCurrentTag)
	}

	return model.Compare(current.CommitSHA, latest.CommitSHA)
}

func findTag(tags []model.Tag, version string, prefixes []string) (model.Tag, bool) {
	if tag, ok := findTagByName(tags, version); ok {
		return tag, true
	}
	for _, prefix := range prefixes {
		if tag, ok := findTagByName(tags, prefix+version); ok {
			return tag, true
		}
	}
	return model.Tag{}, false
}

func findTagByName(tags []model.Tag, name string) (model.Tag, bool) {
	for _, tag := range tags {
		if tag.Name == name {
			return tag, true
		}
	}
	return model.Tag{}, false
}
