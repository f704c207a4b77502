package model

// SkipReason explains why no comparison is made for a package
type SkipReason string

const (
	SkipNoLatestVersion SkipReason = "no_latest_version"
	SkipAlreadyLatest   SkipReason = "already_latest"
	SkipTagNotFound     SkipReason = "tag_not_found"
)

// MissingTag names which side of a comparison had no matching tag
type MissingTag string

const (
	MissingCurrentTag MissingTag = "current"
	MissingLatestTag  MissingTag = "latest"
	MissingBothTags   MissingTag = "both"
)

// Decision is the outcome of evaluating one package against its upstream tags.
// Exactly one of Skip or Compare is meaningful, selected by IsCompare.
type Decision struct {
	Reason SkipReason `json:"skip_reason,omitempty"`
	Which  MissingTag `json:"missing_tag,omitempty"` // Set only for SkipTagNotFound
	From   string     `json:"from,omitempty"`        // Commit SHA of the current version tag
	To     string     `json:"to,omitempty"`          // Commit SHA of the latest version tag
}

// Skip builds a skip decision
func Skip(reason SkipReason) Decision {
	return Decision{Reason: reason}
}

// SkipMissingTag builds a skip decision for an unmatched tag
func SkipMissingTag(which MissingTag) Decision {
	return Decision{Reason: SkipTagNotFound, Which: which}
}

// Compare builds a decision to diff two commits
func Compare(from, to string) Decision {
	return Decision{From: from, To: to}
}

// IsCompare reports whether the decision asks for a comparison
func (d Decision) IsCompare() bool {
	return d.Reason == ""
}

// String renders the decision for logs and text reports
func (d Decision) String() string {
	switch d.Reason {
	case "":
		return "compare " + shortSHA(d.From) + "..." + shortSHA(d.To)
	case SkipTagNotFound:
		return string(d.Reason) + " (" + string(d.Which) + ")"
	default:
		return string(d.Reason)
	}
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
