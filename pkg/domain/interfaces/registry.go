package interfaces

import "context"

// PackageInfo is the registry metadata needed to resolve a package's upstream
type PackageInfo struct {
	LatestVersion string
	Homepage      string // Source repository URL; empty when the registry lists none
}

// Registry defines package registry lookups
type Registry interface {
	// Lookup fetches the latest release and source repository of a package
	Lookup(ctx context.Context, name string) (*PackageInfo, error)
}
