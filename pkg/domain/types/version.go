package types

// Version is the application version, overwritten at build time with -ldflags
var Version = "dev"

// ServiceName is used for health reports and the CLI name
const ServiceName = "depdiff"
