package model

// GeoInfo describes geographical / provider information associated
// with an IP. Fields are human-readable strings for reporting.
type GeoInfo struct {
	Country string
	City    string
	ISP     string
}

// IPResolver looks up local geo data for an IP. Implemented by the
// geo package over MaxMind databases; nil disables enrichment.
type IPResolver interface {
	Lookup(ip string) (GeoInfo, error)
}

// RunConfig carries the per-run knobs the lookup runner needs.
type RunConfig struct {
	QueryFlags  string // default flags for targets without their own
	Concurrency int
	Resolver    IPResolver
}
