package config

import "time"

// Browsing Constants
const (
	// PageSize is the number of articles shown per page
	PageSize = 50

	// PreferredLevel is selected by default when a loaded catalog has it
	PreferredLevel = "1"
)

// DefaultLevels is offered when a catalog carries no ILR levels at all
var DefaultLevels = []string{"1", "2", "3", "4", "5"}

// Catalog Constants
const (
	// ManifestName is the catalog index mapping languages to record files
	ManifestName = "available_files.json"

	// DefaultDataDir is where local catalog files are read from
	DefaultDataDir = "data"

	// MaxConcurrentFetches limits parallel record file downloads per language
	MaxConcurrentFetches = 4

	// FetchTimeout bounds a single catalog load
	FetchTimeout = 30 * time.Second
)

// Cache Constants
const (
	// CacheKeyPrefix namespaces cached catalog records in Redis
	CacheKeyPrefix = "adam:catalog:"

	// DefaultCacheTTL is how long cached records live
	DefaultCacheTTL = 10 * time.Minute

	// RangeCacheSize bounds the parsed ILR range memo
	RangeCacheSize = 4096
)

// Messaging Constants
const (
	// DefaultCatalogTopic carries catalog-updated events
	DefaultCatalogTopic = "catalog-updates"

	// DefaultGroupID is the consumer group of catalog servers
	DefaultGroupID = "adam-catalog-server"
)
