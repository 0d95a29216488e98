package constants

import (
	"log/slog"
	"math"
	"time"
)

const (
	// EnvLogLevel sets the level of the default slog logger
	EnvLogLevel = "CENSUSKIT_LOG_LEVEL"
	// EnvAPIKey provides the Census API key when it is not passed explicitly
	EnvAPIKey = "CENSUS_API_KEY"
	// EnvDNSLookupMaxParallel limits concurrent DNS lookups made by the API client
	EnvDNSLookupMaxParallel = "CENSUSKIT_DNS_LOOKUP_MAX_PARALLEL"
	// EnvDNSCacheRefreshIntervalSecs controls the DNS cache refresh schedule
	// (0 disables refresh, -1 disables the cache)
	EnvDNSCacheRefreshIntervalSecs = "CENSUSKIT_DNS_CACHE_REFRESH_INTERVAL_SECS"
)

// LogLevelOff disables logging entirely
const LogLevelOff = slog.Level(math.MaxInt)

const (
	// DefaultBaseURL is the root of the Census Data API
	DefaultBaseURL = "https://api.census.gov/data"

	// ACSProfileDataset is the dataset path segment for the ACS 5-year profile tables
	ACSProfileDataset = "acs/acs5/profile"

	// AllCountiesUCGID selects every county in the US
	AllCountiesUCGID = "pseudo(0100000US$0500000)"

	// DefaultRequestTimeout bounds a single API call
	DefaultRequestTimeout = 60 * time.Second

	// DataDir is the relative directory aggregate tables are written to
	DataDir = "data"
)

const (
	// ColumnName is the display label column returned by the API
	ColumnName = "NAME"
	// ColumnGeoid is the stable geographic identifier column
	ColumnGeoid = "geoid"
	// ColumnYear tags each aggregated row with its ACS vintage
	ColumnYear = "CEN_YR"
)
