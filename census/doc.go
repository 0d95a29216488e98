// Package census fetches county-level data from the Census Data API
// (ACS 5-year profile tables).
//
// A [Client] performs one synchronous GET per year. [Client.FetchCounties]
// returns one row per US county for a single vintage; [Client.FetchCountyRange]
// aggregates an inclusive year range into a single table sorted by
// (geoid, CEN_YR). Variable codes are listed in the profile variable catalog,
// e.g. https://api.census.gov/data/2021/acs/acs5/profile/variables.html
//
// Failures are reported as [TransportError] (the HTTP call failed) or
// [RemoteRequestError] (the API rejected the request inside a successful
// response). Neither is retried.
package census
