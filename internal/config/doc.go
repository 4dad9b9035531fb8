// Package config carries the runtime configuration and the analysis rule
// sets: metric labels, year bounds, drop lists, rename maps and the
// include/exclude conditions for each analysis variant. The rule sets are
// configuration-as-data, passed into the generic cleaning, reconciliation
// and pivot functions rather than hard-coded there.
package config
