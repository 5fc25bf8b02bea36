// Copyright Crestline Operations Inc., 2026. All rights reserved.

package types

// Intelligence store capacity bounds. Runtime capacity changes outside
// this range are clamped, never rejected.
const (
	MinCapacity     = 100
	MaxCapacity     = 5000
	DefaultCapacity = 1000
)

// IntelligenceConfig holds settings for the intelligence index.
type IntelligenceConfig struct {
	// DataDir is the base directory for durable state (contains index/,
	// records/).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// Capacity is the maximum number of indexed items retained. Values
	// outside [MinCapacity, MaxCapacity] are clamped.
	Capacity int `json:"capacity" yaml:"capacity"`

	// MaxResults is the default maximum number of query results (default 5).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// MinScore is the default minimum relevance score for query results
	// (default 1).
	MinScore int `json:"min_score" yaml:"min_score"`
}

// RecordsConfig holds settings for the records store (knowledge documents
// and issues).
type RecordsConfig struct {
	// DataDir is the base directory for durable state (contains index/,
	// records/).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxExport limits how many rows an export writes. Zero exports all.
	MaxExport int `json:"max_export,omitempty" yaml:"max_export,omitempty"`
}

// Config groups all opsbrain configuration.
type Config struct {
	Intelligence IntelligenceConfig `json:"intelligence" yaml:"intelligence"`
	Records      RecordsConfig      `json:"records" yaml:"records"`
}

// ClampCapacity returns n forced into [MinCapacity, MaxCapacity], with the
// default substituted for a zero or negative value.
func ClampCapacity(n int) int {
	switch {
	case n <= 0:
		return DefaultCapacity
	case n < MinCapacity:
		return MinCapacity
	case n > MaxCapacity:
		return MaxCapacity
	default:
		return n
	}
}
