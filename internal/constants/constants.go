// Package constants provides a centralized location for all configuration
// values and magic numbers used throughout refbot.
package constants

import "time"

// Home repository defaults
const (
	// DefaultHomeOwner is the organization assumed when a reference
	// omits its owner.
	DefaultHomeOwner = "immich-app"

	// DefaultHomeRepo is the repository assumed when a reference omits
	// its repository.
	DefaultHomeRepo = "immich"

	// DefaultMinBareNumber is the smallest number a bare "#N" reference
	// may carry before it is treated as ordinary chat text.
	DefaultMinBareNumber = 1000
)

// Reference resolution constants
const (
	// DefaultWorkers bounds the number of concurrent issue lookups for a
	// single message.
	DefaultWorkers = 8

	// MaxReferenceDigits caps the digits accepted in a reference number.
	MaxReferenceDigits = 9
)

// Autocomplete constants
const (
	// MaxAutocompleteChoices is the maximum number of choices a chat
	// platform accepts for one autocomplete response.
	MaxAutocompleteChoices = 25

	// MaxChoiceNameLength is the maximum number of characters in a choice name.
	MaxChoiceNameLength = 100
)

// Metric labels and units
const (
	// StarsLabel prefixes star count messages.
	StarsLabel = "Stars ⭐"

	// StarsUnit names stars in delta clauses and error messages.
	StarsUnit = "stars"

	// ForksLabel prefixes fork count messages.
	ForksLabel = "Forks"

	// ForksUnit names forks in delta clauses and error messages.
	ForksUnit = "forks"
)

// Rate limiting constants
const (
	// RateLimitLowWatermark is the threshold below which rate limit
	// warnings are logged.
	RateLimitLowWatermark = 100
)

// HTTP server defaults
const (
	// DefaultServerAddr is the listen address of the webhook server.
	DefaultServerAddr = ":8080"

	// DefaultReadTimeout bounds reading a webhook request.
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout bounds writing a webhook response. Lookups for a
	// large message fan out to the GitHub API, so it is generous.
	DefaultWriteTimeout = 30 * time.Second

	// ShutdownTimeout is how long in-flight requests get to finish on
	// SIGINT/SIGTERM.
	ShutdownTimeout = 5 * time.Second
)

// Link mode constants
const (
	// LinkModeAPI resolves references through the GitHub API.
	LinkModeAPI = "api"

	// LinkModeStatic builds reference URLs without calling the API.
	LinkModeStatic = "static"
)
