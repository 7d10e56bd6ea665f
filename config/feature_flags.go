package config

import (
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// FeatureFlags holds console behaviour toggles.
type FeatureFlags struct {
	mu       sync.RWMutex
	features map[string]*Feature
}

// Feature represents a single feature flag.
type Feature struct {
	Name        string
	Description string
	Enabled     bool
}

// Predefined feature flag names.
const (
	FeatureConfirmDelete    = "console.confirm_delete"     // ask s/N before deleting
	FeaturePauseAfterAction = "console.pause_after_action" // wait for Enter after each action
	FeatureColorOutput      = "console.color_output"       // status markers in front of messages
	FeatureLevelCache       = "cache.levels"               // read-through Redis cache for levels
)

// LoadFeatureFlags loads feature flags from environment variables.
func LoadFeatureFlags() *FeatureFlags {
	ff := &FeatureFlags{
		features: make(map[string]*Feature),
	}

	ff.initializeDefaults()
	ff.loadFromEnvironment()

	return ff
}

func (ff *FeatureFlags) initializeDefaults() {
	ff.features[FeatureConfirmDelete] = &Feature{
		Name:        FeatureConfirmDelete,
		Description: "Ask for confirmation before deleting a record",
		Enabled:     true,
	}

	ff.features[FeaturePauseAfterAction] = &Feature{
		Name:        FeaturePauseAfterAction,
		Description: "Wait for Enter before redrawing the menu",
		Enabled:     false,
	}

	ff.features[FeatureColorOutput] = &Feature{
		Name:        FeatureColorOutput,
		Description: "Prefix console messages with status markers",
		Enabled:     true,
	}

	ff.features[FeatureLevelCache] = &Feature{
		Name:        FeatureLevelCache,
		Description: "Cache levels in Redis when REDIS_URL is set",
		Enabled:     true,
	}
}

// loadFromEnvironment applies overrides.
// Format: FEATURE_<NAME>=true|false
// Example: FEATURE_CONSOLE_CONFIRM_DELETE=false
func (ff *FeatureFlags) loadFromEnvironment() {
	for name, feature := range ff.features {
		if val := os.Getenv(featureNameToEnvKey(name)); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				feature.Enabled = b
			}
		}
	}
}

// featureNameToEnvKey converts feature name to environment variable key.
// "console.confirm_delete" -> "FEATURE_CONSOLE_CONFIRM_DELETE"
func featureNameToEnvKey(name string) string {
	key := strings.ToUpper(name)
	key = strings.ReplaceAll(key, ".", "_")
	return "FEATURE_" + key
}

// IsEnabled checks if a feature is enabled. A nil receiver uses the defaults.
func (ff *FeatureFlags) IsEnabled(featureName string) bool {
	if ff == nil {
		return defaultFlags.IsEnabled(featureName)
	}

	ff.mu.RLock()
	defer ff.mu.RUnlock()

	feature, ok := ff.features[featureName]
	if !ok {
		return false
	}
	return feature.Enabled
}

// Set changes a feature at runtime.
func (ff *FeatureFlags) Set(featureName string, enabled bool) error {
	ff.mu.Lock()
	defer ff.mu.Unlock()

	feature, ok := ff.features[featureName]
	if !ok {
		return ErrFeatureNotFound
	}
	feature.Enabled = enabled
	return nil
}

// Names returns the known feature names in sorted order.
func (ff *FeatureFlags) Names() []string {
	ff.mu.RLock()
	defer ff.mu.RUnlock()

	names := make([]string, 0, len(ff.features))
	for name := range ff.features {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultFlags = func() *FeatureFlags {
	ff := &FeatureFlags{features: make(map[string]*Feature)}
	ff.initializeDefaults()
	return ff
}()

// --- Errors ---

var ErrFeatureNotFound = &FeatureFlagError{Message: "feature not found"}

// FeatureFlagError represents a feature flag error.
type FeatureFlagError struct {
	Message string
}

func (e *FeatureFlagError) Error() string {
	return e.Message
}
