// Package tenant derives storage identifiers from caller-supplied tenant ids.
package tenant

import "strings"

const collectionPrefix = "qa_data_"

// SafeID replaces every hyphen with an underscore so the id can be used as a
// storage identifier. Note that distinct ids may collide after sanitization
// ("a-b" and "a_b" both map to "a_b"); callers share one collection in that case.
func SafeID(tenantID string) string {
	return strings.ReplaceAll(tenantID, "-", "_")
}

// CollectionName returns the name of the tenant's collection inside the shared
// keyspace.
func CollectionName(tenantID string) string {
	return collectionPrefix + SafeID(tenantID)
}
