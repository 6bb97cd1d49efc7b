package utils

import "strings"

// rolePermissions is the single authorization policy table. Handlers never
// check roles inline; they go through Can.
//
// Permission format: "resource:action". Wildcards:
//   - "*" or "*:*" grants everything
//   - "resource:*" grants all actions on a resource
//   - "*:action" grants one action on all resources
var rolePermissions = map[string][]string{
	"admin": {"*"},
	"staff": {
		"client:*", "system:*", "product:*", "inventory:*",
		"order:*", "payment:*", "invoice:*",
		"maintenance:read", "maintenance:create", "maintenance:update",
		"availability:read", "growatt:read",
		"report:read", "report:export", "notification:*",
	},
	"technician": {
		"maintenance:read", "maintenance:update",
		"availability:read", "client:read", "system:read",
		"notification:read", "notification:update",
	},
}

// Can reports whether a role may perform action on resource.
func Can(role, resource, action string) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	required := resource + ":" + action
	for _, p := range perms {
		if MatchesPermission(p, required) {
			return true
		}
	}
	return false
}

// MatchesPermission checks if a granted permission matches the required one,
// honoring wildcard patterns in the granted side.
func MatchesPermission(grantedPerm, requiredPerm string) bool {
	// Exact match (fastest path)
	if grantedPerm == requiredPerm {
		return true
	}

	// Full wildcard - grants everything
	if grantedPerm == "*" || grantedPerm == "*:*" {
		return true
	}

	grantedParts := strings.Split(grantedPerm, ":")
	reqParts := strings.Split(requiredPerm, ":")

	// Old single-part permissions only ever match exactly
	if len(grantedParts) < 2 || len(reqParts) < 2 {
		return grantedPerm == requiredPerm
	}

	resourceMatch := grantedParts[0] == "*" || grantedParts[0] == reqParts[0]
	actionMatch := grantedParts[1] == "*" || grantedParts[1] == reqParts[1]

	return resourceMatch && actionMatch
}
