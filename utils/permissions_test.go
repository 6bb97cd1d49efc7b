package utils

import "testing"

func TestMatchesPermission(t *testing.T) {
	tests := []struct {
		name         string
		grantedPerm  string
		requiredPerm string
		expected     bool
	}{
		// Exact matches
		{"exact match same permission", "order:create", "order:create", true},
		{"exact match different action", "order:create", "order:read", false},
		{"exact match different resource", "order:create", "client:create", false},

		// Full wildcard tests
		{"full wildcard *", "*", "anything:goes", true},
		{"full wildcard *:*", "*:*", "maintenance:delete", true},
		{"full wildcard matches export", "*", "report:export", true},

		// Resource wildcard tests
		{"resource wildcard matches create", "order:*", "order:create", true},
		{"resource wildcard matches delete", "order:*", "order:delete", true},
		{"resource wildcard doesn't match other resource", "order:*", "client:create", false},

		// Action wildcard tests
		{"action wildcard matches order", "*:read", "order:read", true},
		{"action wildcard matches client", "*:read", "client:read", true},
		{"action wildcard doesn't match other action", "*:read", "order:create", false},

		// Edge cases
		{"empty required permission", "order:create", "", false},
		{"empty granted permission", "", "order:create", false},
		{"both empty", "", "", true},
		{"single part permission", "admin", "admin", true},
		{"single part vs multi-part", "admin", "admin:read", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MatchesPermission(tt.grantedPerm, tt.requiredPerm)
			if result != tt.expected {
				t.Errorf("MatchesPermission(%q, %q) = %v, expected %v",
					tt.grantedPerm, tt.requiredPerm, result, tt.expected)
			}
		})
	}
}

func TestCan(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		resource string
		action   string
		expected bool
	}{
		{"admin can do anything", "admin", "invoice", "delete", true},
		{"staff can manage orders", "staff", "order", "create", true},
		{"staff can export reports", "staff", "report", "export", true},
		{"staff cannot manage users", "staff", "user", "create", false},
		{"staff cannot delete maintenance", "staff", "maintenance", "delete", false},
		{"technician can update maintenance", "technician", "maintenance", "update", true},
		{"technician cannot create orders", "technician", "order", "create", false},
		{"technician can read clients", "technician", "client", "read", true},
		{"unknown role denied", "ghost", "order", "read", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Can(tt.role, tt.resource, tt.action); got != tt.expected {
				t.Errorf("Can(%q, %q, %q) = %v, expected %v",
					tt.role, tt.resource, tt.action, got, tt.expected)
			}
		})
	}
}
