package common

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ValidateUUID validates a path/query identifier and names the offending field.
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s is not a valid id", fieldName)
	}
	return id, nil
}

// ValidateRequiredString validates required string fields.
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateRole checks a role value against the two recognized roles.
func ValidateRole(role string) error {
	if role != "user" && role != "admin" {
		return fmt.Errorf("role must be 'user' or 'admin'")
	}
	return nil
}

// SafeString safely dereferences optional string fields.
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
