package rules

import (
	"strings"

	"github.com/google/uuid"
)

// validUUID accepts canonical UUID strings and non-nil uuid.UUID values.
// The nil UUID is rejected in both forms.
func validUUID(value any) any {
	switch v := value.(type) {
	case uuid.UUID:
		if v == uuid.Nil {
			return failure("validation.uuid_not_nil", "UUID cannot be nil")
		}
		return nil
	case string:
		if !isUUID(v) {
			return failure("validation.uuid", "must be a valid UUID")
		}
		if v == uuid.Nil.String() {
			return failure("validation.uuid_not_nil", "UUID cannot be nil")
		}
		return nil
	}
	return failure("validation.uuid", "must be a valid UUID")
}

// isUUID checks length and hyphen positions before parsing.
func isUUID(value string) bool {
	if strings.TrimSpace(value) == "" || len(value) != 36 {
		return false
	}
	if value[8] != '-' || value[13] != '-' || value[18] != '-' || value[23] != '-' {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}
