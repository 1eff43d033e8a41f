package rfid

import (
	"strings"

	"github.com/pkg/errors"
)

// RemovalReason codes for deactivating a badge assignment.
const (
	ReasonCardLost           = "CARD_LOST"
	ReasonCardDamaged        = "CARD_DAMAGED"
	ReasonEmployeeTerminated = "EMPLOYEE_TERMINATED"
	ReasonEmployeeTransfer   = "EMPLOYEE_TRANSFER"
	ReasonSecurityIssue      = "SECURITY_ISSUE"
	ReasonSystemUpdate       = "SYSTEM_UPDATE"
	ReasonOther              = "OTHER"
)

var removalReasons = map[string]bool{
	ReasonCardLost:           true,
	ReasonCardDamaged:        true,
	ReasonEmployeeTerminated: true,
	ReasonEmployeeTransfer:   true,
	ReasonSecurityIssue:      true,
	ReasonSystemUpdate:       true,
	ReasonOther:              true,
}

// ValidateRemoval checks a removal reason code. OTHER requires free text.
func ValidateRemoval(reason, otherReason string) error {
	if reason == "" {
		return errors.New("removal reason is required")
	}
	if !removalReasons[reason] {
		return errors.Errorf("unknown removal reason: %s", reason)
	}
	if reason == ReasonOther && strings.TrimSpace(otherReason) == "" {
		return errors.New("a description is required when the removal reason is OTHER")
	}
	return nil
}
