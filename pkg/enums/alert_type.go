package enums

import "fmt"

// AlertType classifies a floating promotional alert.
type AlertType string

const (
	AlertTypeInfo         AlertType = "info"
	AlertTypePromo        AlertType = "promo"
	AlertTypeWarning      AlertType = "warning"
	AlertTypeSuccess      AlertType = "success"
	AlertTypeAnnouncement AlertType = "announcement"
)

var validAlertTypes = []AlertType{
	AlertTypeInfo,
	AlertTypePromo,
	AlertTypeWarning,
	AlertTypeSuccess,
	AlertTypeAnnouncement,
}

// String implements fmt.Stringer.
func (a AlertType) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AlertType.
func (a AlertType) IsValid() bool {
	for _, candidate := range validAlertTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAlertType converts raw input into an AlertType.
func ParseAlertType(value string) (AlertType, error) {
	for _, candidate := range validAlertTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid alert type %q", value)
}

// AlertTypes returns every known alert type.
func AlertTypes() []AlertType {
	types := make([]AlertType, len(validAlertTypes))
	copy(types, validAlertTypes)
	return types
}
