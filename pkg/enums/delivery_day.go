package enums

import "fmt"

// DeliveryDay names a weekday on which a seller delivers or hosts pickups.
type DeliveryDay string

const (
	DeliveryDayMonday    DeliveryDay = "monday"
	DeliveryDayTuesday   DeliveryDay = "tuesday"
	DeliveryDayWednesday DeliveryDay = "wednesday"
	DeliveryDayThursday  DeliveryDay = "thursday"
	DeliveryDayFriday    DeliveryDay = "friday"
	DeliveryDaySaturday  DeliveryDay = "saturday"
	DeliveryDaySunday    DeliveryDay = "sunday"
)

var validDeliveryDays = []DeliveryDay{
	DeliveryDayMonday,
	DeliveryDayTuesday,
	DeliveryDayWednesday,
	DeliveryDayThursday,
	DeliveryDayFriday,
	DeliveryDaySaturday,
	DeliveryDaySunday,
}

// String implements fmt.Stringer.
func (d DeliveryDay) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DeliveryDay.
func (d DeliveryDay) IsValid() bool {
	for _, candidate := range validDeliveryDays {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDeliveryDay converts raw input into a DeliveryDay.
func ParseDeliveryDay(value string) (DeliveryDay, error) {
	for _, candidate := range validDeliveryDays {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delivery day %q", value)
}
