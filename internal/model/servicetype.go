package model

import "fmt"

// ServiceType identifies the bookable service variants. It is a closed set:
// every consumer parses inbound strings through ParseServiceType instead of
// comparing free-form values.
type ServiceType string

const (
	ServiceTypeHotel     ServiceType = "hotel"
	ServiceTypeCarRental ServiceType = "car_rental"
	ServiceTypeTour      ServiceType = "tour"
	ServiceTypeActivity  ServiceType = "activity"
	ServiceTypeVisa      ServiceType = "visa"
)

// ServiceTypes lists every valid service type.
var ServiceTypes = []ServiceType{
	ServiceTypeHotel,
	ServiceTypeCarRental,
	ServiceTypeTour,
	ServiceTypeActivity,
	ServiceTypeVisa,
}

// ParseServiceType validates an inbound service type string.
func ParseServiceType(s string) (ServiceType, error) {
	t := ServiceType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown service type %q", s)
	}
	return t, nil
}

// Valid reports whether the value belongs to the closed set.
func (t ServiceType) Valid() bool {
	switch t {
	case ServiceTypeHotel, ServiceTypeCarRental, ServiceTypeTour, ServiceTypeActivity, ServiceTypeVisa:
		return true
	}
	return false
}

func (t ServiceType) String() string {
	return string(t)
}

// PartnerType distinguishes the two kinds of commission owners.
type PartnerType string

const (
	PartnerTypeSolution PartnerType = "solution_partner"
	PartnerTypeSales    PartnerType = "sales_partner"
)

// ParsePartnerType validates an inbound partner type string.
func ParsePartnerType(s string) (PartnerType, error) {
	t := PartnerType(s)
	if t != PartnerTypeSolution && t != PartnerTypeSales {
		return "", fmt.Errorf("unknown partner type %q", s)
	}
	return t, nil
}
