package models

import "golang.org/x/exp/slices"

// swagger:enum Category
type Category string

const (
	CategoryHosting        Category = "Hosting & Infrastructure"
	CategorySoftware       Category = "Software Subscriptions"
	CategoryMarketing      Category = "Marketing & Ads"
	CategoryEquipment      Category = "Equipment & Hardware"
	CategoryContractors    Category = "Contractor Payments"
	CategoryAppStoreFees   Category = "App Store Fees"
	CategoryOfficeAndAdmin Category = "Office & Admin"
	CategoryOther          Category = "Other"
)

// Categories lists all expense categories in display order.
var Categories = []Category{
	CategoryHosting,
	CategorySoftware,
	CategoryMarketing,
	CategoryEquipment,
	CategoryContractors,
	CategoryAppStoreFees,
	CategoryOfficeAndAdmin,
	CategoryOther,
}

// Valid reports if the category is one of the supported categories.
func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// swagger:enum DurationType
type DurationType string

const (
	DurationIndefinite DurationType = "indefinite"
	DurationMonths     DurationType = "months"
	DurationUntilDate  DurationType = "until_date"
)

// swagger:enum ExpenseType
type ExpenseType string

const (
	ExpenseOneOff    ExpenseType = "one_off"
	ExpenseRecurring ExpenseType = "recurring"
)
