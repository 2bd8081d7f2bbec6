package enum

// Record statuses shared by members, staff accounts, plans and schedules
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Housekeeping and payroll statuses are free text; these are the defaults
const (
	TaskStatusPending   = "Pending"
	TaskStatusCompleted = "Completed"

	SalaryStatusPending = "Pending"
	SalaryStatusPaid    = "Paid"
)

// Gender values accepted by the gender binding tag
var Genders = []string{"Male", "Female", "Other"}

// IsGender reports whether g is an accepted gender value
func IsGender(g string) bool {
	for _, v := range Genders {
		if v == g {
			return true
		}
	}
	return false
}
