package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateReferenceNo generates a reference such as SAL-1A2B3C4D
func GenerateReferenceNo(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateSalaryRef generates a payroll record reference
func GenerateSalaryRef() string {
	return GenerateReferenceNo("SAL")
}
