package utils

import "time"

// DOBFormat is the required date-of-birth layout, e.g. "1995-04-23".
const DOBFormat = "2006-01-02"

// ParseDOB parses a date of birth in YYYY-MM-DD form.
func ParseDOB(dob string) (time.Time, error) {
	return time.Parse(DOBFormat, dob)
}

// ValidDOB reports whether dob is a calendar date in YYYY-MM-DD form.
func ValidDOB(dob string) bool {
	_, err := ParseDOB(dob)
	return err == nil
}
