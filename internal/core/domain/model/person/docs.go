// Package person provides the Person aggregate: the canonical customer record
// with its contact details and notification opt-ins.
package person
