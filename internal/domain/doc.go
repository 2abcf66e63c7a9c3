// Package domain defines the core business entities of the task tracker
// and their validation rules.
package domain
