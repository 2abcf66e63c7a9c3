// Package service contains the application services that orchestrate the
// domain, store and cache layers.
package service
