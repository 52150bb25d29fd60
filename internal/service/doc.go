// Package service holds what the application services share: the ownership
// sentinel and the ServiceError wrapper. The services themselves live in the
// review and quiz subpackages.
package service
