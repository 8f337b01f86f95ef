// Package usermgmt defines the validated request and response shapes
// for user accounts, roles, and event management.
//
// Like package majorgifts, request types carry validator tags and
// implement validation.Validatable; handlers bind and validate them
// before any business logic runs. Roles are closed enums (admin,
// gift_officer, viewer) validated with oneof; emails use the validator
// email rule; timestamps are RFC 3339.
package usermgmt
