// Package jwt issues and verifies the HS512 bearer tokens that front a login
// session, and moves verified claims through a context.
package jwt
