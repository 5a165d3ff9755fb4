// Package hash hashes and verifies account passwords and other secrets.
//
// Store only the output of Hash and check user input with Verify. The
// password algorithm is chosen once at startup with New; PBKDF2 is the
// default and reads hashes written by earlier versions of the service.
package hash
