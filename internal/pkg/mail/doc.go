// Package mail sends notification email. SMTP delivers over net/smtp and Log
// only records what would have been sent.
package mail
