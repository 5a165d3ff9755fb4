// Package event holds the subjects and JSON payloads exchanged between modules.
package event

// CorrelationHeader carries the request correlation ID on every message.
const CorrelationHeader string = "cID"

// ActivityQueueGroup is the queue group the activity module consumes with.
const ActivityQueueGroup string = "activity"
