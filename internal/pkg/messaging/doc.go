// Package messaging publishes and consumes domain events.
//
// NATS carries events between processes. Memory delivers them in-process and
// backs tests and single-binary deployments.
package messaging
