// Package driving defines the interfaces that drive the core: the inspection
// workflow and the read/delete operations on stored inspections.
package driving
