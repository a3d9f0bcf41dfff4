// Package domain defines the record types exported by the mooring simulation.
//
// This package contains the data contract shared between the generation engine
// and everything downstream of it: the publisher that ships snapshots and the
// receiver that aggregates them.
//
// # Records
//
// PortRecord is the root of a snapshot. It owns BerthRecords, and each berth owns
// one ShipRecord, its RadarRecords and its BollardRecords. A bollard always owns
// exactly HooksPerBollard HookRecords.
//
// Records are plain values. They carry no behaviour beyond validation and are
// rebuilt from the simulators on every export.
//
// # Validation
//
// Validate walks a PortRecord and reports the first field that breaks the
// contract as a *SchemaViolation carrying the entity path of the offending field,
// for example "berths[0].bollards[2].hooks[1].tension". Values are never clamped
// or coerced.
//
// # Wire names
//
// Go field names follow Go conventions. The json struct tags carry the camelCase
// names used on the wire and are only consumed by the codec package; the yaml
// tags use snake_case.
package domain
