// Package repository defines the data access interface for the fabric
// description.
//
// The controller keeps the last successfully loaded fabric (devices, cables
// and host attachments) so that a restart without a fabric file, or with a
// broken one, still comes up with a usable topology. The implementation is
// in the sqlite subpackage.
//
// # SQLite Implementation
//
// The sqlite implementation stores devices, directed links and hosts in
// separate tables. ImportFabric replaces everything in one transaction;
// hosts can also be upserted and deleted one at a time. Tests run against
// in-memory databases.
package repository
