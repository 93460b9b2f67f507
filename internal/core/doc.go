// Package core provides the business logic for the job application tracker.
//
// The package owns the query and join engine that every surface (HTTP, CLI,
// tests) goes through. It has no transport or storage dependencies; row
// stores implement [Store] and live in internal/store.
//
// # Architecture
//
// The package is organized around several key concepts:
//
//   - Table Definitions: Registered via the registry, each table has field
//     specs used to create headers, decode cells and validate input.
//   - Filter: [Filter] selects rows by case-insensitive substring criteria,
//     and [ToRecords] zips rows with the header.
//   - Resolver: [Resolver.FindApplication] narrows a search to exactly one
//     application or fails with a typed error.
//   - Status Join: [StatusJoin] derives Rejected, Closed, Considered or
//     No Response from the related tables through a [MembershipCache].
//   - Service: The entry point for logger and view workflows.
//
// # Table Registry
//
// Tables are registered at init time using [Register]:
//
//	core.Register(core.TableDefinition{
//	    Info: core.TableInfo{Name: "Rejections", Group: "Related"},
//	    FieldSpecs: []core.FieldSpec{
//	        {Name: "Application ID", Required: true},
//	        {Name: "Status Date", Type: core.FieldDate},
//	    },
//	})
//
// # Status Precedence
//
// An application listed in Rejections is Rejected, even if it also appears
// in Closures or Considerations. Then Closures, then Considerations. The
// first table that contains the ID wins and later tables are not read.
//
// # Error Handling
//
// Errors wrap the sentinels in errors.go and are tested with errors.Is.
// [MapError] turns them into user-facing messages with codes:
//
//   - APP001-APP003: Lookup errors (not found, ambiguous, too many)
//   - VAL001-VAL004: Validation errors (formats, inputs, missing columns)
//   - DB001-DB006, TBL001: Storage errors
package core
