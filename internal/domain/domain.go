// Package domain holds the core entities of the major gifts program:
// donors, gifts, pledges with their installment schedules, and the
// user/event records of the staff side.
//
// Types here are plain value objects. Persistence lives in the
// repository layer and request/response shapes live in the schema
// packages; this package owns the invariants that do not depend on
// either (e.g. pledge schedule generation).
package domain
