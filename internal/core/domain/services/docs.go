// Package services holds the domain logic that spans orders and persons:
//   - ContactResolver: picks the canonical person behind a name and phone
//   - ConsistencyAuditor: finds orphaned orders, name mismatches and shared phones
//   - NotificationPolicy: decides when turning received on must prompt a notification
//
// The services are pure. Loading and writing is done by the command handlers.
package services
