// Package kernel provides core domain primitives shared by the encargos model.
// They are the value objects every aggregate is built from, and they carry no
// persistence or transport concerns.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - SameLink: Comparison of optional person links, where nil means unlinked
//   - TenantID: The selling point that partitions every record
//   - Contact: A normalized customer name and phone pair copied onto orders
//   - NormalizePhone and NormalizeName: The canonical forms used for matching
//
// Key Features:
//   - Zero values fail Validate, so an identifier or tenant that skipped its
//     constructor is caught before it reaches a repository
//   - Phones and names are normalized on construction, so equality checks in
//     the resolver and the cascades compare canonical forms
//   - All types are immutable and safe for concurrent use
//
// Usage Patterns:
//
// Identifiers:
//
//	id := kernel.NewUUID()
//	parsed, err := kernel.UUIDFromString(c.Param("id"))
//	if err != nil {
//	    return err // errs.ErrValueIsInvalid
//	}
//
// Tenant scoping:
//
//	tenant, err := kernel.NewTenantID("centro")
//	if err != nil {
//	    return err
//	}
//	o, err := repo.Get(ctx, tenant, id)
//
// Customer contact:
//
//	c, err := kernel.NewContact(" Ana  García ", "600 111 222")
//	// c.Name() == "Ana García", c.Phone() == "600111222"
package kernel
