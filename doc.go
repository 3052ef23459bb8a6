// Package gxid generates globally unique, k-ordered 12 byte identifiers
// with a 20 character text form.
//
// An ID packs the same fields as a Mongo ObjectId:
//   - 4 byte timestamp (seconds since the Unix epoch)
//   - 3 byte machine identifier
//   - 2 byte process id
//   - 3 byte counter, seeded randomly when the generator is created
//
// The text form is lower case base32hex without padding, so an ID encodes to
// exactly 20 characters matching [0-9a-v]{20}, and encoded IDs sort in the
// same order as their bytes.
//
// Basic Usage:
//
//	// Create one generator at startup and keep it
//	gen := gxid.NewGenerator()
//
//	id, err := gen.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(id.String()) // e.g. 9m4e2mr0ui3e8a215n4g
//
//	// Decode an ID from its text form
//	id, err = gxid.Decode("9m4e2mr0ui3e8a215n4g")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(id.Time(), id.Machine(), id.Pid(), id.Counter())
//
// Machine Identifier:
//
// No configuration is needed. The generator hashes (md5) the first non-empty
// string returned by its MachineProbes: the platform product UUID where one
// is readable, then the host name. When every probe fails the machine id is
// random. Custom probes can be supplied through Config.
//
// Thread Safety:
//
// Generator methods are safe for concurrent use. The counter is a single
// atomic integer, so concurrent callers never receive the same counter value.
//
// IDs are not cryptographically unpredictable and must not be used as secrets.
// They embed a 32 bit timestamp, which wraps in 2106.
package gxid
