// Package identity models the authenticated caller as seen by the order engine.
// Identities are issued by an external identity provider; this package only
// validates and carries the subject id and role claimed by a bearer credential.
package identity
