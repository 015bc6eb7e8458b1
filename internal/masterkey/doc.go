// Package masterkey validates and exposes the shared master key.
//
// The master key is the single secret from which every per-envelope
// encryption key is derived. It is supplied out-of-band, normally through the
// GITOPS_SECRETS_MASTER_KEY environment variable, and is read again on every
// call so that changing the variable takes effect without a restart.
//
// A Guard pairs a Source with the minimum length check:
//
//	guard := masterkey.NewGuard(masterkey.EnvSource{})
//	key, err := guard.MasterKey()
//	if errors.Is(err, kerrors.ErrConfiguration) {
//	    // key missing or shorter than 16 characters
//	}
//
// Nothing in this package caches or logs the key.
package masterkey
