// Package store persists credential records in a single plaintext JSON file.
//
// The file maps a service name to an ordered list of accounts:
//
//	{
//	  "github": [ {"username": "alice", "password": "p@ss"} ],
//	  "email":  [ {"username": "bob",   "password": "hunter2"} ]
//	}
//
// A Store keeps no state between calls. Every read re-loads the file and
// every write rewrites it in full. The soft operations (Load, Save,
// AddAccount, GetAccounts, DeleteAccount) never return errors to the
// caller; failures are logged and degrade to an empty store or a dropped
// write. LoadStrict and SaveStrict expose the same I/O with typed errors
// for callers that need to tell an empty store from a corrupt one.
package store
