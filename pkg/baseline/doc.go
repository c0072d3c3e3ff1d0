// Package baseline stores reference dumps and compares new dumps against them.
//
// A baseline is the dump text of a known-good run, saved under a name such as
// "designs/alu/setup". Regression checks dump the current engine state and
// compare it byte for byte with the stored text; any difference is reported
// as a unified diff.
//
// # Backends
//
// All backends implement [Store]:
//
//   - [FileStore]: one JSON file per baseline under a directory (CLI default)
//   - [SQLiteStore]: a single SQLite database file
//   - [RedisStore]: shared store for CI runners
//   - [MongoStore]: shared store with queryable history metadata
//   - [NullStore]: discards everything (dry runs)
//
// Use [Open] to construct a backend from a [Config].
//
// # Usage
//
//	store, err := baseline.Open(ctx, baseline.Config{Backend: "file", Dir: ".baselines"})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	rec, err := baseline.NewRecord("alu", text, dump.Options{})
//	// ...
//	err = store.Put(ctx, rec)
//
//	base, err := store.Get(ctx, "alu")
//	if err := baseline.Compare(base, text); err != nil {
//	    // *errors.MismatchError carries the diff
//	}
package baseline
