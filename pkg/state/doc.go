/*
Package state holds catalog state for the lifetime of a mount.

🎯 Purpose:
- Publishes a loading snapshot the moment a scope is mounted
- Queries the source once, after a simulated delay
- Replaces the snapshot exactly once with the loaded or errored result
- Drops the result when the scope was unmounted first

🔄 Lifecycle:

	Mount ──► LOADING ──(delay)──► ListCatalogItems ──┬──► LOADED
	             │                                     └──► ERRORED
	             │
	          Unmount ──► result dropped, Read returns ErrNoProvider

Consumers only ever see LoadFailedMessage. The raw source error is wrapped in a
DataSourceError and handed to the DiagnosticSink.

🔍 Example:

	provider, err := state.NewProvider[catalog.Product](catalog.Builtin())
	if err != nil {
		return err
	}

	scope := provider.Mount(ctx)
	defer scope.Unmount()

	snap, err := scope.Wait(ctx)
	if err != nil {
		return err
	}
	if snap.HasError() {
		fmt.Println(snap.ErrorMessage)
	}
*/
package state
