// Package cli provides the interactive dealership command-line client.
//
// It wires configuration, the REST API client, the catalog query state and an
// interactive REPL. Typical flow: bootstrap the garage profile and brand
// directory, then browse the public catalog; after login the inventory,
// car form and settings commands become available.
//
// Key features:
//   - Browse: debounced search, staged filters, pagination, car details
//   - Inventory: list, create, edit and delete vehicles (with image gallery)
//   - Settings: view and update the dealership profile
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, Bootstrap, and runREPL for details.
package cli
