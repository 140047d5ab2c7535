// Command flmctl is a development/demo harness over the filter list manager
// core: it is not the FFI boundary described in spec §6 (that remains an
// external collaborator), just the ambient CLI every library in this corpus
// ships with for manual testing.
package main

func main() {
	Execute()
}
