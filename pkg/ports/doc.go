/*
Package ports defines the driven ports (interfaces) for the Turing engine.

These interfaces decouple the core logic from external implementations, allowing
the machine library to live in memory, on disk, in Redis or in a Bolt file.

# Key Interfaces

  - MachineStore: persists named machine definitions.

RunMachineStoreContract is a reusable test suite every MachineStore adapter runs.
*/
package ports
