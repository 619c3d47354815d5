// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the build lifecycle: load the manifest,
// resolve jobs, run the compiler and report, decoupled from any specific
// entrypoint like a CLI.
package app
