// Package cli provides the dessert catalog command-line client.
//
// Every subcommand loads the layered configuration, opens the session store
// and talks to the REST service through the services package. Besides
// one-shot commands (list, show, create, export, users, logs and so on) the
// browse command starts an interactive loop that keeps a filtered view of
// the catalog and a selection that is exported as a single PDF.
//
// Execute is the entry point used by cmd/cli.
package cli
