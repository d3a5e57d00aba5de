// Package migrations holds the schema history of the relational store.
// Every file registers its migrations from init(); blank-import this package
// before running the migration commands.
package migrations
