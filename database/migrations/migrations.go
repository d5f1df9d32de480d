// Package migrations registers the storehub schema. Import it for side
// effects wherever migration.Runner is used.
package migrations
