package di

import "sidebard/internal/structures"

// ownerFlag hands the configured owner flag to the menu builder.
func ownerFlag(conf *structures.Config) bool {
	return conf.Console.Owner
}
