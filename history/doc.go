// Package history keeps the session history of visited locations.
//
// A [History] is a list of entries with a cursor, like the history of a browser tab.
// Navigation references are resolved against the current entry, so the history
// can serve as the [uri.LocationProvider] of the view layer.
package history
