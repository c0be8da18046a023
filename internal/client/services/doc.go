// Package services contains the application services of the TextMatch
// client: authentication and session lifecycle, the polled notification
// synchronizer, the per-screen list services (feed, own cards, matches,
// chat), and the push-token bridge.
//
// Each list service owns its data for its own lifetime; there is no shared
// cross-service cache, so two services may briefly render the same entity
// inconsistently until their next poll. That staleness window is accepted.
package services
