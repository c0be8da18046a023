// Package cli provides the interactive TextMatch command-line client.
//
// It wires configuration, the local session store, the API client, and an
// interactive REPL. Typical flow: restore the stored session (or prompt for
// credentials), start the notification poller, and execute user commands.
//
// Key features:
//   - Register / Login / Logout (session survives restarts)
//   - Browse the feed and react: like, reject, respond
//   - Manage own cards and the responses they receive
//   - List matches and chat, with the open conversation polled live
//   - Notifications: list, mark read, clear, plus a local push test
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
