// Package daemon turns virtual desktop events into on-screen notifications.
// It owns the single active notification, its auto-close timer, and the
// config and state file watchers that feed desknotifyd.
package daemon
