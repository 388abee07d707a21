// Package dbus bridges virtual desktop events onto the session bus.
// desknotifyd exports io.github.jmylchreest.DeskNotify so an external
// desktop watcher (or the desknotify CLI) can report switches, reorders
// and pin changes, and listeners can follow the NotificationShown signal.
package dbus
