// Package display renders desktop notifications as GTK4 windows.
// On Wayland the windows are layer-shell surfaces anchored to the
// configured monitor; elsewhere they are undecorated toplevels.
package display
