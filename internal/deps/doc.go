// Package deps locates the external executables tubeprobe shells out to and
// reports their availability for the doctor command.
package deps
