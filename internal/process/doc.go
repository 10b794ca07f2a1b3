// Package process terminates the headless browser started for exports,
// including the renderer and GPU helpers it spawns.
package process
