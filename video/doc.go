// Package video implements the renderer of spec §4.F: it reads guest
// video RAM through the bank/bus layer and produces a 320x240 indexed
// framebuffer, plus the VBL timer that drives SWVBL.
package video
