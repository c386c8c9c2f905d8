// Package bgmask removes flat backgrounds from logo images by clearing the
// alpha channel of pixels that match a background-color policy.
//
// Two policies are provided: PolicyLight drops near-white and light gray
// pixels, PolicyDark drops dark pixels while keeping anything with at least
// one bright channel so neon glow halos survive. Only alpha is ever changed;
// the color channels of every pixel are preserved, so masking is idempotent.
// The package works entirely in memory.
package bgmask
