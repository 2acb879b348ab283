//go:build !debug

package engine

const debugInvariants = false
