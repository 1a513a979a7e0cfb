package sieve

import "golang.org/x/sys/cpu"

func batchedSupported() bool {
	return cpu.X86.HasAVX2
}
