// Package bignum implements 256-bit machine words with EVM semantics.
//
// Word is a fixed array of base-2^32 limbs, little-endian (Word[0] is least
// significant). All arithmetic wraps modulo 2^256; division and modulo by
// zero yield zero. Signed operations read the word as two's complement.
package bignum
