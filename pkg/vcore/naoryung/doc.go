// Package naoryung implements the Naor-Yung CCA2 public-key cryptosystem:
// key generation, encryption with a non-interactive zero-knowledge proof
// of equal plaintext across two ElGamal instances sharing randomness, and
// decryption that verifies the proof before recovering the plaintext. The
// construction is generic over the external prime-order group contract in
// package group.
//
// The security argument: encrypting under two independent generators
// g1, g2 with the same exponent r, and proving knowledge of that shared r
// via Fiat-Shamir over a random oracle that also binds the label,
// rules out the re-encryption attack that breaks a single ElGamal instance
// under CCA2. Revealing the secret key z alone never suffices to forge the
// proof, because the proof's challenge is derived from the entire
// transcript, including the label.
package naoryung
