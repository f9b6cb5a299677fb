package argon2

import "math/bits"

func processBlock(out, in1, in2 *block) {
	processBlockGeneric(out, in1, in2, false)
}

func processBlockXOR(out, in1, in2 *block) {
	processBlockGeneric(out, in1, in2, true)
}

// processBlockGeneric is the compression function G: the BlaMka permutation
// is applied to the rows and then the columns of R = in1 ^ in2 viewed as an
// 8x8 matrix of 16-byte registers.
func processBlockGeneric(out, in1, in2 *block, xor bool) {
	var t block
	for i := range t {
		t[i] = in1[i] ^ in2[i]
	}

	var v [16]uint64
	for i := 0; i < blockLength; i += 16 {
		copy(v[:], t[i:i+16])
		permute(&v)
		copy(t[i:i+16], v[:])
	}
	for i := 0; i < blockLength/8; i += 2 {
		for j := 0; j < 8; j++ {
			v[2*j] = t[16*j+i]
			v[2*j+1] = t[16*j+i+1]
		}
		permute(&v)
		for j := 0; j < 8; j++ {
			t[16*j+i] = v[2*j]
			t[16*j+i+1] = v[2*j+1]
		}
	}

	if xor {
		for i := range t {
			out[i] ^= in1[i] ^ in2[i] ^ t[i]
		}
	} else {
		for i := range t {
			out[i] = in1[i] ^ in2[i] ^ t[i]
		}
	}
}

// permute is the BLAKE2b round function P with multiplication-hardened
// additions.
func permute(v *[16]uint64) {
	gb(v, 0, 4, 8, 12)
	gb(v, 1, 5, 9, 13)
	gb(v, 2, 6, 10, 14)
	gb(v, 3, 7, 11, 15)

	gb(v, 0, 5, 10, 15)
	gb(v, 1, 6, 11, 12)
	gb(v, 2, 7, 8, 13)
	gb(v, 3, 4, 9, 14)
}

func gb(v *[16]uint64, a, b, c, d int) {
	v[a] = fBlaMka(v[a], v[b])
	v[d] = bits.RotateLeft64(v[d]^v[a], -32)
	v[c] = fBlaMka(v[c], v[d])
	v[b] = bits.RotateLeft64(v[b]^v[c], -24)
	v[a] = fBlaMka(v[a], v[b])
	v[d] = bits.RotateLeft64(v[d]^v[a], -16)
	v[c] = fBlaMka(v[c], v[d])
	v[b] = bits.RotateLeft64(v[b]^v[c], -63)
}

func fBlaMka(x, y uint64) uint64 {
	return x + y + 2*uint64(uint32(x))*uint64(uint32(y))
}
