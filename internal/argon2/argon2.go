// Package argon2 implements the Argon2 memory-hard key derivation function as
// specified in RFC 9106, including the inputs golang.org/x/crypto/argon2 does
// not expose: the Argon2d variant, the secret value K, associated data X and
// the legacy version 0x10.
package argon2

import (
	"encoding/binary"
	"errors"
	"math"
	"strconv"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// Mode selects the Argon2 variant. The values are the type identifiers mixed
// into H0.
type Mode uint32

const (
	ModeArgon2d  Mode = 0
	ModeArgon2i  Mode = 1
	ModeArgon2id Mode = 2
)

// Argon2 versions.
const (
	Version10 uint32 = 0x10
	Version13 uint32 = 0x13
)

const (
	blockLength = 128
	syncPoints  = 4
)

// Domain limits of the reference implementation (argon2.h).
const (
	MinLanes     = 1
	MaxLanes     = 0xFFFFFF
	MinTime      = 1
	MinOutLen    = 4
	MinSaltLen   = 8
	MinMemoryPer = 2 * syncPoints
)

// MaxMemory is the largest memory cost in KiB the primitive accepts on this
// platform: 2^32-1 on 64-bit targets, 2^21 on 32-bit ones.
var MaxMemory uint32 = func() uint32 {
	if strconv.IntSize == 32 {
		return 1 << 21
	}
	return math.MaxUint32
}()

var (
	errTime    = errors.New("argon2: time cost must be at least 1")
	errThreads = errors.New("argon2: lane count out of range")
	errMemory  = errors.New("argon2: memory cost out of range")
	errKeyLen  = errors.New("argon2: output length too short")
	errSalt    = errors.New("argon2: salt too short")
	errMode    = errors.New("argon2: unknown mode")
	errVersion = errors.New("argon2: unsupported version")
)

type block [blockLength]uint64

// Key derives keyLen bytes from password and salt. secret and data are the
// optional secret value and associated data of RFC 9106 and may be nil.
//
// memory is expressed in KiB and is rounded down to a multiple of 4*threads
// inside the derivation; the unrounded value is what H0 commits to.
//
// Key allocates memory KiB up front. Callers verifying untrusted parameters
// must bound memory themselves: a failed allocation is fatal to the process.
func Key(mode Mode, version uint32, password, salt, secret, data []byte, time, memory, threads, keyLen uint32) ([]byte, error) {
	if err := CheckParams(mode, version, time, memory, threads, keyLen); err != nil {
		return nil, err
	}
	if len(salt) < MinSaltLen {
		return nil, errSalt
	}

	h0 := initHash(mode, version, password, salt, secret, data, time, memory, threads, keyLen)
	defer clear(h0[:])

	memory = memory / (syncPoints * threads) * (syncPoints * threads)
	if memory < 2*syncPoints*threads {
		memory = 2 * syncPoints * threads
	}

	B := initBlocks(&h0, memory, threads)
	defer clear(B)

	processBlocks(B, mode, version, time, memory, threads)
	return extractKey(B, memory, threads, keyLen), nil
}

// CheckParams reports whether the cost parameters are inside the domain Key
// accepts, without deriving anything.
func CheckParams(mode Mode, version, time, memory, threads, keyLen uint32) error {
	switch mode {
	case ModeArgon2d, ModeArgon2i, ModeArgon2id:
	default:
		return errMode
	}
	if version != Version10 && version != Version13 {
		return errVersion
	}
	if time < MinTime {
		return errTime
	}
	if threads < MinLanes || threads > MaxLanes {
		return errThreads
	}
	if uint64(memory) < uint64(MinMemoryPer)*uint64(threads) || memory > MaxMemory {
		return errMemory
	}
	if keyLen < MinOutLen {
		return errKeyLen
	}
	return nil
}

func initHash(mode Mode, version uint32, password, salt, secret, data []byte, time, memory, threads, keyLen uint32) [blake2b.Size + 8]byte {
	var (
		h0     [blake2b.Size + 8]byte
		params [24]byte
		tmp    [4]byte
	)

	b2, _ := blake2b.New512(nil)
	binary.LittleEndian.PutUint32(params[0:4], threads)
	binary.LittleEndian.PutUint32(params[4:8], keyLen)
	binary.LittleEndian.PutUint32(params[8:12], memory)
	binary.LittleEndian.PutUint32(params[12:16], time)
	binary.LittleEndian.PutUint32(params[16:20], version)
	binary.LittleEndian.PutUint32(params[20:24], uint32(mode))
	b2.Write(params[:])

	for _, in := range [][]byte{password, salt, secret, data} {
		binary.LittleEndian.PutUint32(tmp[:], uint32(len(in)))
		b2.Write(tmp[:])
		b2.Write(in)
	}
	b2.Sum(h0[:0])
	return h0
}

func initBlocks(h0 *[blake2b.Size + 8]byte, memory, threads uint32) []block {
	var block0 [1024]byte
	defer clear(block0[:])

	B := make([]block, memory)
	for lane := uint32(0); lane < threads; lane++ {
		j := lane * (memory / threads)
		binary.LittleEndian.PutUint32(h0[blake2b.Size+4:], lane)

		for i := uint32(0); i < 2; i++ {
			binary.LittleEndian.PutUint32(h0[blake2b.Size:], i)
			blake2bHash(block0[:], h0[:])
			for k := range B[j+i] {
				B[j+i][k] = binary.LittleEndian.Uint64(block0[k*8:])
			}
		}
	}
	return B
}

func processBlocks(B []block, mode Mode, version, time, memory, threads uint32) {
	lanes := memory / threads
	segments := lanes / syncPoints

	processSegment := func(n, slice, lane uint32, wg *sync.WaitGroup) {
		defer wg.Done()

		var addresses, in, zero block
		dataIndependent := mode == ModeArgon2i || (mode == ModeArgon2id && n == 0 && slice < syncPoints/2)
		if dataIndependent {
			in[0] = uint64(n)
			in[1] = uint64(lane)
			in[2] = uint64(slice)
			in[3] = uint64(memory)
			in[4] = uint64(time)
			in[5] = uint64(mode)
		}

		index := uint32(0)
		if n == 0 && slice == 0 {
			// the first two blocks of each lane come from H0
			index = 2
			if dataIndependent {
				in[6]++
				processBlock(&addresses, &in, &zero)
				processBlock(&addresses, &addresses, &zero)
			}
		}

		offset := lane*lanes + slice*segments + index
		var random uint64
		for index < segments {
			prev := offset - 1
			if index == 0 && slice == 0 {
				prev += lanes
			}
			if dataIndependent {
				if index%blockLength == 0 {
					in[6]++
					processBlock(&addresses, &in, &zero)
					processBlock(&addresses, &addresses, &zero)
				}
				random = addresses[index%blockLength]
			} else {
				random = B[prev][0]
			}

			ref := indexAlpha(random, lanes, segments, threads, n, slice, lane, index)
			if version == Version10 || n == 0 {
				processBlock(&B[offset], &B[prev], &B[ref])
			} else {
				processBlockXOR(&B[offset], &B[prev], &B[ref])
			}
			index, offset = index+1, offset+1
		}
	}

	for n := uint32(0); n < time; n++ {
		for slice := uint32(0); slice < syncPoints; slice++ {
			var wg sync.WaitGroup
			for lane := uint32(0); lane < threads; lane++ {
				wg.Add(1)
				go processSegment(n, slice, lane, &wg)
			}
			wg.Wait()
		}
	}
}

func extractKey(B []block, memory, threads, keyLen uint32) []byte {
	lanes := memory / threads
	for lane := uint32(0); lane < threads-1; lane++ {
		for i, v := range B[lane*lanes+lanes-1] {
			B[memory-1][i] ^= v
		}
	}

	var final [1024]byte
	defer clear(final[:])
	for i, v := range B[memory-1] {
		binary.LittleEndian.PutUint64(final[i*8:], v)
	}
	key := make([]byte, keyLen)
	blake2bHash(key, final[:])
	return key
}

func indexAlpha(rand uint64, lanes, segments, threads, n, slice, lane, index uint32) uint32 {
	refLane := uint32(rand>>32) % threads
	if n == 0 && slice == 0 {
		refLane = lane
	}
	m, s := 3*segments, ((slice+1)%syncPoints)*segments
	if lane == refLane {
		m += index
	}
	if n == 0 {
		m, s = slice*segments, 0
		if slice == 0 || lane == refLane {
			m += index
		}
	}
	if index == 0 || lane == refLane {
		m--
	}
	return phi(rand, uint64(m), uint64(s), refLane, lanes)
}

func phi(rand, m, s uint64, lane, lanes uint32) uint32 {
	p := rand & 0xFFFFFFFF
	p = (p * p) >> 32
	p = (p * m) >> 32
	return lane*lanes + uint32((s+m-(p+1))%uint64(lanes))
}
