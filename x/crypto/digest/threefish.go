// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package digest

// threefish implements the Threefish tweakable block cipher underlying
// Skein, generalized over the three published word counts (4, 8, 16 words
// = 256/512/1024-bit blocks). This is the one primitive in this package
// with no counterpart anywhere in the retrieved example pack or in
// golang.org/x/crypto — see DESIGN.md for why it is hand-rolled rather
// than wrapping a third-party module.
const c240 = 0x1BD11BDAA9FC1A22

// rotation constants R[d%8][j], indexed by word-count class.
var rot256 = [8][2]uint{
	{14, 16}, {52, 57}, {23, 40}, {5, 37},
	{25, 33}, {46, 12}, {58, 22}, {32, 32},
}

var rot512 = [8][4]uint{
	{46, 36, 19, 37}, {33, 27, 14, 42}, {17, 49, 36, 39}, {44, 9, 54, 56},
	{39, 30, 34, 24}, {13, 50, 10, 17}, {25, 29, 39, 43}, {8, 35, 56, 22},
}

var rot1024 = [8][8]uint{
	{24, 13, 8, 47, 8, 17, 22, 37},
	{38, 19, 10, 55, 49, 18, 23, 52},
	{33, 4, 51, 13, 34, 41, 59, 17},
	{5, 20, 48, 41, 47, 28, 16, 25},
	{41, 9, 37, 31, 12, 47, 44, 30},
	{16, 34, 56, 51, 4, 53, 42, 41},
	{31, 44, 47, 46, 19, 42, 44, 25},
	{9, 48, 35, 52, 23, 31, 37, 20},
}

var perm256 = [4]int{0, 3, 2, 1}
var perm512 = [8]int{2, 1, 4, 7, 6, 5, 0, 3}
var perm1024 = [16]int{0, 9, 2, 13, 6, 11, 4, 15, 10, 7, 12, 3, 14, 5, 8, 1}

func rounds(nw int) int {
	if nw == 16 {
		return 80
	}
	return 72
}

// threefishEncrypt encrypts one block (nw words) under key (nw words) and
// tweak (2 words), writing the nw-word result into out.
func threefishEncrypt(nw int, key, tweak, in, out []uint64) {
	// Extended key word and extended tweak word.
	ek := make([]uint64, nw+1)
	var sum uint64 = c240
	for i := 0; i < nw; i++ {
		ek[i] = key[i]
		sum ^= key[i]
	}
	ek[nw] = sum

	et := [3]uint64{tweak[0], tweak[1], tweak[0] ^ tweak[1]}

	v := make([]uint64, nw)
	copy(v, in)

	nr := rounds(nw)
	for d := 0; d <= nr/4; d++ {
		// Subkey injection every 4 rounds.
		for i := 0; i < nw; i++ {
			v[i] += ek[(d+i)%(nw+1)]
		}
		v[nw-3] += et[d%3]
		v[nw-2] += et[(d+1)%3]
		v[nw-1] += uint64(d)

		if d == nr/4 {
			break
		}

		for r := 0; r < 4; r++ {
			round := d*4 + r
			mix(nw, v, round)
			permute(nw, v)
		}
	}

	copy(out, v)
}

func mix(nw int, v []uint64, round int) {
	row := round % 8
	switch nw {
	case 4:
		r := rot256[row]
		mixPair(v, 0, 1, r[0])
		mixPair(v, 2, 3, r[1])
	case 8:
		r := rot512[row]
		mixPair(v, 0, 1, r[0])
		mixPair(v, 2, 3, r[1])
		mixPair(v, 4, 5, r[2])
		mixPair(v, 6, 7, r[3])
	case 16:
		r := rot1024[row]
		mixPair(v, 0, 1, r[0])
		mixPair(v, 2, 3, r[1])
		mixPair(v, 4, 5, r[2])
		mixPair(v, 6, 7, r[3])
		mixPair(v, 8, 9, r[4])
		mixPair(v, 10, 11, r[5])
		mixPair(v, 12, 13, r[6])
		mixPair(v, 14, 15, r[7])
	}
}

func mixPair(v []uint64, i, j int, rot uint) {
	v[i] = v[i] + v[j]
	v[j] = rotl64(v[j], rot) ^ v[i]
}

func rotl64(x uint64, n uint) uint64 { return (x << n) | (x >> (64 - n)) }

func permute(nw int, v []uint64) {
	var p []int
	switch nw {
	case 4:
		p = perm256[:]
	case 8:
		p = perm512[:]
	case 16:
		p = perm1024[:]
	}
	out := make([]uint64, nw)
	for i := 0; i < nw; i++ {
		out[i] = v[p[i]]
	}
	copy(v, out)
}
