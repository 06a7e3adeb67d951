// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package primeengine

// mrIterTable maps a minimum bit length to a number of Miller-Rabin rounds
// sufficient for a 2^-128 error probability, per Damgard-Landrock-Pomerance
// and FIPS 186-4 Annex C.3.
var mrIterTable = [60][2]int{
	{0, 200}, {50, 60}, {54, 59}, {61, 58}, {67, 57}, {74, 56}, {80, 55},
	{86, 54}, {93, 53}, {99, 52}, {105, 51}, {111, 50}, {118, 49}, {124, 48},
	{130, 47}, {136, 46}, {142, 45}, {149, 44}, {155, 43}, {161, 42},
	{167, 41}, {173, 40}, {179, 39}, {186, 38}, {192, 37}, {198, 36},
	{204, 35}, {210, 34}, {216, 33}, {222, 32}, {229, 31}, {235, 30},
	{241, 29}, {247, 28}, {253, 27}, {259, 26}, {266, 25}, {273, 24},
	{281, 23}, {291, 22}, {302, 21}, {314, 20}, {327, 19}, {341, 18},
	{357, 17}, {375, 16}, {396, 15}, {419, 14}, {447, 13}, {479, 12},
	{517, 11}, {563, 10}, {620, 9}, {691, 8}, {782, 7}, {906, 6},
	{1080, 5}, {1345, 4}, {1794, 3}, {2719, 2},
}

// mrIterations returns the number of Miller-Rabin rounds sufficient for an
// integer of k bits, via binary search over mrIterTable exactly as the
// reference nb_iter_MR does.
func mrIterations(k int) int {
	a, b := 0, len(mrIterTable)
	for b-a > 1 {
		i := (a + b) / 2
		if k < mrIterTable[i][0] {
			b = i
		} else {
			a = i
		}
	}
	return mrIterTable[a][1]
}
