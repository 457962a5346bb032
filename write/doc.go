// Package write renders an assembled segment tree back to byte-exact
// EDIFACT, mirroring the teacher pipeline's encode package: UNA/UNB/UNH
// envelope, root pre-group segments, groups in MIG order, root
// post-group segments, then a recomputed UNT/UNZ trailer.
package write
