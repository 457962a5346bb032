// Package condition evaluates AHB field rules — a small three-valued
// propositional logic over primitive condition numbers — against an
// assembled segment tree, mirroring the teacher pipeline's validate
// package shape (Rule/Validator) but replacing HL7 field rules with the
// AHB status-expression grammar of spec §4.6.
package condition
