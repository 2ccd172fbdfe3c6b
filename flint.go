/*
Package flint2 is a pure Go library for exact and arbitrary-precision
number-theoretic computation. Its core is dense polynomial arithmetic over
word-sized moduli (nmodpoly) with several competing algorithms per
operation, selected adaptively by operand size and agreeing exactly. On
top of it sit finite fields realized through Zech logarithm tables
(fqzech), p-adic arithmetic with convergence-checked logarithm and
exponential (padic), and Jacobi theta constants over big.Float (theta).
*/
package flint2
